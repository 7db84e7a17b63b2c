// Package export converts datasets into downloadable files.
//
// # CSV
//
// ToCSV serializes a dataset into a CSV document:
//
//	text, err := export.ToCSV(ds)
//
// The first record decides the columns and their order. The header line is
// written verbatim, data fields are quoted only when they contain a comma, a
// double quote or a newline, and every line ends with "\n". An empty dataset
// is rejected with dataset.ErrEmptyDataset.
//
// Header names are deliberately not escaped; a column name containing a comma
// produces a header line with more fields than the data rows.
//
// # Downloads
//
// Encoded text is handed to a FileDownloader through a transient ObjectURL:
//
//	urls := export.NewObjectURLs()
//	err := export.TriggerDownload(ctx, urls, export.NewResponseDownloader(w), text, "teams.csv")
//
// TriggerDownload creates the URL, lets the downloader resolve it once and
// revokes it before returning, on success and on failure alike.
//
// # JSON
//
// JSONExporter writes a dataset as an array of objects with keys in column
// order.
package export
