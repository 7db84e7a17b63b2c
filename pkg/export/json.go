package export

import (
	"context"
	"encoding/json"
	"io"

	"courtmap/dashboard/pkg/dataset"
)

// JSONMediaType is the media type of JSON downloads.
const JSONMediaType = "application/json"

// JSONExporter exports datasets as a JSON array of objects.
type JSONExporter struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{
		Pretty: pretty,
	}
}

// Export writes ds to w as a JSON array. Object keys keep the column order
// of each record. An empty dataset is written as [].
func (e *JSONExporter) Export(ctx context.Context, ds dataset.Dataset, w io.Writer) error {
	if len(ds) == 0 {
		_, err := w.Write([]byte("[]"))
		return err
	}

	var data []byte
	var err error
	if e.Pretty {
		data, err = json.MarshalIndent(ds, "", "  ")
	} else {
		data, err = json.Marshal(ds)
	}
	if err != nil {
		return NewExportError("json", len(ds), err)
	}

	if _, err := w.Write(data); err != nil {
		return NewExportError("json", len(ds), err)
	}

	return nil
}
