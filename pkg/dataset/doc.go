// Package dataset provides the tabular data model shared by the team catalog
// and the exporters.
//
// A Record maps column names to scalar values and remembers the order in which
// columns were first set. A Dataset is an ordered slice of records whose
// column set is taken from the first record:
//
//	ds := dataset.Dataset{
//	    dataset.NewRecord(dataset.F("name", "A,B"), dataset.F("score", 3)),
//	    dataset.NewRecord(dataset.F("name", "C"), dataset.F("score", 5)),
//	}
//	cols, err := ds.Columns() // ["name", "score"]
//
// Records in a dataset are expected to share the same columns. A record that
// lacks a column reports it as absent, and Text renders absent values as the
// empty string.
package dataset
