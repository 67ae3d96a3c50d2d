package loader

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/roach88/streamtv/internal/model"
)

// WriteRecords writes the output document: a JSON array of records. A nil
// slice is written as [].
func WriteRecords(w io.Writer, records []model.Record, pretty bool) error {
	if records == nil {
		records = []model.Record{}
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return &LoadError{Code: ErrCodeGeneric, Message: "encode output", Err: err}
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return &LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("write output: %v", err), Err: err}
	}
	return nil
}

// ReadRecords decodes an output document.
func ReadRecords(data []byte) ([]model.Record, error) {
	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("parse output: %v", err), Err: err}
	}
	return records, nil
}
