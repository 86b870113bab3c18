package nav

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteDataset serializes a dataset as indented JSON. Exporting a dataset
// with no waypoints or no POIs is refused: there is nothing a device could
// navigate with.
func WriteDataset(w io.Writer, ds *Dataset) error {
	if ds == nil || len(ds.Waypoints) == 0 || len(ds.POIs) == 0 {
		return ErrEmptyDataset
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return nil
}

// ReadDataset deserializes a dataset previously written by WriteDataset.
func ReadDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	return &ds, nil
}

// ExportFile writes the dataset to path, creating or truncating it.
func ExportFile(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteDataset(f, ds); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a dataset back from path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}
