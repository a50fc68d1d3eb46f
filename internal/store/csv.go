package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nissyi-gh/daytrack/internal/model"
)

// CSVFile stores tasks as a flat CSV file with a header row.
type CSVFile struct {
	path string
}

// NewCSVFile returns a backend for path. The file is created on first save.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

// Path returns the file location.
func (f *CSVFile) Path() string {
	return f.path
}

// Load reads the file. Columns are matched by header name, so files written
// before the timing columns existed load with those fields left empty.
func (f *CSVFile) Load() (model.Collection, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	return readCSV(file)
}

func readCSV(r io.Reader) (model.Collection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	tasks := model.Collection{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		rec := make(record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		t, err := decodeTask(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save writes the whole collection to a temp file and renames it into place.
func (f *CSVFile) Save(c model.Collection) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeCSV(tmp, c); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func writeCSV(w io.Writer, c model.Collection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(Columns))
	for i, t := range c {
		rec := encodeTask(t)
		for j, col := range Columns {
			row[j] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (f *CSVFile) Close() error {
	return nil
}
