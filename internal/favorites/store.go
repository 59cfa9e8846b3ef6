package favorites

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thirdlf03/world-holidays/internal/holiday"
)

const DefaultPath = "data/favorites.csv"

var header = []string{"date", "name", "local_name", "country_code"}

type Store interface {
	Load(ctx context.Context) ([]holiday.Holiday, error)
	Save(ctx context.Context, list []holiday.Holiday) error
}

// FileStore keeps the favorites list in a single CSV file that is rewritten
// in full on every save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns an empty list when the file does not exist yet.
func (s *FileStore) Load(_ context.Context) ([]holiday.Holiday, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []holiday.Holiday{}, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	list := make([]holiday.Holiday, 0)
	columns := map[string]int{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(columns) == 0 {
			for idx, name := range record {
				columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = idx
			}
			if _, ok := columns["date"]; !ok {
				return nil, fmt.Errorf("%s: missing date column", s.path)
			}
			continue
		}

		list = append(list, holiday.Holiday{
			Date:        field(record, columns, "date"),
			Name:        field(record, columns, "name"),
			LocalName:   field(record, columns, "local_name"),
			CountryCode: field(record, columns, "country_code"),
		})
	}
	return list, nil
}

// Save rewrites the whole file through a uniquely named temp file in the same
// directory, so concurrent writers each rename a complete file into place.
func (s *FileStore) Save(_ context.Context, list []holiday.Holiday) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := writeCSV(f, list); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func writeCSV(w io.Writer, list []holiday.Holiday) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, item := range list {
		if err := writer.Write([]string{item.Date, item.Name, item.LocalName, item.CountryCode}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
