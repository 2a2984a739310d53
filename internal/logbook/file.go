// Package logbook reads and rewrites the YAML record logs shared by the
// contribution and translation-activity stores.
package logbook

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func ReadYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode()> %w", err)
	}
	return result, nil
}

func WriteYamlFile[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s)> %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return yaml.NewEncoder(file).Encode(data)
}

// ReadRecords loads all records from a log file. A missing file is an empty
// log, not an error.
func ReadRecords[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	records, err := ReadYamlFile[[]T](path)
	if err != nil {
		return nil, fmt.Errorf("ReadYamlFile(%s) > %w", path, err)
	}
	return records, nil
}

// AppendRecord loads the log, appends one record, and rewrites the full file.
// Returns the records as written.
func AppendRecord[T any](path string, record T) ([]T, error) {
	records, err := ReadRecords[T](path)
	if err != nil {
		return nil, fmt.Errorf("ReadRecords(%s) > %w", path, err)
	}
	records = append(records, record)
	if err := WriteYamlFile(path, records); err != nil {
		return nil, fmt.Errorf("WriteYamlFile(%s) > %w", path, err)
	}
	return records, nil
}
