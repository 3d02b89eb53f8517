package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adripedrejon/examcorpus/internal/atomicfile"
)

// CachePath returns the side-file used to cache the records of docPath:
// "Exams/2020.pdf" caches to "Exams/2020_cache.json".
func CachePath(docPath string) string {
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + "_cache.json"
}

// LoadCache reads cached records. A missing file reports ok=false with no
// error.
func LoadCache(path string) (records []Record, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("extract: read cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("extract: decode cache %s: %w", path, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, true, nil
}

// SaveCache writes records to path atomically.
func SaveCache(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("extract: encode cache: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("extract: write cache %s: %w", path, err)
	}
	return nil
}

// Cached returns the records for docPath, reading the side-file when present
// and otherwise calling read, extracting, and saving the result. Records are
// cached without a topic; topic is applied to the returned copies so one
// cache file serves every topic.
func Cached(docPath, topic string, read func() ([][]string, error)) ([]Record, error) {
	path := CachePath(docPath)
	records, ok, err := LoadCache(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		pages, err := read()
		if err != nil {
			return nil, err
		}
		records = Extract(pages, "")
		if err := SaveCache(path, records); err != nil {
			return nil, err
		}
	}
	return WithTopic(records, topic), nil
}
