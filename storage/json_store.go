package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"keyword-scraper/models"
)

// SummaryFileName is the aggregate statistics file. The cleanup batch skips
// it when scanning the data directory.
const SummaryFileName = "summary_report.json"

// combinedPrefix names the whole-run files holding an array of records.
const combinedPrefix = "all_keywords_"

// JSONStore persists keyword records as indented JSON files in a single
// data directory: one file per keyword, one combined file per run, plus the
// summary file.
type JSONStore struct {
	dataDir string
}

// NewJSONStore creates the data directory if needed and returns a store
// rooted at it.
func NewJSONStore(dataDir string) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("json store: create data dir: %w", err)
	}
	return &JSONStore{dataDir: dataDir}, nil
}

// Dir returns the data directory the store writes into.
func (s *JSONStore) Dir() string {
	return s.dataDir
}

// Slug derives a filesystem-safe file stem from a keyword: lowercased,
// spaces replaced with underscores, anything else unsafe dropped, truncated
// to 50 characters.
func Slug(keyword string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(keyword) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	slug := b.String()
	if len(slug) > 50 {
		slug = slug[:50]
	}
	return slug
}

// WriteRecord writes one record to <slug>.json, overwriting any previous
// capture of the same keyword.
func (s *JSONStore) WriteRecord(r *models.KeywordRecord) error {
	EnsureLists(r)
	path := filepath.Join(s.dataDir, Slug(r.Keyword)+".json")
	return writeJSON(path, r)
}

// WriteCombined writes the whole run as a single array file named with the
// run timestamp and returns the path written.
func (s *JSONStore) WriteCombined(records []*models.KeywordRecord) (string, error) {
	for _, r := range records {
		EnsureLists(r)
	}
	name := combinedPrefix + time.Now().Format("20060102_150405") + ".json"
	path := filepath.Join(s.dataDir, name)
	return path, writeJSON(path, records)
}

// WriteSummary writes the aggregate report, replacing any prior summary.
func (s *JSONStore) WriteSummary(report *models.SummaryReport) error {
	return writeJSON(filepath.Join(s.dataDir, SummaryFileName), report)
}

// DataFiles lists every JSON file in the data directory except the summary
// file, in lexical order.
func (s *JSONStore) DataFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dataDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("json store: scan data dir: %w", err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if filepath.Base(m) == SummaryFileName {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// IsCombined reports whether path names a whole-run array file rather than
// a single-record file.
func IsCombined(path string) bool {
	return strings.HasPrefix(filepath.Base(path), combinedPrefix)
}

// LoadRecord reads a single-record file.
func (s *JSONStore) LoadRecord(path string) (*models.KeywordRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("json store: read %s: %w", path, err)
	}
	var r models.KeywordRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("json store: parse %s: %w", path, err)
	}
	return &r, nil
}

// LoadCombined reads a whole-run array file.
func (s *JSONStore) LoadCombined(path string) ([]*models.KeywordRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("json store: read %s: %w", path, err)
	}
	var records []*models.KeywordRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("json store: parse %s: %w", path, err)
	}
	return records, nil
}

// RewriteRecord writes a record back to its existing file in place.
func (s *JSONStore) RewriteRecord(path string, r *models.KeywordRecord) error {
	EnsureLists(r)
	return writeJSON(path, r)
}

// RewriteCombined writes a whole-run array back to its existing file.
func (s *JSONStore) RewriteCombined(path string, records []*models.KeywordRecord) error {
	for _, r := range records {
		EnsureLists(r)
	}
	return writeJSON(path, records)
}

// EnsureLists replaces nil signal lists so they serialize as [] rather
// than null. A record with empty results is still a valid record.
func EnsureLists(r *models.KeywordRecord) {
	if r.Autocomplete == nil {
		r.Autocomplete = []string{}
	}
	if r.PeopleAlsoAsk == nil {
		r.PeopleAlsoAsk = []string{}
	}
	if r.PeopleAlsoSearchFor == nil {
		r.PeopleAlsoSearchFor = []string{}
	}
}

// writeJSON marshals v with two-space indentation. The fixed format keeps
// repeated rewrites of unchanged data byte-identical.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json store: marshal %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("json store: write %s: %w", path, err)
	}
	return nil
}
