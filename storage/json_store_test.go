package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"keyword-scraper/models"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"Wireless Headphones", "wireless_headphones"},
		{"best laptops 2024", "best_laptops_2024"},
		{"c++ tips & tricks!", "c_tips__tricks"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slug(tt.keyword); got != tt.want {
			t.Errorf("Slug(%q) = %q; want %q", tt.keyword, got, tt.want)
		}
	}
}

func TestSlugTruncates(t *testing.T) {
	long := strings.Repeat("keyword ", 20)
	got := Slug(long)
	if len(got) != 50 {
		t.Errorf("Slug of long keyword: len %d, want 50", len(got))
	}
}

func TestWriteLoadRecord(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	record := &models.KeywordRecord{
		Keyword:             "running shoes",
		Timestamp:           "2024-05-01T10:00:00Z",
		Autocomplete:        []string{"running shoes men"},
		PeopleAlsoAsk:       []string{"what are the best running shoes"},
		PeopleAlsoSearchFor: []string{"trail shoes"},
	}
	if err := store.WriteRecord(record); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	path := filepath.Join(store.Dir(), "running_shoes.json")
	loaded, err := store.LoadRecord(path)
	if err != nil {
		t.Fatalf("LoadRecord: %v", err)
	}
	if !reflect.DeepEqual(loaded, record) {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, record)
	}
}

func TestWriteRecordNilListsSerializeAsArrays(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	record := &models.KeywordRecord{Keyword: "empty test", Timestamp: "2024-05-01T10:00:00Z"}
	if err := store.WriteRecord(record); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), "empty_test.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("empty lists must serialize as [], got:\n%s", data)
	}
}

func TestDataFilesSkipsSummary(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	if err := store.WriteRecord(&models.KeywordRecord{Keyword: "one"}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := store.WriteSummary(&models.SummaryReport{Timestamp: "2024-05-01T10:00:00Z"}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	files, err := store.DataFiles()
	if err != nil {
		t.Fatalf("DataFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("DataFiles: got %d files, want 1 (summary skipped)", len(files))
	}
	if filepath.Base(files[0]) != "one.json" {
		t.Errorf("unexpected file listed: %s", files[0])
	}
}

func TestWriteLoadCombined(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	records := []*models.KeywordRecord{
		{Keyword: "alpha", PeopleAlsoSearchFor: []string{"beta"}},
		{Keyword: "gamma"},
	}
	path, err := store.WriteCombined(records)
	if err != nil {
		t.Fatalf("WriteCombined: %v", err)
	}
	if !IsCombined(path) {
		t.Errorf("combined file %s not recognized by IsCombined", path)
	}

	loaded, err := store.LoadCombined(path)
	if err != nil {
		t.Fatalf("LoadCombined: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Keyword != "alpha" {
		t.Errorf("combined round trip mismatch: %+v", loaded)
	}
}

func TestIsCombined(t *testing.T) {
	if IsCombined("/data/running_shoes.json") {
		t.Error("single-record file misdetected as combined")
	}
	if !IsCombined("/data/all_keywords_20240501_100000.json") {
		t.Error("combined file not detected")
	}
}

func TestLoadRecordMalformed(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := store.LoadRecord(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
