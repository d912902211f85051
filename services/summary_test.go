package services

import (
	"testing"

	"keyword-scraper/models"
	"keyword-scraper/utils"
)

func sampleRecords() []*models.KeywordRecord {
	return []*models.KeywordRecord{
		{
			Keyword:             "running shoes",
			Autocomplete:        []string{"running shoes men", "running shoes women", "running shoes sale"},
			PeopleAlsoAsk:       []string{"what are the best running shoes"},
			PeopleAlsoSearchFor: []string{"trail shoes", "sneakers"},
		},
		{
			Keyword:             "wireless earbuds",
			Autocomplete:        []string{"wireless earbuds cheap"},
			PeopleAlsoAsk:       []string{},
			PeopleAlsoSearchFor: []string{"bluetooth headphones", "earbud case", "noise cancelling"},
		},
		{
			Keyword:             "standing desk",
			Autocomplete:        []string{},
			PeopleAlsoAsk:       []string{"are standing desks worth it", "how tall should a standing desk be"},
			PeopleAlsoSearchFor: []string{},
		},
	}
}

func TestSummaryTotals(t *testing.T) {
	svc := NewSummaryService(utils.NewLogger(false))
	r := svc.Generate(sampleRecords())

	if r.TotalKeywords != 3 {
		t.Errorf("TotalKeywords: got %d, want 3", r.TotalKeywords)
	}
	if r.TotalAutocomplete != 4 {
		t.Errorf("TotalAutocomplete: got %d, want 4", r.TotalAutocomplete)
	}
	if r.TotalPeopleAlsoAsk != 3 {
		t.Errorf("TotalPeopleAlsoAsk: got %d, want 3", r.TotalPeopleAlsoAsk)
	}
	if r.TotalPeopleAlsoSearch != 5 {
		t.Errorf("TotalPeopleAlsoSearch: got %d, want 5", r.TotalPeopleAlsoSearch)
	}
}

func TestSummaryAverages(t *testing.T) {
	svc := NewSummaryService(utils.NewLogger(false))
	r := svc.Generate(sampleRecords())

	if r.AvgAutocomplete != 1.33 {
		t.Errorf("AvgAutocomplete: got %.2f, want 1.33", r.AvgAutocomplete)
	}
	if r.AvgPeopleAlsoAsk != 1.0 {
		t.Errorf("AvgPeopleAlsoAsk: got %.2f, want 1.00", r.AvgPeopleAlsoAsk)
	}
	if r.AvgPeopleAlsoSearch != 1.67 {
		t.Errorf("AvgPeopleAlsoSearch: got %.2f, want 1.67", r.AvgPeopleAlsoSearch)
	}
}

func TestSummaryEmptyCounts(t *testing.T) {
	svc := NewSummaryService(utils.NewLogger(false))
	r := svc.Generate(sampleRecords())

	if r.KeywordsWithEmptyPAA != 1 {
		t.Errorf("KeywordsWithEmptyPAA: got %d, want 1", r.KeywordsWithEmptyPAA)
	}
	if r.KeywordsWithEmptyPASF != 1 {
		t.Errorf("KeywordsWithEmptyPASF: got %d, want 1", r.KeywordsWithEmptyPASF)
	}
}

func TestSummaryEmptyInput(t *testing.T) {
	svc := NewSummaryService(utils.NewLogger(false))
	r := svc.Generate(nil)

	if r.TotalKeywords != 0 {
		t.Errorf("expected zero totals for empty input, got %d", r.TotalKeywords)
	}
	if r.Timestamp == "" {
		t.Error("Timestamp should be set even for empty input")
	}
}
