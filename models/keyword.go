package models

// KeywordRecord bundles every signal collected for one seed keyword.
// It is written to its own JSON file and never mutated afterwards, except
// by the cleanup command, which rewrites only PeopleAlsoSearchFor.
type KeywordRecord struct {
	Keyword             string   `json:"keyword"`
	Timestamp           string   `json:"timestamp"` // RFC 3339
	Autocomplete        []string `json:"autocomplete"`
	PeopleAlsoAsk       []string `json:"people_also_ask"`
	PeopleAlsoSearchFor []string `json:"people_also_search_for"`
}

// SummaryReport holds aggregate statistics over a batch of records.
// It is recomputed wholesale on every run, never merged with a prior one.
type SummaryReport struct {
	Timestamp             string  `json:"timestamp"`
	TotalKeywords         int     `json:"total_keywords_processed"`
	TotalAutocomplete     int     `json:"total_autocomplete_suggestions"`
	TotalPeopleAlsoAsk    int     `json:"total_people_also_ask_questions"`
	TotalPeopleAlsoSearch int     `json:"total_people_also_search_for"`
	AvgAutocomplete       float64 `json:"average_autocomplete_per_keyword"`
	AvgPeopleAlsoAsk      float64 `json:"average_paa_per_keyword"`
	AvgPeopleAlsoSearch   float64 `json:"average_pasf_per_keyword"`
	KeywordsWithEmptyPAA  int     `json:"keywords_with_empty_paa"`
	KeywordsWithEmptyPASF int     `json:"keywords_with_empty_pasf"`
}
