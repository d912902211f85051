package services

import (
	"fmt"
	"strings"
	"time"

	"keyword-scraper/models"
	"keyword-scraper/utils"
)

// SummaryService computes aggregate statistics over a batch of keyword
// records.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate recomputes the full summary from scratch. It never merges with a
// previously persisted summary.
func (s *SummaryService) Generate(records []*models.KeywordRecord) *models.SummaryReport {
	report := &models.SummaryReport{
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalKeywords = len(records)

	for _, r := range records {
		report.TotalAutocomplete += len(r.Autocomplete)
		report.TotalPeopleAlsoAsk += len(r.PeopleAlsoAsk)
		report.TotalPeopleAlsoSearch += len(r.PeopleAlsoSearchFor)

		if len(r.PeopleAlsoAsk) == 0 {
			report.KeywordsWithEmptyPAA++
		}
		if len(r.PeopleAlsoSearchFor) == 0 {
			report.KeywordsWithEmptyPASF++
		}
	}

	n := float64(report.TotalKeywords)
	report.AvgAutocomplete = round2(float64(report.TotalAutocomplete) / n)
	report.AvgPeopleAlsoAsk = round2(float64(report.TotalPeopleAlsoAsk) / n)
	report.AvgPeopleAlsoSearch = round2(float64(report.TotalPeopleAlsoSearch) / n)

	return report
}

// Print renders the summary to the terminal.
func (s *SummaryService) Print(r *models.SummaryReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 KEYWORD EXTRACTION SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Totals\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Keywords processed          : \033[1m%d\033[0m\n", r.TotalKeywords)
	fmt.Printf("  Autocomplete suggestions    : \033[1m%d\033[0m\n", r.TotalAutocomplete)
	fmt.Printf("  People Also Ask questions   : \033[1m%d\033[0m\n", r.TotalPeopleAlsoAsk)
	fmt.Printf("  People Also Search For      : \033[1m%d\033[0m\n", r.TotalPeopleAlsoSearch)
	fmt.Println()

	fmt.Printf("\033[1;33m  Averages per keyword\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Autocomplete : \033[1;32m%.2f\033[0m\n", r.AvgAutocomplete)
	fmt.Printf("  PAA          : \033[1;32m%.2f\033[0m\n", r.AvgPeopleAlsoAsk)
	fmt.Printf("  PASF         : \033[1;32m%.2f\033[0m\n", r.AvgPeopleAlsoSearch)
	fmt.Println()

	if r.KeywordsWithEmptyPAA > 0 || r.KeywordsWithEmptyPASF > 0 {
		fmt.Printf("\033[1;33m  Empty results\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Keywords with no PAA  : \033[1;31m%d\033[0m\n", r.KeywordsWithEmptyPAA)
		fmt.Printf("  Keywords with no PASF : \033[1;31m%d\033[0m\n", r.KeywordsWithEmptyPASF)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
