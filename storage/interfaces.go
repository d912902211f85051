package storage

import "keyword-scraper/models"

// RecordStore is the interface the extraction run writes through.
type RecordStore interface {
	WriteRecord(r *models.KeywordRecord) error
	WriteCombined(records []*models.KeywordRecord) (string, error)
	WriteSummary(report *models.SummaryReport) error
}

// RecordMirror is an optional secondary sink for cleaned records.
type RecordMirror interface {
	Write(records []*models.KeywordRecord) error
	Close() error
}
