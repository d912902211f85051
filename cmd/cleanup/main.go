// Command cleanup re-runs the text pipeline over already-collected JSON
// files, rewriting only the people_also_search_for field of each record
// (and of each record inside combined run files). Re-running it is
// idempotent: a second pass leaves every file byte-identical.
package main

import (
	"os"
	"sync/atomic"

	"keyword-scraper/config"
	"keyword-scraper/models"
	"keyword-scraper/services"
	"keyword-scraper/storage"
	"keyword-scraper/utils"
)

const cleanupWorkers = 4

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Keyword Data Cleanup starting ===")

	store, err := storage.NewJSONStore(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to open data dir %s: %v", cfg.DataDir, err)
		os.Exit(1)
	}

	files, err := store.DataFiles()
	if err != nil {
		logger.Error("Failed to scan data dir: %v", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Info("No JSON files found in %s — nothing to do", cfg.DataDir)
		return
	}
	logger.Info("Found %d JSON files to process", len(files))

	pipeline := services.NewPipeline(logger)

	// Files are independent, so they can be rewritten concurrently; no
	// politeness delay is needed for local I/O.
	pool := utils.NewWorkerPool(cleanupWorkers, 0)
	var successful int64
	for _, path := range files {
		path := path
		pool.Submit(func() {
			if err := processFile(store, pipeline, path); err != nil {
				logger.Error("Failed to process %s: %v", path, err)
				return
			}
			atomic.AddInt64(&successful, 1)
		})
	}
	pool.Wait()

	logger.Info("Successfully processed %d of %d files", successful, len(files))

	rebuildSummary(store, logger, files)
}

// processFile rewrites one data file in place through the shared pipeline.
func processFile(store *storage.JSONStore, pipeline *services.Pipeline, path string) error {
	if storage.IsCombined(path) {
		records, err := store.LoadCombined(path)
		if err != nil {
			return err
		}
		for _, r := range records {
			cleanRecord(pipeline, r)
		}
		return store.RewriteCombined(path, records)
	}

	record, err := store.LoadRecord(path)
	if err != nil {
		return err
	}
	cleanRecord(pipeline, record)
	return store.RewriteRecord(path, record)
}

// cleanRecord re-cleans only the related-search field; the other fields
// were already clean at collection time.
func cleanRecord(pipeline *services.Pipeline, r *models.KeywordRecord) {
	r.PeopleAlsoSearchFor = pipeline.ProcessList(r.PeopleAlsoSearchFor, services.KeywordRules)
}

// rebuildSummary recomputes the aggregate report from the rewritten
// per-keyword files so it never drifts from the cleaned data.
func rebuildSummary(store *storage.JSONStore, logger *utils.Logger, files []string) {
	var records []*models.KeywordRecord
	for _, path := range files {
		if storage.IsCombined(path) {
			continue
		}
		record, err := store.LoadRecord(path)
		if err != nil {
			logger.Warn("Skipping %s in summary: %v", path, err)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return
	}

	report := services.NewSummaryService(logger).Generate(records)
	if err := store.WriteSummary(report); err != nil {
		logger.Error("Failed to write summary report: %v", err)
		return
	}
	logger.Info("Summary report rebuilt from %d records", len(records))
}
