package main

import (
	"bufio"
	"math/rand"
	"os"
	"strings"
	"time"

	"keyword-scraper/config"
	"keyword-scraper/models"
	"keyword-scraper/scraper/google"
	"keyword-scraper/services"
	"keyword-scraper/storage"
	"keyword-scraper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Keyword Extraction System starting ===")
	logger.Info("Config — country: %s | headless: %t | wait: %ds | rate: %dms",
		cfg.Country, cfg.Headless, cfg.WaitTime, cfg.RateLimitMs)

	keywords, err := readKeywords(cfg.KeywordsFile)
	if err != nil {
		logger.Error("Failed to read keywords file %s: %v", cfg.KeywordsFile, err)
		os.Exit(1)
	}
	if len(keywords) == 0 {
		logger.Error("No keywords found in %s. Exiting.", cfg.KeywordsFile)
		os.Exit(1)
	}
	logger.Info("Found %d keywords to process", len(keywords))

	store, err := storage.NewJSONStore(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to create JSON store: %v", err)
		os.Exit(1)
	}

	sess, err := google.NewSession(cfg, logger)
	if err != nil {
		logger.Error("Failed to start browser session: %v", err)
		os.Exit(1)
	}
	defer sess.Close()

	scraper := google.New(cfg, logger)

	var records []*models.KeywordRecord
	for i, keyword := range keywords {
		logger.Info("[%d/%d] Processing %q", i+1, len(keywords), keyword)

		record := scraper.Extract(sess, keyword)

		if len(record.PeopleAlsoAsk) == 0 && len(record.PeopleAlsoSearchFor) == 0 {
			logger.Warn("No PAA or related searches found for %q", keyword)
		}

		if err := store.WriteRecord(record); err != nil {
			logger.Error("Failed to persist record for %q: %v", keyword, err)
		}
		records = append(records, record)

		if i < len(keywords)-1 {
			politenessDelay(cfg.RateLimitMs)
		}
	}

	combinedPath, err := store.WriteCombined(records)
	if err != nil {
		logger.Error("Failed to write combined results: %v", err)
	} else {
		logger.Info("Combined results saved to %s", combinedPath)
	}

	summarySvc := services.NewSummaryService(logger)
	report := summarySvc.Generate(records)
	if err := store.WriteSummary(report); err != nil {
		logger.Error("Failed to write summary report: %v", err)
	}
	summarySvc.Print(report)

	if cfg.PostgresEnabled {
		mirrorToPostgres(cfg, logger, records)
	}

	logger.Info("Processing complete. Results saved to %s", store.Dir())
}

// politenessDelay sleeps for the configured base interval plus jitter so
// request timing does not look mechanical.
func politenessDelay(rateLimitMs int) {
	delay := time.Duration(rateLimitMs) * time.Millisecond
	delay += time.Duration(rand.Intn(2000)) * time.Millisecond
	time.Sleep(delay)
}

func mirrorToPostgres(cfg *config.Config, logger *utils.Logger, records []*models.KeywordRecord) {
	pg, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Error("Postgres mirror unavailable: %v", err)
		return
	}
	defer pg.Close()

	if err := pg.Write(records); err != nil {
		logger.Error("Postgres mirror write failed: %v", err)
		return
	}
	logger.Info("Records mirrored to PostgreSQL (table: keyword_records)")
}

// readKeywords loads seed keywords, one per line, skipping blanks.
func readKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var keywords []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			keywords = append(keywords, line)
		}
	}
	return keywords, scanner.Err()
}
