package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"

	"keyword-scraper/config"
	"keyword-scraper/models"
	"keyword-scraper/services"
	"keyword-scraper/utils"
)

// Selector cascades for the two on-page signal sections. Google rotates its
// obfuscated class names, so every historically seen selector stays in the
// list; each cascade is tried in order and all matches are collected.
var (
	paaSelectors = []string{
		"div[jsname='Cpkphb']",
		"div.related-question-pair",
		"div.g9WsWb",
		"div.wQiwMc div.JCzEY",
		"div.wQiwMc div.JlqpRe",
		"div.iDjcJe",
		"div.related-question-pair div.d8lLbf",
	}

	pasfSelectors = []string{
		"div.k8XOCe",
		"a.k8XOCe",
		"div.s75CSd",
		"div[data-ved] a:not([class])",
		"div.zVvuGd",
		"div.JjtOHd",
		"a.klitem",
		"div.AJLUJb > div > a",
		"div.s6JM6d a",
		"a.gL9Hy",
		"a.s75CSd",
		"div.s6JM6d > a",
	}

	pasfBottomSelectors = []string{
		"div.card-section a",
		"div.s75CSd",
		"a.JjtOHd",
		"div.AJLUJb a",
		"div.tF2Cxc a",
	}

	paaExpandSelectors = []string{
		"div.iDjcJe",
		"div.wQiwMc",
		"div.g9WsWb",
	}
)

// Outcome is the result of one extraction step. It keeps "nothing found"
// distinct from "failed" so callers can decide whether a retry is worth it.
type Outcome struct {
	Items []string
	Err   error
}

// Failed reports whether the step errored.
func (o Outcome) Failed() bool { return o.Err != nil }

// Empty reports whether the step succeeded but found nothing.
func (o Outcome) Empty() bool { return o.Err == nil && len(o.Items) == 0 }

// Scraper extracts the three signal lists for seed keywords.
type Scraper struct {
	cfg      *config.Config
	logger   *utils.Logger
	pipeline *services.Pipeline
	suggest  *SuggestClient
	retry    *utils.Retrier
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:      cfg,
		logger:   logger,
		pipeline: services.NewPipeline(logger),
		suggest:  NewSuggestClient(cfg, logger),
		retry: &utils.Retrier{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Jitter:      time.Second,
			Logger:      logger,
		},
	}
}

// Extract collects autocomplete, PAA, and PASF for one keyword and returns
// the cleaned record. Fields that fail or stay empty after one re-attempt
// default to empty lists; Extract itself never fails a keyword.
func (s *Scraper) Extract(sess *Session, keyword string) *models.KeywordRecord {
	autocomplete := s.field("autocomplete", keyword, func() Outcome {
		return s.suggest.Fetch(keyword)
	})

	// PAA navigates to the results page; PASF reads the same loaded page.
	paa := s.field("people-also-ask", keyword, func() Outcome {
		return s.collectPAA(sess, keyword)
	})
	pasf := s.field("people-also-search-for", keyword, func() Outcome {
		return s.collectPASF(sess)
	})

	return &models.KeywordRecord{
		Keyword:             keyword,
		Timestamp:           time.Now().Format(time.RFC3339),
		Autocomplete:        s.pipeline.ProcessList(autocomplete, services.KeywordRules),
		PeopleAlsoAsk:       s.pipeline.ProcessList(paa, services.QuestionRules),
		PeopleAlsoSearchFor: s.pipeline.ProcessList(pasf, services.KeywordRules),
	}
}

// field runs one extraction step, re-attempting once after a short delay
// when it failed or came back empty, then degrades to an empty list.
func (s *Scraper) field(name, keyword string, step func() Outcome) []string {
	out := step()
	if out.Failed() || out.Empty() {
		if out.Failed() {
			s.logger.Warn("[google] %s failed for %q: %v — retrying once", name, keyword, out.Err)
		} else {
			s.logger.Debug("[google] %s empty for %q — retrying once", name, keyword)
		}
		time.Sleep(2 * time.Second)
		out = step()
	}

	if out.Failed() {
		s.logger.Warn("[google] %s failed for %q: %v — defaulting to empty", name, keyword, out.Err)
		return nil
	}
	return out.Items
}

// stepTimeout is the budget for one browser interaction, scaled from the
// configured element wait time.
func (s *Scraper) stepTimeout() time.Duration {
	return time.Duration(s.cfg.WaitTime) * 6 * time.Second
}

// collectPAA navigates to the search results page and gathers People Also
// Ask question texts.
func (s *Scraper) collectPAA(sess *Session, keyword string) Outcome {
	searchURL := fmt.Sprintf("https://www.google.com/search?q=%s&gl=%s&hl=en-US",
		url.QueryEscape(keyword), s.cfg.Country)

	var texts []string
	var pageHTML string

	err := s.retry.Do("paa-"+keyword, func() error {
		ctx, cancel := context.WithTimeout(sess.tab, s.stepTimeout())
		defer cancel()

		var accepted bool
		return chromedp.Run(ctx,
			chromedp.Navigate(searchURL),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(acceptCookiesJS, &accepted),
			chromedp.Sleep(time.Second),
			chromedp.Evaluate(collectTextsJS(paaSelectors), &texts),
			chromedp.Evaluate(`document.documentElement.outerHTML`, &pageHTML),
		)
	})
	if err != nil {
		return Outcome{Err: fmt.Errorf("paa extraction: %w", err)}
	}

	if len(texts) == 0 {
		fallback, err := parseQuestionsFromHTML(pageHTML)
		if err != nil {
			return Outcome{Err: fmt.Errorf("paa fallback: %w", err)}
		}
		texts = fallback
	}

	if len(texts) > 0 {
		texts = append(texts, s.expandPAA(sess, texts)...)
	}

	return Outcome{Items: texts}
}

// expandPAA clicks the first expandable question entry, which makes Google
// load more of them, and returns the newly surfaced texts.
func (s *Scraper) expandPAA(sess *Session, existing []string) []string {
	ctx, cancel := context.WithTimeout(sess.tab, s.stepTimeout())
	defer cancel()

	var clicked bool
	var texts []string
	err := chromedp.Run(ctx,
		chromedp.Evaluate(clickFirstJS(paaExpandSelectors), &clicked),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(collectTextsJS(paaSelectors), &texts),
	)
	if err != nil || !clicked {
		if err != nil {
			s.logger.Debug("[google] PAA expansion failed: %v", err)
		}
		return nil
	}

	seen := utils.NewStringSet()
	for _, t := range existing {
		seen.Add(t)
	}

	var fresh []string
	for _, t := range texts {
		if seen.Add(t) {
			fresh = append(fresh, t)
		}
	}
	return fresh
}

// collectPASF gathers People Also Search For texts from the already-loaded
// results page, including the related-searches block at the bottom.
func (s *Scraper) collectPASF(sess *Session) Outcome {
	var texts []string
	var bottom []string
	var pageHTML string

	err := s.retry.Do("pasf", func() error {
		ctx, cancel := context.WithTimeout(sess.tab, s.stepTimeout())
		defer cancel()

		return chromedp.Run(ctx,
			chromedp.Evaluate(collectTextsJS(pasfSelectors), &texts),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(1500*time.Millisecond),
			chromedp.Evaluate(collectTextsJS(pasfBottomSelectors), &bottom),
			chromedp.Evaluate(`document.documentElement.outerHTML`, &pageHTML),
		)
	})
	if err != nil {
		return Outcome{Err: fmt.Errorf("pasf extraction: %w", err)}
	}

	texts = append(texts, bottom...)

	if len(texts) == 0 {
		fallback, err := parseRelatedFromHTML(pageHTML)
		if err != nil {
			return Outcome{Err: fmt.Errorf("pasf fallback: %w", err)}
		}
		texts = fallback
	}

	return Outcome{Items: texts}
}

// collectTextsJS builds an in-page expression that walks every selector in
// the cascade and returns the trimmed innerText of all matches.
func collectTextsJS(selectors []string) string {
	encoded, _ := json.Marshal(selectors)
	return fmt.Sprintf(`
		(function(selectors) {
			var out = [];
			for (var i = 0; i < selectors.length; i++) {
				var els;
				try {
					els = document.querySelectorAll(selectors[i]);
				} catch (e) {
					continue;
				}
				for (var j = 0; j < els.length; j++) {
					var t = (els[j].innerText || '').trim();
					if (t) out.push(t);
				}
			}
			return out;
		})(%s)
	`, encoded)
}

// clickFirstJS builds an in-page expression that clicks the first element
// matching any selector in the cascade.
func clickFirstJS(selectors []string) string {
	encoded, _ := json.Marshal(selectors)
	return fmt.Sprintf(`
		(function(selectors) {
			for (var i = 0; i < selectors.length; i++) {
				var el;
				try {
					el = document.querySelector(selectors[i]);
				} catch (e) {
					continue;
				}
				if (el) {
					el.click();
					return true;
				}
			}
			return false;
		})(%s)
	`, encoded)
}

// acceptCookiesJS dismisses the consent prompt when Google shows one.
const acceptCookiesJS = `
	(function() {
		var btns = document.querySelectorAll('button');
		for (var i = 0; i < btns.length; i++) {
			var t = btns[i].innerText || '';
			if (t.indexOf('Accept all') !== -1 || t.indexOf('I agree') !== -1 || t.indexOf('Accept') !== -1) {
				btns[i].click();
				return true;
			}
		}
		return false;
	})()
`
