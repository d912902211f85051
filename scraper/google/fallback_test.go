package google

import (
	"reflect"
	"testing"
)

func TestParseQuestionsFromHTML(t *testing.T) {
	html := `
		<html><body>
			<div class="wQiwMc">What is a mechanical keyboard?</div>
			<div class="JlqpRe">Are mechanical keyboards worth it?</div>
			<div class="unrelated">sidebar text</div>
			<div class="ULSxyf">  How long do switches last?  </div>
		</body></html>`

	got, err := parseQuestionsFromHTML(html)
	if err != nil {
		t.Fatalf("parseQuestionsFromHTML: %v", err)
	}
	want := []string{
		"What is a mechanical keyboard?",
		"Are mechanical keyboards worth it?",
		"How long do switches last?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v; want %v", got, want)
	}
}

func TestParseRelatedFromHTML(t *testing.T) {
	html := `
		<html><body>
			<div class="AJLUJb"><a href="/search?q=a">keyboard switches</a></div>
			<div class="s6JM6d"><a href="/search?q=b">keycap sets</a></div>
			<a class="k8XOCe" href="/search?q=c">wrist rest</a>
			<a class="other" href="/x">navigation link</a>
		</body></html>`

	got, err := parseRelatedFromHTML(html)
	if err != nil {
		t.Fatalf("parseRelatedFromHTML: %v", err)
	}
	want := []string{"keyboard switches", "keycap sets", "wrist rest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v; want %v", got, want)
	}
}

func TestParseTextsNoMatches(t *testing.T) {
	got, err := parseQuestionsFromHTML(`<html><body><p>nothing here</p></body></html>`)
	if err != nil {
		t.Fatalf("parseQuestionsFromHTML: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}
