package google

import (
	"errors"
	"strings"
	"testing"
)

func TestOutcomeStates(t *testing.T) {
	found := Outcome{Items: []string{"a"}}
	if found.Failed() || found.Empty() {
		t.Error("outcome with items should be neither failed nor empty")
	}

	empty := Outcome{}
	if empty.Failed() || !empty.Empty() {
		t.Error("outcome with no items and no error should be empty")
	}

	failed := Outcome{Err: errors.New("boom")}
	if !failed.Failed() || failed.Empty() {
		t.Error("outcome with an error should be failed, not empty")
	}
}

func TestCollectTextsJSEmbedsSelectors(t *testing.T) {
	js := collectTextsJS([]string{`div[jsname='Cpkphb']`, "a.k8XOCe"})

	if !strings.Contains(js, `div[jsname='Cpkphb']`) {
		t.Error("generated JS missing first selector")
	}
	if !strings.Contains(js, "a.k8XOCe") {
		t.Error("generated JS missing second selector")
	}
	// Selectors are injected as a JSON array, so quotes must be escaped
	// rather than breaking out of the literal.
	if !strings.Contains(js, "[\"div[jsname='Cpkphb']\",\"a.k8XOCe\"]") {
		t.Errorf("selectors not embedded as a JSON array:\n%s", js)
	}
}
