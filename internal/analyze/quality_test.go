package analyze

import (
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
)

func analyzeContent(t *testing.T, content string) *DocResult {
	t.Helper()
	return Document("docs/test.md", []byte(content), time.Now())
}

const fullDoc = `---
title: Everything
description: A document that scores all rubric points.
category: guide
tags: [demo]
last_updated: March 27, 2025
---
# Everything

Intro paragraph with an internal [link](./other.md).

## First Section

` + "```go\nfmt.Println(\"hi\")\n```" + `

## Second Section

More prose.

## Related Documents

- [Other](./other.md)
`

func TestQuality_FullRubric(t *testing.T) {
	r := analyzeContent(t, fullDoc)
	if r.Quality.Score != 10 {
		t.Errorf("score = %d, want 10 (checks %+v)", r.Quality.Score, r.Quality.Checks)
	}
	if r.Quality.Label != models.QualityExcellent {
		t.Errorf("label = %q, want Excellent", r.Quality.Label)
	}
}

func TestQuality_EmptyDoc(t *testing.T) {
	r := analyzeContent(t, "just a line of text\n")
	if r.Quality.Score != 0 {
		t.Errorf("score = %d, want 0", r.Quality.Score)
	}
	if r.Quality.Label != models.QualityVeryPoor {
		t.Errorf("label = %q, want Very Poor", r.Quality.Label)
	}
}

func TestQuality_CodeLangConditionalOnCode(t *testing.T) {
	r := analyzeContent(t, "# T\n\n```\nplain fence\n```\n")
	if !r.Quality.Checks.HasCode {
		t.Error("expected HasCode")
	}
	if r.Quality.Checks.HasCodeLang {
		t.Error("fence without language must not score HasCodeLang")
	}
}

func TestQuality_RelatedLinkConditionalOnSection(t *testing.T) {
	withEmpty := analyzeContent(t, "# T\n\n## Related Documents\n\nnothing here\n")
	if !withEmpty.Quality.Checks.HasRelatedSection || withEmpty.Quality.Checks.HasRelatedLink {
		t.Errorf("checks = %+v, want section without link", withEmpty.Quality.Checks)
	}

	withLink := analyzeContent(t, "# T\n\n## Related Documents\n\n- [Other](./other.md)\n")
	if !withLink.Quality.Checks.HasRelatedLink {
		t.Error("expected HasRelatedLink")
	}
}

func TestQuality_ExternalLinkDoesNotCountAsInternal(t *testing.T) {
	r := analyzeContent(t, "# T\n\nOnly [this](https://example.com) link.\n")
	if r.Quality.Checks.HasInternalLink {
		t.Error("external link must not score HasInternalLink")
	}
}

// Adding a qualifying element must never decrease the score.
func TestQuality_Monotonic(t *testing.T) {
	base := "# T\n\n## One\n\ntext\n"
	withSecond := base + "\n## Two\n\nmore\n"

	lo := analyzeContent(t, base).Quality.Score
	hi := analyzeContent(t, withSecond).Quality.Score
	if hi < lo {
		t.Errorf("score decreased from %d to %d after adding a heading", lo, hi)
	}
}

func TestQualityLabel_Buckets(t *testing.T) {
	tests := []struct {
		score int
		want  models.QualityLabel
	}{
		{10, models.QualityExcellent},
		{9, models.QualityExcellent},
		{8, models.QualityGood},
		{7, models.QualityGood},
		{6, models.QualityAdequate},
		{5, models.QualityAdequate},
		{4, models.QualityPoor},
		{3, models.QualityPoor},
		{2, models.QualityVeryPoor},
		{0, models.QualityVeryPoor},
	}
	for _, tt := range tests {
		if got := QualityLabel(tt.score); got != tt.want {
			t.Errorf("QualityLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
