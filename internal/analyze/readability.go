package analyze

import (
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// Readability computes the coarse lexical-complexity classification for one
// document. Fenced code blocks are excluded from all counting so sample code
// and shell snippets never skew the ratio. This is a heuristic over
// whitespace tokens and terminal punctuation, not linguistic analysis.
func Readability(doc *models.Document) models.ReadabilityRecord {
	prose := stripFencedCode(doc.Body)

	words := len(strings.Fields(prose))
	sentences := strings.Count(prose, ".") + strings.Count(prose, "!") + strings.Count(prose, "?")
	if sentences < 1 {
		sentences = 1
	}
	ratio := float64(words) / float64(sentences)

	return models.ReadabilityRecord{
		Path:             doc.Path,
		Words:            words,
		Sentences:        sentences,
		WordsPerSentence: ratio,
		Label:            ReadabilityLabel(ratio),
	}
}

// ReadabilityLabel buckets a words-per-sentence ratio.
func ReadabilityLabel(ratio float64) models.ReadabilityLabel {
	switch {
	case ratio < 10:
		return models.ReadabilitySimple
	case ratio <= 20:
		return models.ReadabilityGood
	default:
		return models.ReadabilityComplex
	}
}

// stripFencedCode removes fence lines and everything between them.
func stripFencedCode(body string) string {
	var b strings.Builder
	inCode := false
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
