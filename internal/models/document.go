// Package models defines the domain types for Ansuz.
package models

import "time"

// Category is the closed set of document categories recognized in frontmatter.
type Category string

// Recognized categories.
const (
	CategoryGettingStarted Category = "getting-started"
	CategoryGuide          Category = "guide"
	CategoryReference      Category = "reference"
	CategoryContributing   Category = "contributing"
	CategoryRoadmap        Category = "roadmap"
	CategoryArchitecture   Category = "architecture"
	CategoryExample        Category = "example"
	CategoryMisc           Category = "misc"
	CategoryDocumentation  Category = "documentation"
)

// Categories lists every recognized category in display order.
var Categories = []Category{
	CategoryGettingStarted,
	CategoryGuide,
	CategoryReference,
	CategoryContributing,
	CategoryRoadmap,
	CategoryArchitecture,
	CategoryExample,
	CategoryMisc,
	CategoryDocumentation,
}

// NormalizeCategory maps a raw frontmatter value onto the closed category
// set. Unrecognized values fall back to "misc".
func NormalizeCategory(raw string) Category {
	for _, c := range Categories {
		if raw == string(c) {
			return c
		}
	}
	return CategoryMisc
}

// FrontmatterState describes how complete a document's frontmatter is.
type FrontmatterState int

const (
	// FrontmatterAbsent means the document has no frontmatter block at all.
	FrontmatterAbsent FrontmatterState = iota
	// FrontmatterIncomplete means a block exists but required fields are missing.
	FrontmatterIncomplete
	// FrontmatterComplete means every required field is present.
	FrontmatterComplete
)

// String returns the state name used in reports.
func (s FrontmatterState) String() string {
	switch s {
	case FrontmatterIncomplete:
		return "incomplete"
	case FrontmatterComplete:
		return "complete"
	default:
		return "absent"
	}
}

// Frontmatter fields required for a record to count as complete.
var requiredFrontmatter = []string{"title", "description", "category", "tags", "last_updated"}

// FrontmatterRecord is the typed view of a document's frontmatter block.
// A nil *FrontmatterRecord means the block is absent.
type FrontmatterRecord struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Related     []string `json:"related,omitempty"`
	LastUpdated string   `json:"last_updated,omitempty"`
	Version     string   `json:"version,omitempty"`
}

// Missing returns the required field names absent from the record.
func (r *FrontmatterRecord) Missing() []string {
	if r == nil {
		return requiredFrontmatter
	}
	var out []string
	for _, f := range requiredFrontmatter {
		switch f {
		case "title":
			if r.Title == "" {
				out = append(out, f)
			}
		case "description":
			if r.Description == "" {
				out = append(out, f)
			}
		case "category":
			if r.Category == "" {
				out = append(out, f)
			}
		case "tags":
			if len(r.Tags) == 0 {
				out = append(out, f)
			}
		case "last_updated":
			if r.LastUpdated == "" {
				out = append(out, f)
			}
		}
	}
	return out
}

// State classifies the record as absent, incomplete, or complete.
func (r *FrontmatterRecord) State() FrontmatterState {
	if r == nil {
		return FrontmatterAbsent
	}
	if len(r.Missing()) > 0 {
		return FrontmatterIncomplete
	}
	return FrontmatterComplete
}

// Document represents a parsed Markdown file in the corpus.
type Document struct {
	Path        string             `json:"path"`
	Body        string             `json:"body"`
	Frontmatter *FrontmatterRecord `json:"frontmatter,omitempty"`
	Title       string             `json:"title,omitempty"`
	Refs        []string           `json:"refs,omitempty"`
	Checksum    string             `json:"checksum"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// DocMeta is a lightweight representation returned by list operations.
type DocMeta struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RefKind classifies how a reference is written.
type RefKind string

// Reference classifications.
const (
	RefRelative    RefKind = "relative"
	RefDotRelative RefKind = "dot-relative"
	RefRooted      RefKind = "rooted"
	RefExternal    RefKind = "external"
	RefAnchorOnly  RefKind = "anchor-only"
)

// Internal reports whether edges of this kind participate in graph checks.
// External and anchor-only references are never checked for existence.
func (k RefKind) Internal() bool {
	switch k {
	case RefRelative, RefDotRelative, RefRooted:
		return true
	}
	return false
}

// ReferenceEdge is one directed reference from a document to a target.
type ReferenceEdge struct {
	Source string  `json:"source"`
	Raw    string  `json:"raw"`
	Kind   RefKind `json:"kind"`
	// Target is the canonical corpus-relative path. Empty when the
	// reference could not be resolved (see Unresolved).
	Target string `json:"target,omitempty"`
	// Unresolved marks a relative reference that escapes the corpus root.
	// Such edges are reported separately from broken ones, never dropped.
	Unresolved bool `json:"unresolved,omitempty"`
	Exists     bool `json:"exists"`
}

// QualityLabel buckets a quality score.
type QualityLabel string

// Quality labels, best to worst.
const (
	QualityExcellent QualityLabel = "Excellent"
	QualityGood      QualityLabel = "Good"
	QualityAdequate  QualityLabel = "Adequate"
	QualityPoor      QualityLabel = "Poor"
	QualityVeryPoor  QualityLabel = "Very Poor"
)

// QualityChecks records each rubric check individually.
type QualityChecks struct {
	HasTitle          bool `json:"has_title"`
	HasDescription    bool `json:"has_description"`
	HasH1             bool `json:"has_h1"`
	HasH2             bool `json:"has_h2"`
	HasTwoH2          bool `json:"has_two_h2"`
	HasCode           bool `json:"has_code"`
	HasCodeLang       bool `json:"has_code_lang"`
	HasInternalLink   bool `json:"has_internal_link"`
	HasRelatedSection bool `json:"has_related_section"`
	HasRelatedLink    bool `json:"has_related_link"`
}

// QualityRecord is the structural-completeness result for one document.
type QualityRecord struct {
	Path   string        `json:"path"`
	Score  int           `json:"score"`
	Checks QualityChecks `json:"checks"`
	Label  QualityLabel  `json:"label"`
}

// ReadabilityLabel buckets a words-per-sentence ratio.
type ReadabilityLabel string

// Readability labels.
const (
	ReadabilitySimple  ReadabilityLabel = "Simple"
	ReadabilityGood    ReadabilityLabel = "Good"
	ReadabilityComplex ReadabilityLabel = "Complex"
)

// ReadabilityRecord is the lexical-complexity result for one document.
type ReadabilityRecord struct {
	Path             string           `json:"path"`
	Words            int              `json:"words"`
	Sentences        int              `json:"sentences"`
	WordsPerSentence float64          `json:"words_per_sentence"`
	Label            ReadabilityLabel `json:"label"`
}

// HistoryRow is one run's aggregate metrics in the history store.
type HistoryRow struct {
	Date              string `json:"date"`
	TotalDocs         int    `json:"total_docs"`
	HealthScore       int    `json:"health_score"`
	BrokenLinks       int    `json:"broken_links"`
	FrontmatterIssues int    `json:"frontmatter_issues"`
	Excellent         int    `json:"excellent"`
	Good              int    `json:"good"`
	Adequate          int    `json:"adequate"`
	Poor              int    `json:"poor"`
	VeryPoor          int    `json:"very_poor"`
}
