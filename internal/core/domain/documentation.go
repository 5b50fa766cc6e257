package domain

import (
	"strings"
	"time"
	"unicode"
)

// DocVersion is the documentation schema version written to metadata.
const DocVersion = "1.0.0"

// DocType selects the documentation audience.
type DocType string

// Available documentation types.
const (
	// DocTypeUser is end-user facing documentation.
	DocTypeUser DocType = "user"

	// DocTypeDeveloper is developer-facing documentation.
	DocTypeDeveloper DocType = "dev"

	// DocTypeBoth covers both audiences per screen.
	DocTypeBoth DocType = "both"
)

// IsValid returns true if the doc type is recognised.
func (t DocType) IsValid() bool {
	switch t {
	case DocTypeUser, DocTypeDeveloper, DocTypeBoth:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocType) String() string {
	return string(t)
}

// DocFormat selects a persisted output format.
type DocFormat string

// Available output formats.
const (
	FormatMarkdown DocFormat = "markdown"
	FormatHTML     DocFormat = "html"
)

// IsValid returns true if the format is recognised.
func (f DocFormat) IsValid() bool {
	return f == FormatMarkdown || f == FormatHTML
}

// DocSection is a titled block of generated documentation,
// produced by splitting markdown on level-2 headings.
type DocSection struct {
	// ID is the unique section identifier.
	ID string

	// Title is the heading text without the "## " marker.
	Title string

	// Content is everything between this heading and the next
	// level-2 heading (or end of document), trimmed.
	Content string

	// Order is the zero-based position of the heading in the source
	// markdown. Section ordering always matches heading order.
	Order int

	// ParentID links to a parent section, if any.
	ParentID string

	// SourceNodeID links back to a design node, if known.
	SourceNodeID string

	// DocType is the audience this section belongs to.
	DocType DocType
}

// Documentation is a complete generated document for one design file.
// Regeneration always produces a brand-new Documentation with a new ID;
// there is no in-place diffing. The durable state is the persisted
// artifact set, not this value.
type Documentation struct {
	// ID is the unique identifier, newly assigned per generation.
	ID string

	// SourceKey is the design file key this was generated from.
	SourceKey string

	// SourceName is the design file display name.
	SourceName string

	// Title is the document title.
	Title string

	// Description is a short summary of the document.
	Description string

	// Sections are the parsed sections in heading order.
	Sections []DocSection

	// DocType is the audience the document was generated for.
	DocType DocType

	// CreatedAt and UpdatedAt are generation timestamps.
	CreatedAt time.Time
	UpdatedAt time.Time

	// Version is the documentation schema version.
	Version string

	// SourceVersion is the design file version the content reflects.
	SourceVersion string
}

// Slug returns the filesystem-safe slug for this document's artifacts.
func (d *Documentation) Slug() string {
	return Slugify(d.SourceName)
}

// Slugify derives a filesystem-safe identifier from a display name.
// Alphanumerics and "._-" are kept, spaces become underscores, the
// result is lowercased, and every other rune becomes an underscore.
// Deterministic: the same input always yields the same slug. Names that
// differ only in stripped characters collide; that is a documented
// limitation of the artifact naming scheme.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == ' ':
			b.WriteByte('_')
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
