package domain

import "strings"

const sectionHeadingPrefix = "## "

// ParseSections splits generated markdown into ordered sections on
// level-2 headings. Content runs from each heading to the next level-2
// heading or end of document. Text before the first heading is
// discarded, and a document with no level-2 headings yields no
// sections. Section IDs are not assigned here; callers own identity.
func ParseSections(markdown string) []DocSection {
	var sections []DocSection
	var current *DocSection
	var content []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(content, "\n"))
		sections = append(sections, *current)
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, sectionHeadingPrefix) {
			flush()
			current = &DocSection{
				Title: strings.TrimSpace(line[len(sectionHeadingPrefix):]),
				Order: len(sections),
			}
			content = content[:0]
			continue
		}
		if current != nil {
			content = append(content, line)
		}
	}
	flush()

	return sections
}

// SectionMarkdown renders a section back to markdown. Re-parsing the
// result reproduces an equivalent single section.
func SectionMarkdown(s *DocSection) string {
	return sectionHeadingPrefix + s.Title + "\n" + s.Content
}
