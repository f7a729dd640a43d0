package resource

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout formats last_updated as an ISO-8601 UTC instant with microseconds
const TimestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders ts in UTC with a literal Z suffix.
// The fractional part is dropped when it is zero.
func FormatTimestamp(ts time.Time) string {
	ts = ts.UTC()
	if ts.Nanosecond()/int(time.Microsecond) == 0 {
		return ts.Format("2006-01-02T15:04:05") + "Z"
	}
	return ts.Format(TimestampLayout) + "Z"
}

// Assemble builds the output document from per-sheet sections.
// Sections keep their input order; empty ones are left out.
func Assemble(sections []Heading, ts time.Time) *Document {
	doc := &Document{
		LastUpdated: FormatTimestamp(ts),
		Headings:    make([]Heading, 0, len(sections)),
	}

	for _, h := range sections {
		if h.Section.IsEmpty() {
			continue
		}
		doc.Headings = append(doc.Headings, h)
	}

	return doc
}

// HeadingStats counts the entries of one heading
type HeadingStats struct {
	Name              string `json:"name"`
	SubHeadings       int    `json:"sub_headings"`
	SubHeadingEntries int    `json:"sub_heading_entries"`
	DirectLinks       int    `json:"direct_links"`
	Total             int    `json:"total"`
}

// String describes the counts the way the sync log reports them
func (s HeadingStats) String() string {
	parts := make([]string, 0, 2)
	if s.SubHeadings > 0 {
		parts = append(parts, fmt.Sprintf("%d entries across %d sub-headings", s.SubHeadingEntries, s.SubHeadings))
	}
	if s.DirectLinks > 0 {
		parts = append(parts, fmt.Sprintf("%d direct entries", s.DirectLinks))
	}
	return fmt.Sprintf("%d total entries (%s)", s.Total, strings.Join(parts, ", "))
}

// StatsFor computes entry counts for a section
func StatsFor(name string, s Section) HeadingStats {
	stats := HeadingStats{
		Name:        name,
		SubHeadings: len(s.SubHeadings),
		DirectLinks: len(s.DirectLinks),
	}
	for _, sh := range s.SubHeadings {
		stats.SubHeadingEntries += len(sh.Entries)
	}
	stats.Total = stats.SubHeadingEntries + stats.DirectLinks
	return stats
}

// Stats returns entry counts for every heading in document order
func (d *Document) Stats() []HeadingStats {
	stats := make([]HeadingStats, 0, len(d.Headings))
	for _, h := range d.Headings {
		stats = append(stats, StatsFor(h.Name, h.Section))
	}
	return stats
}

// TotalEntries sums the entries of all headings
func (d *Document) TotalEntries() int {
	total := 0
	for _, h := range d.Headings {
		total += h.Section.Count()
	}
	return total
}
