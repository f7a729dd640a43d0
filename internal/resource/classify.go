package resource

import "strings"

// Column positions within a sheet row
const (
	ColumnName       = 0
	ColumnURL        = 1
	ColumnSubHeading = 2
)

type classifyOptions struct {
	defaultSubHeading string
}

// ClassifyOption customizes Classify
type ClassifyOption func(*classifyOptions)

// WithDefaultSubHeading groups rows without a sub-heading under name instead of
// listing them as direct links. A blank name keeps the direct links behavior.
func WithDefaultSubHeading(name string) ClassifyOption {
	return func(o *classifyOptions) {
		o.defaultSubHeading = strings.TrimSpace(name)
	}
}

// Classify converts the raw rows of one sheet into a Section.
//
// Row 0 is the header and is always discarded. Rows with a blank name are
// skipped. Entries with a sub-heading are grouped under it in first-seen order;
// the rest become direct links. Fewer than two rows yield an empty Section.
func Classify(rows [][]string, opts ...ClassifyOption) Section {
	var o classifyOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(rows) < 2 {
		return Section{}
	}

	var section Section
	groups := make(map[string]int)

	for _, row := range rows[1:] {
		name := cell(row, ColumnName)
		if name == "" {
			continue
		}

		entry := Entry{Name: name}
		if raw := cell(row, ColumnURL); raw != "" {
			if url, ok := NormalizeURL(raw); ok {
				entry.URL = url
			}
		}

		group := cell(row, ColumnSubHeading)
		if group == "" {
			group = o.defaultSubHeading
		}
		if group == "" {
			section.DirectLinks = append(section.DirectLinks, entry)
			continue
		}

		idx, ok := groups[group]
		if !ok {
			idx = len(section.SubHeadings)
			groups[group] = idx
			section.SubHeadings = append(section.SubHeadings, SubHeading{Name: group})
		}
		section.SubHeadings[idx].Entries = append(section.SubHeadings[idx].Entries, entry)
	}

	return section
}

// cell returns the trimmed value at col, or "" when the row is too short
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
