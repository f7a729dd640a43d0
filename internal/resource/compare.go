package resource

// HeadingChange counts entries added and removed under one heading
type HeadingChange struct {
	Name    string `json:"name"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// ChangeSummary describes how a document differs from the previously written one
type ChangeSummary struct {
	AddedHeadings   []string        `json:"added_headings,omitempty"`
	RemovedHeadings []string        `json:"removed_headings,omitempty"`
	Changes         []HeadingChange `json:"changes,omitempty"`
}

// HasChanges reports whether anything other than the timestamp changed
func (c *ChangeSummary) HasChanges() bool {
	return len(c.AddedHeadings) > 0 || len(c.RemovedHeadings) > 0 || len(c.Changes) > 0
}

// Compare reports headings and entries that differ between previous and current.
// Entries are matched by sub-heading, name and URL. A nil previous document
// counts as empty.
func Compare(previous, current *Document) *ChangeSummary {
	summary := &ChangeSummary{}
	if previous == nil {
		previous = &Document{}
	}
	if current == nil {
		current = &Document{}
	}

	for _, h := range current.Headings {
		old, ok := previous.Heading(h.Name)
		if !ok {
			summary.AddedHeadings = append(summary.AddedHeadings, h.Name)
			continue
		}

		oldKeys := entryKeys(old)
		newKeys := entryKeys(h.Section)

		change := HeadingChange{Name: h.Name}
		for key, n := range newKeys {
			if extra := n - oldKeys[key]; extra > 0 {
				change.Added += extra
			}
		}
		for key, n := range oldKeys {
			if missing := n - newKeys[key]; missing > 0 {
				change.Removed += missing
			}
		}
		if change.Added > 0 || change.Removed > 0 {
			summary.Changes = append(summary.Changes, change)
		}
	}

	for _, h := range previous.Headings {
		if _, ok := current.Heading(h.Name); !ok {
			summary.RemovedHeadings = append(summary.RemovedHeadings, h.Name)
		}
	}

	return summary
}

// entryKeys counts entries by sub-heading|name|url; duplicates count separately
func entryKeys(s Section) map[string]int {
	keys := make(map[string]int, s.Count())
	for _, sh := range s.SubHeadings {
		for _, e := range sh.Entries {
			keys[sh.Name+"|"+e.Name+"|"+e.URL]++
		}
	}
	for _, e := range s.DirectLinks {
		keys["|"+e.Name+"|"+e.URL]++
	}
	return keys
}
