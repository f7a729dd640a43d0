package resource

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is a single named resource link
type Entry struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

// SubHeading is a named group of entries within a Section
type SubHeading struct {
	Name    string
	Entries []Entry
}

// Section is the processed representation of one sheet.
// SubHeadings keep the order in which each name first appeared in the rows.
type Section struct {
	SubHeadings []SubHeading
	DirectLinks []Entry
}

// IsEmpty reports whether the section has neither sub-headings nor direct links
func (s Section) IsEmpty() bool {
	return len(s.SubHeadings) == 0 && len(s.DirectLinks) == 0
}

// Count returns the number of entries across all sub-headings and direct links
func (s Section) Count() int {
	total := len(s.DirectLinks)
	for _, sh := range s.SubHeadings {
		total += len(sh.Entries)
	}
	return total
}

// SubHeading returns the entries grouped under name
func (s Section) SubHeading(name string) ([]Entry, bool) {
	for _, sh := range s.SubHeadings {
		if sh.Name == name {
			return sh.Entries, true
		}
	}
	return nil, false
}

// MarshalYAML emits the section as a mapping, omitting empty parts
func (s Section) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	if len(s.SubHeadings) > 0 {
		subs := &yaml.Node{Kind: yaml.MappingNode}
		for _, sh := range s.SubHeadings {
			entries, err := encodeNode(sh.Entries)
			if err != nil {
				return nil, fmt.Errorf("encoding sub-heading %q: %w", sh.Name, err)
			}
			subs.Content = append(subs.Content, stringNode(sh.Name), entries)
		}
		node.Content = append(node.Content, stringNode("sub_headings"), subs)
	}

	if len(s.DirectLinks) > 0 {
		links, err := encodeNode(s.DirectLinks)
		if err != nil {
			return nil, fmt.Errorf("encoding direct links: %w", err)
		}
		node.Content = append(node.Content, stringNode("direct_links"), links)
	}

	return node, nil
}

// UnmarshalYAML reads a section back, keeping the file's key order
func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: section must be a mapping", value.Line)
	}

	*s = Section{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "sub_headings":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: sub_headings must be a mapping", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				var entries []Entry
				if err := val.Content[j+1].Decode(&entries); err != nil {
					return fmt.Errorf("decoding sub-heading %q: %w", val.Content[j].Value, err)
				}
				s.SubHeadings = append(s.SubHeadings, SubHeading{
					Name:    val.Content[j].Value,
					Entries: entries,
				})
			}
		case "direct_links":
			if err := val.Decode(&s.DirectLinks); err != nil {
				return fmt.Errorf("decoding direct links: %w", err)
			}
		}
	}

	return nil
}

// Heading pairs a sheet name with its processed Section
type Heading struct {
	Name    string
	Section Section
}

// Document is the aggregated output of one sync run
type Document struct {
	LastUpdated string
	Headings    []Heading
}

// Heading returns the section stored under the given sheet name
func (d *Document) Heading(name string) (Section, bool) {
	for _, h := range d.Headings {
		if h.Name == name {
			return h.Section, true
		}
	}
	return Section{}, false
}

// MarshalYAML emits last_updated followed by headings in processing order
func (d *Document) MarshalYAML() (interface{}, error) {
	headings := &yaml.Node{Kind: yaml.MappingNode}
	for _, h := range d.Headings {
		section, err := encodeNode(h.Section)
		if err != nil {
			return nil, fmt.Errorf("encoding heading %q: %w", h.Name, err)
		}
		headings.Content = append(headings.Content, stringNode(h.Name), section)
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			stringNode("last_updated"), stringNode(d.LastUpdated),
			stringNode("headings"), headings,
		},
	}, nil
}

// UnmarshalYAML reads a document previously written by MarshalYAML
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: document must be a mapping", value.Line)
	}

	*d = Document{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "last_updated":
			d.LastUpdated = val.Value
		case "headings":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: headings must be a mapping", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				var section Section
				if err := val.Content[j+1].Decode(&section); err != nil {
					return fmt.Errorf("decoding heading %q: %w", val.Content[j].Value, err)
				}
				d.Headings = append(d.Headings, Heading{Name: val.Content[j].Value, Section: section})
			}
		}
	}

	return nil
}

func stringNode(s string) *yaml.Node {
	n := &yaml.Node{}
	n.SetString(s)
	return n
}

func encodeNode(v interface{}) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
