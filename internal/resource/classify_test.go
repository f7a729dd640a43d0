package resource

import (
	"reflect"
	"testing"
)

func TestClassify_ShortInput(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"nil rows", nil},
		{"no rows", [][]string{}},
		{"header only", [][]string{{"Name", "URL", "Sub-heading"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.rows)
			if !got.IsEmpty() {
				t.Errorf("Classify() = %+v, want empty section", got)
			}
			if got.SubHeadings != nil || got.DirectLinks != nil {
				t.Errorf("Classify() should leave both parts nil, got %+v", got)
			}
		})
	}
}

func TestClassify_OrderPreservation(t *testing.T) {
	rows := [][]string{
		{"Name", "URL", "Sub-heading"},
		{"A", "", "G1"},
		{"B", "", "G1"},
		{"C", "", ""},
	}

	got := Classify(rows)
	want := Section{
		SubHeadings: []SubHeading{
			{Name: "G1", Entries: []Entry{{Name: "A"}, {Name: "B"}}},
		},
		DirectLinks: []Entry{{Name: "C"}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Classify() = %+v, want %+v", got, want)
	}
}

func TestClassify_Rows(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want Section
	}{
		{
			name: "header discarded regardless of content",
			rows: [][]string{
				{"Looks Like Data", "example.org", "G"},
				{"Real", "real.org"},
			},
			want: Section{DirectLinks: []Entry{{Name: "Real", URL: "https://real.org"}}},
		},
		{
			name: "blank names skipped",
			rows: [][]string{
				{"Name"},
				{""},
				{"   ", "ignored.org", "G"},
				{},
				{"Kept"},
			},
			want: Section{DirectLinks: []Entry{{Name: "Kept"}}},
		},
		{
			name: "name and sub-heading trimmed",
			rows: [][]string{
				{"Name"},
				{"  Padded  ", "  www.pad.org ", "  Group  "},
			},
			want: Section{SubHeadings: []SubHeading{
				{Name: "Group", Entries: []Entry{{Name: "Padded", URL: "https://www.pad.org"}}},
			}},
		},
		{
			name: "blank url omitted",
			rows: [][]string{
				{"Name"},
				{"No URL", "   "},
				{"Quotes Only", `""`},
			},
			want: Section{DirectLinks: []Entry{{Name: "No URL"}, {Name: "Quotes Only"}}},
		},
		{
			name: "stable grouping across interleaved rows",
			rows: [][]string{
				{"Name"},
				{"A1", "", "A"},
				{"B1", "", "B"},
				{"D1"},
				{"A2", "", "A"},
				{"B2", "", "B"},
				{"D2"},
			},
			want: Section{
				SubHeadings: []SubHeading{
					{Name: "A", Entries: []Entry{{Name: "A1"}, {Name: "A2"}}},
					{Name: "B", Entries: []Entry{{Name: "B1"}, {Name: "B2"}}},
				},
				DirectLinks: []Entry{{Name: "D1"}, {Name: "D2"}},
			},
		},
		{
			name: "extra columns ignored",
			rows: [][]string{
				{"Name", "URL", "Sub", "Notes"},
				{"X", "https://x.org", "", "some note"},
			},
			want: Section{DirectLinks: []Entry{{Name: "X", URL: "https://x.org"}}},
		},
		{
			name: "only blank rows",
			rows: [][]string{
				{"Name"},
				{"", "a.org", "G"},
			},
			want: Section{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.rows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassify_DefaultSubHeading(t *testing.T) {
	rows := [][]string{
		{"Name", "URL", "Sub-heading"},
		{"Grouped", "", "Camps"},
		{"Loose", "loose.org", ""},
	}

	got := Classify(rows, WithDefaultSubHeading("General"))
	want := Section{
		SubHeadings: []SubHeading{
			{Name: "Camps", Entries: []Entry{{Name: "Grouped"}}},
			{Name: "General", Entries: []Entry{{Name: "Loose", URL: "https://loose.org"}}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Classify() = %+v, want %+v", got, want)
	}

	blank := Classify(rows, WithDefaultSubHeading("   "))
	if len(blank.DirectLinks) != 1 {
		t.Errorf("blank default sub-heading should keep direct links, got %+v", blank)
	}
}

func TestSection_Count(t *testing.T) {
	s := Section{
		SubHeadings: []SubHeading{
			{Name: "A", Entries: []Entry{{Name: "1"}, {Name: "2"}}},
			{Name: "B", Entries: []Entry{{Name: "3"}}},
		},
		DirectLinks: []Entry{{Name: "4"}},
	}

	if got := s.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}

	entries, ok := s.SubHeading("B")
	if !ok || len(entries) != 1 || entries[0].Name != "3" {
		t.Errorf("SubHeading(B) = %+v, %v", entries, ok)
	}
	if _, ok := s.SubHeading("missing"); ok {
		t.Error("SubHeading(missing) should report false")
	}
}
