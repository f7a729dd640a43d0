// Package resource provides the data model and conversion logic for resource listings.
//
// Each sheet of the upstream spreadsheet is a table of rows: a header row followed by
// rows of name, URL and an optional sub-heading. Classify turns those rows into a
// Section, Assemble collects the Sections of every sheet into a Document, and the
// Document marshals to YAML with the row and sheet order preserved.
package resource
