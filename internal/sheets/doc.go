// Package sheets fetches the raw rows of spreadsheet tabs.
//
// Client downloads one tab at a time from the Google Sheets CSV export and parses it
// as RFC 4180 CSV. Workbook reads the same tables from a local .xlsx export, which
// is handy offline and in tests. Both return rows as slices of trimmed strings; the
// header row is kept and left to the caller.
package sheets
