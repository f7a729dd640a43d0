// Package pipeline runs one sync: fetch every sheet, classify its rows and assemble
// the output document.
//
// Sheets are processed one at a time in the given order. A sheet that cannot be
// fetched is logged and contributes nothing; only a run with no sheets at all, or
// one where no sheet produced entries, fails.
package pipeline
