// Package cli implements the command-line interface for sheetsync.
//
// The root command resolves the sheets to sync, runs the pipeline and writes the
// resources file, then prints a summary as text or JSON. The discover subcommand
// prints the tab names discovery would use, and init writes a starter config file.
package cli
