// Package discovery finds sheet tab names when none are configured.
//
// Google publishes no stable listing of a spreadsheet's tabs, so discovery is best
// effort: it tries the legacy worksheet feed, then the published HTML view, then
// probes candidate names through the CSV export. An explicit list in the
// configuration always takes precedence and skips discovery entirely.
package discovery
