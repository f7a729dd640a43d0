// Package storage writes the generated resources file read by the Jekyll site.
//
// The file starts with a comment header naming its origin and timestamp, followed
// by the YAML document. Writes go through a temporary file in the same directory
// and a rename, so a failed run never leaves a truncated file behind. The default
// location is _data/resources.yml.
package storage
