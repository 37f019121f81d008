// Package pagination provides CLI parsing and validation for the result
// shaping flags shared by list commands: --sort-by, --limit, and --per-page.
package pagination
