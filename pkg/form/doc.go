// Package form aggregates controls into fieldsets and runs the submission
// pipeline: bind submitted values, sanitise them through the filter chain,
// validate every field, and collect errors by field name.
//
// A Form is built per request and is not safe for concurrent use.
package form
