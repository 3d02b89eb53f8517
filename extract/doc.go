// Package extract turns the text spans of an exam document into structured
// multiple-choice question records.
//
// Each span is classified as a question start ("12. text"), an option line
// ("b) text") or continuation text, and a single loop drives a small state
// machine over those classifications page by page. Missing options are kept
// as explicit Absent values so every record always carries labels a-d.
package extract
