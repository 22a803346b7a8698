// Package format restructures raw OCR output into readable paragraphs.
//
// The formatter is a fixed pipeline of five rule-based stages. Each stage is
// switched on or off by a field of Options:
//
//  1. Line-break normalization (PreserveLineBreaks=false merges newlines into spaces)
//  2. Whitespace collapsing (RemoveExtraSpaces)
//  3. Paragraph insertion after '.', '!' and '?' (AddParagraphs)
//  4. Capitalization of each paragraph's first letter (CapitalizeFirstLetter)
//  5. Trimming of the whole text (Trim)
//
// The order never changes. A paragraph break is exactly two newline
// characters; a single newline is a soft break.
//
// # Options and Overrides
//
// Options is the fully resolved configuration and is passed by value.
// Overrides carries optional *bool fields for callers that only want to change
// some settings; nil fields fall back to DefaultOptions:
//
//	out := format.Text(raw, format.Overrides{AddParagraphs: format.Bool(false)})
//
// # Thread Safety
//
// All functions are pure. They can be called concurrently without
// synchronization.
package format
