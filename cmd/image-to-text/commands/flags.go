package commands

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-to-text/internal/format"
)

// formatFlags binds the formatter switches. Only flags the user set become
// overrides, so unset flags keep the configured value.
type formatFlags struct {
	trim       bool
	collapse   bool
	lineBreaks bool
	paragraphs bool
	capitalize bool
}

func (f *formatFlags) bind(cmd *cobra.Command) {
	defaults := format.DefaultOptions()
	fs := cmd.Flags()
	fs.BoolVar(&f.trim, "trim", defaults.Trim, "strip leading and trailing whitespace")
	fs.BoolVar(&f.collapse, "remove-extra-spaces", defaults.RemoveExtraSpaces, "collapse runs of whitespace")
	fs.BoolVar(&f.lineBreaks, "preserve-line-breaks", defaults.PreserveLineBreaks, "keep line breaks instead of joining lines")
	fs.BoolVar(&f.paragraphs, "paragraphs", defaults.AddParagraphs, "start a paragraph after '.', '!' and '?'")
	fs.BoolVar(&f.capitalize, "capitalize", defaults.CapitalizeFirstLetter, "capitalize the first letter of each paragraph")
}

func (f *formatFlags) overrides(cmd *cobra.Command) format.Overrides {
	var ov format.Overrides
	fs := cmd.Flags()
	if fs.Changed("trim") {
		ov.Trim = format.Bool(f.trim)
	}
	if fs.Changed("remove-extra-spaces") {
		ov.RemoveExtraSpaces = format.Bool(f.collapse)
	}
	if fs.Changed("preserve-line-breaks") {
		ov.PreserveLineBreaks = format.Bool(f.lineBreaks)
	}
	if fs.Changed("paragraphs") {
		ov.AddParagraphs = format.Bool(f.paragraphs)
	}
	if fs.Changed("capitalize") {
		ov.CapitalizeFirstLetter = format.Bool(f.capitalize)
	}
	return ov
}
