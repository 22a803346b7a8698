package format

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParagraphBreak separates paragraphs in formatted output.
const ParagraphBreak = "\n\n"

var (
	reLineBreaks = regexp.MustCompile(`[\r\n]+`)

	// Any whitespace, including line breaks and Unicode separators.
	reSpaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

	// Whitespace that does not end a line.
	reHorizontalSpaceRun = regexp.MustCompile(`[\t\f\v\p{Zs}\x{FEFF}]+`)

	reSentenceEnd = regexp.MustCompile(`([.!?])[\s\v\p{Z}\x{FEFF}]+`)
)

// Text formats raw with the given overrides applied over DefaultOptions.
func Text(raw string, ov Overrides) string {
	return ov.Resolve().Format(raw)
}

// Default formats raw with DefaultOptions.
func Default(raw string) string {
	return DefaultOptions().Format(raw)
}

// Format runs the formatting pipeline over raw. The stages always run in the
// same order: line breaks, whitespace, paragraphs, capitalization, trim.
func (o Options) Format(raw string) string {
	text := raw

	if !o.PreserveLineBreaks {
		text = reLineBreaks.ReplaceAllString(text, " ")
	}

	if o.RemoveExtraSpaces {
		if o.PreserveLineBreaks {
			text = reHorizontalSpaceRun.ReplaceAllString(text, " ")
		} else {
			text = reSpaceRun.ReplaceAllString(text, " ")
		}
	}

	if o.AddParagraphs {
		text = reSentenceEnd.ReplaceAllString(text, "${1}"+ParagraphBreak)
		text = strings.Join(nonBlank(strings.Split(text, ParagraphBreak)), ParagraphBreak)
	}

	if o.CapitalizeFirstLetter {
		if o.AddParagraphs {
			paras := strings.Split(text, ParagraphBreak)
			for i, p := range paras {
				paras[i] = capitalizeFirst(p)
			}
			text = strings.Join(paras, ParagraphBreak)
		} else {
			text = capitalizeFirst(text)
		}
	}

	if o.Trim {
		text = strings.TrimFunc(text, isSpace)
	}

	return text
}

// Paragraphs splits formatted text on paragraph breaks, skipping blank ones.
func Paragraphs(text string) []string {
	return nonBlank(strings.Split(text, ParagraphBreak))
}

func nonBlank(paras []string) []string {
	kept := make([]string, 0, len(paras))
	for _, p := range paras {
		if strings.TrimFunc(p, isSpace) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// capitalizeFirst uppercases the first non-space rune of s. Leading whitespace
// is left in place for the trim stage.
func capitalizeFirst(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return !isSpace(r) })
	if i < 0 {
		return s
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return s[:i] + string(upper) + s[i+size:]
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
