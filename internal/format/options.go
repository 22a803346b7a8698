package format

// Options controls which formatting stages run.
type Options struct {
	// Trim strips leading and trailing whitespace from the result.
	Trim bool `json:"trim" yaml:"trim"`

	// RemoveExtraSpaces collapses runs of whitespace into a single space.
	RemoveExtraSpaces bool `json:"remove_extra_spaces" yaml:"remove_extra_spaces"`

	// PreserveLineBreaks keeps newlines from the input. When false, newlines
	// are merged into spaces and structure comes only from punctuation.
	PreserveLineBreaks bool `json:"preserve_line_breaks" yaml:"preserve_line_breaks"`

	// AddParagraphs starts a new paragraph after '.', '!' and '?'.
	AddParagraphs bool `json:"add_paragraphs" yaml:"add_paragraphs"`

	// CapitalizeFirstLetter uppercases the first letter of each paragraph.
	CapitalizeFirstLetter bool `json:"capitalize_first_letter" yaml:"capitalize_first_letter"`
}

// DefaultOptions returns the options used when a caller does not override
// anything: every stage on except PreserveLineBreaks.
func DefaultOptions() Options {
	return Options{
		Trim:                  true,
		RemoveExtraSpaces:     true,
		PreserveLineBreaks:    false,
		AddParagraphs:         true,
		CapitalizeFirstLetter: true,
	}
}

// Overrides is a partial Options. Nil fields keep the value they are applied on.
type Overrides struct {
	Trim                  *bool `json:"trim,omitempty" yaml:"trim,omitempty"`
	RemoveExtraSpaces     *bool `json:"remove_extra_spaces,omitempty" yaml:"remove_extra_spaces,omitempty"`
	PreserveLineBreaks    *bool `json:"preserve_line_breaks,omitempty" yaml:"preserve_line_breaks,omitempty"`
	AddParagraphs         *bool `json:"add_paragraphs,omitempty" yaml:"add_paragraphs,omitempty"`
	CapitalizeFirstLetter *bool `json:"capitalize_first_letter,omitempty" yaml:"capitalize_first_letter,omitempty"`
}

// Bool returns a pointer to v, for building Overrides literals.
func Bool(v bool) *bool {
	return &v
}

// Resolve applies the overrides on top of DefaultOptions.
func (o Overrides) Resolve() Options {
	return o.Apply(DefaultOptions())
}

// Apply returns base with every non-nil override written over it.
func (o Overrides) Apply(base Options) Options {
	if o.Trim != nil {
		base.Trim = *o.Trim
	}
	if o.RemoveExtraSpaces != nil {
		base.RemoveExtraSpaces = *o.RemoveExtraSpaces
	}
	if o.PreserveLineBreaks != nil {
		base.PreserveLineBreaks = *o.PreserveLineBreaks
	}
	if o.AddParagraphs != nil {
		base.AddParagraphs = *o.AddParagraphs
	}
	if o.CapitalizeFirstLetter != nil {
		base.CapitalizeFirstLetter = *o.CapitalizeFirstLetter
	}
	return base
}

// Merge layers other on top of o. Fields set in other win; the result shares
// no pointers with either argument.
func (o Overrides) Merge(other Overrides) Overrides {
	pick := func(a, b *bool) *bool {
		if b != nil {
			return Bool(*b)
		}
		if a != nil {
			return Bool(*a)
		}
		return nil
	}
	return Overrides{
		Trim:                  pick(o.Trim, other.Trim),
		RemoveExtraSpaces:     pick(o.RemoveExtraSpaces, other.RemoveExtraSpaces),
		PreserveLineBreaks:    pick(o.PreserveLineBreaks, other.PreserveLineBreaks),
		AddParagraphs:         pick(o.AddParagraphs, other.AddParagraphs),
		CapitalizeFirstLetter: pick(o.CapitalizeFirstLetter, other.CapitalizeFirstLetter),
	}
}

// IsZero reports whether no field is overridden.
func (o Overrides) IsZero() bool {
	return o.Trim == nil && o.RemoveExtraSpaces == nil && o.PreserveLineBreaks == nil &&
		o.AddParagraphs == nil && o.CapitalizeFirstLetter == nil
}
