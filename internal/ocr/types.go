package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Word is a single recognized word with its location.
type Word struct {
	Text string `json:"text"`

	// Confidence is the engine's confidence for this word (0 to 100).
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// Result is the outcome of one recognition call.
type Result struct {
	// Text is the recognized text.
	Text string `json:"text"`

	// Confidence is the mean word confidence (0 to 100), or 0 when no words
	// were recognized.
	Confidence float64 `json:"confidence"`

	// Language is the "+" joined language code the engine ran with.
	Language string `json:"language"`

	// Words holds word-level detail. It may be empty even when Text is not,
	// if the engine could not report bounding boxes.
	Words []Word `json:"words,omitempty"`
}

// Progress is a recognition progress event.
type Progress struct {
	Status   string  `json:"status"`
	Progress float64 `json:"progress"` // 0.0 to 1.0 within Status
}

// ProgressFunc observes recognition progress.
type ProgressFunc func(Progress)

func (f ProgressFunc) emit(status string, progress float64) {
	if f != nil {
		f(Progress{Status: status, Progress: progress})
	}
}

// Options are per-call recognition options.
type Options struct {
	Languages  Languages
	OnProgress ProgressFunc
}

// Languages is an ordered list of Tesseract language codes.
//
// It decodes from either a single string or a list in JSON and YAML. Strings
// are split on "+" and ",", so "eng+fra" and ["eng", "fra"] are equivalent.
type Languages []string

// ParseLanguages splits a "+" or "," separated language string.
func ParseLanguages(s string) Languages {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ','
	})
	langs := make(Languages, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			langs = append(langs, f)
		}
	}
	return langs
}

// OrDefault returns l, or DefaultLanguage when l is empty.
func (l Languages) OrDefault() Languages {
	if len(l) == 0 {
		return Languages{DefaultLanguage}
	}
	return l
}

// String returns the "+" joined language code.
func (l Languages) String() string {
	return strings.Join(l.OrDefault(), "+")
}

func (l Languages) normalize() Languages {
	out := make(Languages, 0, len(l))
	for _, entry := range l {
		out = append(out, ParseLanguages(entry)...)
	}
	return out
}

// UnmarshalJSON accepts a string or an array of strings.
func (l *Languages) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = ParseLanguages(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("language must be a string or a list of strings: %w", err)
	}
	*l = Languages(list).normalize()
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (l *Languages) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = ParseLanguages(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = Languages(list).normalize()
		return nil
	default:
		return fmt.Errorf("line %d: languages must be a string or a list of strings", node.Line)
	}
}

// Config configures every engine session a Recognizer opens.
type Config struct {
	// TessdataPrefix is the directory holding *.traineddata files. Empty uses
	// the engine's built-in search path (TESSDATA_PREFIX).
	TessdataPrefix string `yaml:"tessdata_prefix"`

	// PageSegMode is the Tesseract page segmentation mode (1-13). Zero keeps
	// the engine default.
	PageSegMode int `yaml:"page_seg_mode"`

	// Whitelist limits recognition to these characters.
	Whitelist string `yaml:"whitelist"`

	// Blacklist excludes these characters from recognition.
	Blacklist string `yaml:"blacklist"`

	// Variables are raw Tesseract variables set on each session.
	Variables map[string]string `yaml:"variables"`
}
