// Package imagetotext converts images to formatted text.
//
// A Converter runs OCR through a Recognizer and passes the raw text through
// the rule-based formatter in internal/format. Recognition metadata
// (confidence, language, words) is returned unchanged; only Text is replaced
// by its formatted form.
//
//	conv := imagetotext.NewTesseract(ocr.Config{})
//	result, err := conv.FileToText(ctx, "scan.png", imagetotext.Options{
//		Languages: ocr.Languages{"eng", "ben"},
//		Format:    format.Overrides{AddParagraphs: format.Bool(false)},
//	})
//
// A Converter is safe for concurrent use as long as its Recognizer is.
// Every call opens its own engine session.
package imagetotext

import (
	"context"
	"image"

	"github.com/ironsheep/image-to-text/internal/format"
	"github.com/ironsheep/image-to-text/internal/ocr"
)

// Recognizer is the OCR stage. *ocr.Recognizer implements it.
type Recognizer interface {
	Recognize(ctx context.Context, data []byte, opts ocr.Options) (*ocr.Result, error)
	RecognizeFile(ctx context.Context, path string, opts ocr.Options) (*ocr.Result, error)
	RecognizeRegion(ctx context.Context, img image.Image, region image.Rectangle, opts ocr.Options) (*ocr.Result, error)
}

// Options are per-call conversion options.
type Options struct {
	// Languages selects the OCR languages. Empty means "eng".
	Languages ocr.Languages

	// OnProgress observes recognition progress. It is called synchronously
	// and must not block.
	OnProgress ocr.ProgressFunc

	// Format overrides the formatter defaults field by field.
	Format format.Overrides
}

func (o Options) ocr() ocr.Options {
	return ocr.Options{Languages: o.Languages, OnProgress: o.OnProgress}
}

// Converter runs recognition and then formatting.
type Converter struct {
	rec Recognizer
}

// New creates a Converter around rec.
func New(rec Recognizer) *Converter {
	return &Converter{rec: rec}
}

// NewTesseract creates a Converter backed by a Tesseract recognizer.
func NewTesseract(cfg ocr.Config) *Converter {
	return New(ocr.NewRecognizer(cfg))
}

// ImageToText recognizes text in encoded image bytes and formats it.
//
// Errors from the recognizer are returned unchanged: ocr.ErrNoImageData,
// the context error, or an *ocr.Failure.
func (c *Converter) ImageToText(ctx context.Context, data []byte, opts Options) (*ocr.Result, error) {
	result, err := c.rec.Recognize(ctx, data, opts.ocr())
	if err != nil {
		return nil, err
	}
	return formatResult(result, opts.Format), nil
}

// FileToText is ImageToText for an image file on disk.
func (c *Converter) FileToText(ctx context.Context, path string, opts Options) (*ocr.Result, error) {
	result, err := c.rec.RecognizeFile(ctx, path, opts.ocr())
	if err != nil {
		return nil, err
	}
	return formatResult(result, opts.Format), nil
}

// RegionToText recognizes and formats the text inside region of img.
// Word bounds are reported in img coordinates.
func (c *Converter) RegionToText(ctx context.Context, img image.Image, region image.Rectangle, opts Options) (*ocr.Result, error) {
	result, err := c.rec.RecognizeRegion(ctx, img, region, opts.ocr())
	if err != nil {
		return nil, err
	}
	return formatResult(result, opts.Format), nil
}

// FormatText formats already recognized text.
func FormatText(raw string, ov format.Overrides) string {
	return format.Text(raw, ov)
}

// formatResult returns a copy of result with formatted text.
func formatResult(result *ocr.Result, ov format.Overrides) *ocr.Result {
	out := *result
	out.Text = format.Text(result.Text, ov)
	return &out
}
