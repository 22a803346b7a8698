package ocr

import (
	"context"
	"image"
	"os"

	"github.com/ironsheep/image-to-text/internal/imaging"
)

// Progress statuses, in the order they are reported.
const (
	StatusInitializing = "initializing tesseract"
	StatusLoadingLang  = "loading language traineddata"
	StatusInitAPI      = "initializing api"
	StatusRecognizing  = "recognizing text"
)

var statusOrder = []string{
	StatusInitializing,
	StatusLoadingLang,
	StatusInitAPI,
	StatusRecognizing,
}

// Overall folds a per-status progress event into the progress of the whole
// recognition, in [0, 1]. ok is false for an unknown status.
func (p Progress) Overall() (overall float64, ok bool) {
	for i, status := range statusOrder {
		if status == p.Status {
			return (float64(i) + p.Progress) / float64(len(statusOrder)), true
		}
	}
	return 0, false
}

// Session is one engine instance, used for a single image and then closed.
type Session interface {
	SetLanguage(langs ...string) error
	SetImageFromBytes(data []byte) error
	Text() (string, error)

	// Words returns word-level boxes for the last recognized image.
	Words() ([]Word, error)

	Close() error
}

// SessionFactory opens a new engine session.
type SessionFactory func(cfg Config) (Session, error)

// Recognizer runs OCR on images. It holds only configuration; each call opens
// and closes its own engine session, so a Recognizer is safe for concurrent use.
type Recognizer struct {
	cfg        Config
	newSession SessionFactory
}

// RecognizerOption customizes a Recognizer.
type RecognizerOption func(*Recognizer)

// WithSessionFactory replaces the Tesseract session factory.
func WithSessionFactory(f SessionFactory) RecognizerOption {
	return func(r *Recognizer) {
		r.newSession = f
	}
}

// NewRecognizer creates a Recognizer backed by Tesseract.
func NewRecognizer(cfg Config, opts ...RecognizerOption) *Recognizer {
	r := &Recognizer{
		cfg:        cfg,
		newSession: newTesseractSession,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Recognize performs OCR on encoded image bytes (PNG, JPEG, GIF, BMP, TIFF, WebP).
//
// Returns ErrNoImageData for an empty buffer and the context error if ctx is
// already done. Any other failure is a *Failure. The engine session is
// released before Recognize returns.
func (r *Recognizer) Recognize(ctx context.Context, data []byte, opts Options) (result *Result, err error) {
	if len(data) == 0 {
		return nil, ErrNoImageData
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if _, err = imaging.Inspect(data); err != nil {
		return nil, &Failure{Op: "decode", Err: err}
	}

	langs := opts.Languages.OrDefault()
	progress := opts.OnProgress

	progress.emit(StatusInitializing, 0)
	session, err := r.newSession(r.cfg)
	if err != nil {
		return nil, &Failure{Op: "initialize", Err: err}
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			result, err = nil, &Failure{Op: "release", Err: cerr}
		}
	}()

	progress.emit(StatusLoadingLang, 0)
	if err = session.SetLanguage(langs...); err != nil {
		return nil, &Failure{Op: "load language", Err: err}
	}
	progress.emit(StatusLoadingLang, 1)

	progress.emit(StatusInitAPI, 0)
	if err = session.SetImageFromBytes(data); err != nil {
		return nil, &Failure{Op: "set image", Err: err}
	}
	progress.emit(StatusInitAPI, 1)

	progress.emit(StatusRecognizing, 0)
	text, err := session.Text()
	if err != nil {
		return nil, &Failure{Op: "recognize", Err: err}
	}

	// Text is still useful without boxes.
	words, werr := session.Words()
	if werr != nil {
		words = nil
	}
	progress.emit(StatusRecognizing, 1)

	return &Result{
		Text:       text,
		Confidence: meanConfidence(words),
		Language:   langs.String(),
		Words:      words,
	}, nil
}

// RecognizeFile reads the image at path and performs OCR on it.
func (r *Recognizer) RecognizeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if path == "" {
		return nil, ErrNoImageData
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Failure{Op: "read", Err: err}
	}
	return r.Recognize(ctx, data, opts)
}

// RecognizeImage performs OCR on a decoded image.
func (r *Recognizer) RecognizeImage(ctx context.Context, img image.Image, opts Options) (*Result, error) {
	if img == nil {
		return nil, ErrNoImageData
	}
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, &Failure{Op: "encode", Err: err}
	}
	return r.Recognize(ctx, data, opts)
}

// RecognizeRegion performs OCR on a rectangular region of img.
//
// The region is clamped to the image bounds. Word bounds in the result are in
// the coordinates of img, not of the cropped region: a word found at (10, 20)
// inside a region starting at (100, 50) is reported at (110, 70).
func (r *Recognizer) RecognizeRegion(ctx context.Context, img image.Image, region image.Rectangle, opts Options) (*Result, error) {
	if img == nil {
		return nil, ErrNoImageData
	}
	data, clamped, err := imaging.CropPNG(img, region)
	if err != nil {
		return nil, err
	}

	result, err := r.Recognize(ctx, data, opts)
	if err != nil {
		return nil, err
	}

	for i := range result.Words {
		result.Words[i].Bounds.X1 += clamped.Min.X
		result.Words[i].Bounds.Y1 += clamped.Min.Y
		result.Words[i].Bounds.X2 += clamped.Min.X
		result.Words[i].Bounds.Y2 += clamped.Min.Y
	}

	return result, nil
}

func meanConfidence(words []Word) float64 {
	if len(words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}
