package imagetotext

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-to-text/internal/format"
	"github.com/ironsheep/image-to-text/internal/ocr"
)

// stubRecognizer returns canned results and records the options it saw.
type stubRecognizer struct {
	mu     sync.Mutex
	result ocr.Result
	err    error
	opts   []ocr.Options
	byPath map[string]error
	calls  atomic.Int32
	active atomic.Int32
	peak   atomic.Int32
	block  chan struct{}
}

func (s *stubRecognizer) record(opts ocr.Options) (*ocr.Result, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.opts = append(s.opts, opts)
	s.mu.Unlock()

	if opts.OnProgress != nil {
		opts.OnProgress(ocr.Progress{Status: ocr.StatusRecognizing, Progress: 1})
	}

	if s.err != nil {
		return nil, s.err
	}
	r := s.result
	return &r, nil
}

func (s *stubRecognizer) Recognize(_ context.Context, data []byte, opts ocr.Options) (*ocr.Result, error) {
	if len(data) == 0 {
		return nil, ocr.ErrNoImageData
	}
	return s.record(opts)
}

func (s *stubRecognizer) RecognizeFile(ctx context.Context, path string, opts ocr.Options) (*ocr.Result, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := s.byPath[path]; ok {
		return nil, err
	}
	r, err := s.record(opts)
	if r != nil {
		r.Text = path + ": " + r.Text
	}
	return r, err
}

func (s *stubRecognizer) RecognizeRegion(_ context.Context, _ image.Image, region image.Rectangle, opts ocr.Options) (*ocr.Result, error) {
	r, err := s.record(opts)
	if r != nil {
		r.Text = fmt.Sprintf("%s at %v", r.Text, region.Min)
	}
	return r, err
}

func TestImageToText_FormatsWithDefaults(t *testing.T) {
	rec := &stubRecognizer{result: ocr.Result{
		Text:       "hello  world. this is\na test",
		Confidence: 91.5,
		Language:   "eng",
		Words:      []ocr.Word{{Text: "hello", Confidence: 91.5}},
	}}

	result, err := New(rec).ImageToText(context.Background(), []byte{1}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Hello world.\n\nThis is a test", result.Text)
	assert.Equal(t, 91.5, result.Confidence)
	assert.Equal(t, "eng", result.Language)
	assert.Len(t, result.Words, 1)
}

func TestImageToText_PassesOptions(t *testing.T) {
	rec := &stubRecognizer{result: ocr.Result{Text: "one.\ntwo.", Language: "eng+ben"}}
	var events int

	result, err := New(rec).ImageToText(context.Background(), []byte{1}, Options{
		Languages:  ocr.Languages{"eng", "ben"},
		OnProgress: func(ocr.Progress) { events++ },
		Format: format.Overrides{
			PreserveLineBreaks: format.Bool(true),
			AddParagraphs:      format.Bool(false),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "One.\ntwo.", result.Text)
	assert.Equal(t, "eng+ben", result.Language)
	require.Len(t, rec.opts, 1)
	assert.Equal(t, ocr.Languages{"eng", "ben"}, rec.opts[0].Languages)
	assert.Equal(t, 1, events)
}

func TestImageToText_DoesNotMutateRecognizerResult(t *testing.T) {
	raw := &ocr.Result{Text: "raw text"}
	rec := &returningRecognizer{result: raw}

	result, err := New(rec).ImageToText(context.Background(), []byte{1}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Raw text", result.Text)
	assert.Equal(t, "raw text", raw.Text)
}

func TestImageToText_PropagatesErrors(t *testing.T) {
	failure := &ocr.Failure{Op: "recognize", Err: errors.New("engine terminated")}

	_, err := New(&stubRecognizer{}).ImageToText(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ocr.ErrNoImageData)

	_, err = New(&stubRecognizer{err: failure}).ImageToText(context.Background(), []byte{1}, Options{})
	var got *ocr.Failure
	require.ErrorAs(t, err, &got)
	assert.Same(t, failure, got)
	assert.Contains(t, err.Error(), "ocr processing failed")
}

func TestFileToText(t *testing.T) {
	rec := &stubRecognizer{result: ocr.Result{Text: "scanned   page"}}

	result, err := New(rec).FileToText(context.Background(), "a.png", Options{})
	require.NoError(t, err)
	assert.Equal(t, "A.png: scanned page", result.Text)

	result, err = New(rec).FileToText(context.Background(), "a.png", Options{
		Format: format.Overrides{CapitalizeFirstLetter: format.Bool(false)},
	})
	require.NoError(t, err)
	assert.Equal(t, "a.png: scanned page", result.Text)
}

func TestRegionToText(t *testing.T) {
	rec := &stubRecognizer{result: ocr.Result{Text: "label"}}

	result, err := New(rec).RegionToText(context.Background(), image.NewGray(image.Rect(0, 0, 10, 10)),
		image.Rect(2, 3, 8, 9), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Label at (2,3)", result.Text)
}

func TestFormatText(t *testing.T) {
	assert.Equal(t, "Hello world", FormatText("  hello world  ", format.Overrides{}))
	assert.Equal(t, "", FormatText("", format.Overrides{}))
	assert.Equal(t, "Line 1\nLine 2\nLine 3",
		FormatText("Line 1\nLine 2\nLine 3", format.Overrides{PreserveLineBreaks: format.Bool(true)}))
}

func TestConvertFiles_OrderAndPartialFailure(t *testing.T) {
	failure := &ocr.Failure{Op: "read", Err: errors.New("no such file")}
	rec := &stubRecognizer{
		result: ocr.Result{Text: "ok"},
		byPath: map[string]error{"bad.png": failure},
	}
	paths := []string{"a.png", "bad.png", "c.png", "d.png"}

	results, err := New(rec).ConvertFiles(context.Background(), paths, Options{}, 2)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}
	assert.ErrorIs(t, results[1].Err, failure)
	assert.Nil(t, results[1].Result)
	for _, i := range []int{0, 2, 3} {
		require.NoError(t, results[i].Err)
		assert.Equal(t, capitalized(paths[i])+": ok", results[i].Result.Text)
	}
}

func TestConvertFiles_BoundedConcurrency(t *testing.T) {
	rec := &stubRecognizer{result: ocr.Result{Text: "x"}, block: make(chan struct{})}
	paths := make([]string, 12)
	for i := range paths {
		paths[i] = fmt.Sprintf("img-%02d.png", i)
	}

	done := make(chan struct{})
	var results []FileResult
	var err error
	go func() {
		results, err = New(rec).ConvertFiles(context.Background(), paths, Options{}, 3)
		close(done)
	}()

	close(rec.block)
	<-done

	require.NoError(t, err)
	assert.Len(t, results, 12)
	assert.LessOrEqual(t, rec.peak.Load(), int32(3))
	assert.Equal(t, int32(12), rec.calls.Load())
}

func TestConvertFiles_Cancelled(t *testing.T) {
	rec := &stubRecognizer{result: ocr.Result{Text: "x"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New(rec).ConvertFiles(ctx, []string{"a.png", "b.png"}, Options{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestConvertFiles_Empty(t *testing.T) {
	results, err := New(&stubRecognizer{}).ConvertFiles(context.Background(), nil, Options{}, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// returningRecognizer hands back the same *ocr.Result every time.
type returningRecognizer struct {
	result *ocr.Result
}

func (r *returningRecognizer) Recognize(context.Context, []byte, ocr.Options) (*ocr.Result, error) {
	return r.result, nil
}

func (r *returningRecognizer) RecognizeFile(context.Context, string, ocr.Options) (*ocr.Result, error) {
	return r.result, nil
}

func (r *returningRecognizer) RecognizeRegion(context.Context, image.Image, image.Rectangle, ocr.Options) (*ocr.Result, error) {
	return r.result, nil
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
