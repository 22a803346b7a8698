// Package ocr wraps the Tesseract OCR engine (via gosseract/v2) behind a small
// recognizer that turns image bytes into raw text plus metadata.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system, and the
// binary must be built with cgo enabled:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Without cgo every call fails with ErrEngineUnavailable.
//
// # Languages
//
// The default language is English ("eng"). Several languages can be combined,
// either as a list or as a "+" separated string ("eng+fra"). The combined code
// is reported back in Result.Language.
//
// # Engine Lifecycle
//
// Every call acquires its own engine session and releases it before returning,
// on success and on failure. Calls share no state and may run concurrently.
// Recognition is not cancellable once the engine has started; the context is
// only checked before a session is acquired.
//
// # Progress
//
// Options.OnProgress is called synchronously from the recognizing goroutine
// as the engine moves through its stages. Callbacks must return quickly.
//
// # Error Handling
//
// Missing input fails with ErrNoImageData before any engine work. Everything
// the engine (or the format check in front of it) rejects comes back as a
// *Failure carrying the failed step and the underlying cause.
package ocr
