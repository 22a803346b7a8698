//go:build !cgo

package ocr

const backendName = "none (built without cgo)"

func newTesseractSession(Config) (Session, error) {
	return nil, ErrEngineUnavailable
}

func engineVersion() (string, error) {
	return "", ErrEngineUnavailable
}
