//go:build cgo

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

const backendName = "gosseract"

// tesseractSession adapts a gosseract client to Session.
type tesseractSession struct {
	client *gosseract.Client
}

// newTesseractSession opens a gosseract client configured from cfg.
// The client is closed again if any setting is rejected.
func newTesseractSession(cfg Config) (Session, error) {
	client := gosseract.NewClient()

	if err := configureClient(client, cfg); err != nil {
		client.Close()
		return nil, err
	}

	return &tesseractSession{client: client}, nil
}

func configureClient(client *gosseract.Client, cfg Config) error {
	// Keep Tesseract diagnostics off stderr; nothing depends on them.
	_ = client.DisableOutput()

	if cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(cfg.TessdataPrefix); err != nil {
			return fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
			return fmt.Errorf("failed to set page segmentation mode: %w", err)
		}
	}
	if cfg.Whitelist != "" {
		if err := client.SetWhitelist(cfg.Whitelist); err != nil {
			return fmt.Errorf("failed to set whitelist: %w", err)
		}
	}
	if cfg.Blacklist != "" {
		if err := client.SetBlacklist(cfg.Blacklist); err != nil {
			return fmt.Errorf("failed to set blacklist: %w", err)
		}
	}
	for key, value := range cfg.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(key), value); err != nil {
			return fmt.Errorf("failed to set variable %s: %w", key, err)
		}
	}
	return nil
}

func (s *tesseractSession) SetLanguage(langs ...string) error {
	if err := s.client.SetLanguage(langs...); err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}
	return nil
}

func (s *tesseractSession) SetImageFromBytes(data []byte) error {
	if err := s.client.SetImageFromBytes(data); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}
	return nil
}

func (s *tesseractSession) Text() (string, error) {
	return s.client.Text()
}

// Words returns non-empty words at Tesseract's RIL_WORD iterator level.
func (s *tesseractSession) Words() ([]Word, error) {
	boxes, err := s.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, err
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence),
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}
	return words, nil
}

func (s *tesseractSession) Close() error {
	return s.client.Close()
}

// engineVersion returns the linked Tesseract version.
func engineVersion() (string, error) {
	return gosseract.Version(), nil
}
