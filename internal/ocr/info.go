package ocr

// Info describes the OCR subsystem.
type Info struct {
	Available      bool   `json:"available"`
	Version        string `json:"version,omitempty"`
	Error          string `json:"error,omitempty"`
	Backend        string `json:"backend"`
	TessdataPrefix string `json:"tessdata_prefix,omitempty"`
}

// EngineInfo reports whether the engine is linked and which version it is.
func EngineInfo(cfg Config) Info {
	version, err := engineVersion()
	if err != nil {
		return Info{
			Available: false,
			Error:     err.Error(),
			Backend:   backendName,
		}
	}

	return Info{
		Available:      true,
		Version:        version,
		Backend:        backendName,
		TessdataPrefix: cfg.TessdataPrefix,
	}
}
