package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-to-text/internal/ocr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// clearEnv blanks the variables Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"IMAGE_TEXT_LANGUAGE", "TESSDATA_PREFIX", "IMAGE_TEXT_PSM",
		"IMAGE_TEXT_CONCURRENCY", "IMAGE_TEXT_LOG_LEVEL", "IMAGE_TEXT_LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ocr.Languages{"eng"}, cfg.OCR.Languages)
	assert.Equal(t, 0, cfg.OCR.PageSegMode)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Format.IsZero())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
ocr:
  languages: [eng, ben]
  tessdata_prefix: /usr/share/tessdata
  page_seg_mode: 6
  whitelist: "0123456789"
  variables:
    preserve_interword_spaces: "1"
format:
  add_paragraphs: false
  trim: true
batch:
  concurrency: 4
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ocr.Languages{"eng", "ben"}, cfg.OCR.Languages)
	assert.Equal(t, "/usr/share/tessdata", cfg.OCR.TessdataPrefix)
	assert.Equal(t, 6, cfg.OCR.PageSegMode)
	assert.Equal(t, "0123456789", cfg.OCR.Whitelist)
	assert.Equal(t, map[string]string{"preserve_interword_spaces": "1"}, cfg.OCR.Variables)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	opts := cfg.Format.Resolve()
	assert.False(t, opts.AddParagraphs)
	assert.True(t, opts.Trim)
	assert.Nil(t, cfg.Format.RemoveExtraSpaces)
}

func TestLoad_LanguageString(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "ocr:\n  languages: eng+fra\n"))
	require.NoError(t, err)
	assert.Equal(t, ocr.Languages{"eng", "fra"}, cfg.OCR.Languages)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_TEXT_LANGUAGE", "deu+eng")
	t.Setenv("TESSDATA_PREFIX", "/opt/tessdata")
	t.Setenv("IMAGE_TEXT_PSM", "7")
	t.Setenv("IMAGE_TEXT_CONCURRENCY", "8")
	t.Setenv("IMAGE_TEXT_LOG_LEVEL", "WARN")
	t.Setenv("IMAGE_TEXT_LOG_FORMAT", "json")

	cfg, err := Load(writeConfig(t, "ocr:\n  languages: eng\n  page_seg_mode: 3\n"))
	require.NoError(t, err)

	assert.Equal(t, ocr.Languages{"deu", "eng"}, cfg.OCR.Languages)
	assert.Equal(t, "/opt/tessdata", cfg.OCR.TessdataPrefix)
	assert.Equal(t, 7, cfg.OCR.PageSegMode)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_TEXT_PSM", "single-line")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMAGE_TEXT_PSM")
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "ocr: [not, a, mapping]\n"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "batch:\n  concurrency: 0\n"))
	assert.ErrorContains(t, err, "validate config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"no languages", func(c *Config) { c.OCR.Languages = nil }, "at least one language"},
		{"bad language", func(c *Config) { c.OCR.Languages = ocr.Languages{"../eng"} }, "invalid language code"},
		{"psm too high", func(c *Config) { c.OCR.PageSegMode = 14 }, "page_seg_mode"},
		{"psm negative", func(c *Config) { c.OCR.PageSegMode = -1 }, "page_seg_mode"},
		{"concurrency", func(c *Config) { c.Batch.Concurrency = 0 }, "concurrency"},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Batch.Concurrency = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
	assert.Contains(t, err.Error(), "log.format")
}
