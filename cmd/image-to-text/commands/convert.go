package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-to-text/internal/logging"
	"github.com/ironsheep/image-to-text/internal/ocr"
	"github.com/ironsheep/image-to-text/pkg/imagetotext"
)

// convertOutput is one entry of --json output.
type convertOutput struct {
	Path       string     `json:"path"`
	Text       string     `json:"text"`
	Confidence float64    `json:"confidence"`
	Language   string     `json:"language,omitempty"`
	Words      []ocr.Word `json:"words,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type convertOptions struct {
	lang        string
	jsonOut     bool
	words       bool
	quiet       bool
	concurrency int
	format      formatFlags
}

func newConvertCmd(a *app) *cobra.Command {
	var o convertOptions

	cmd := &cobra.Command{
		Use:   "convert <image>...",
		Short: "Extract formatted text from one or more images",
		Long: `Recognize the text in each image and print it formatted.

Several images are converted in parallel (see --concurrency); their output is
printed in argument order, each under a "==> path <==" header.`,
		Example: `  image-to-text convert scan.png
  image-to-text convert --lang eng+ben --paragraphs=false page-*.png
  image-to-text convert --json receipt.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args, &o)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&o.lang, "lang", "l", "", `OCR languages, e.g. "eng" or "eng+fra" (default from config)`)
	fs.BoolVar(&o.jsonOut, "json", false, "print results as JSON")
	fs.BoolVar(&o.words, "words", false, "include word boxes in JSON output")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "no progress bar or status lines")
	fs.IntVarP(&o.concurrency, "concurrency", "j", 0, "images converted in parallel (default from config)")
	o.format.bind(cmd)

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, paths []string, o *convertOptions) error {
	langs := a.cfg.OCR.Languages
	if o.lang != "" {
		langs = ocr.ParseLanguages(o.lang)
	}
	concurrency := a.cfg.Batch.Concurrency
	if o.concurrency > 0 {
		concurrency = o.concurrency
	}

	opts := imagetotext.Options{
		Languages: langs,
		Format:    a.cfg.Format.Merge(o.format.overrides(cmd)),
	}
	conv := a.converter()
	stderr := cmd.ErrOrStderr()
	showProgress := !o.quiet && !o.jsonOut

	a.logger.Debug().
		Strs("paths", paths).
		Str("language", langs.String()).
		Int("concurrency", concurrency).
		Msg("converting images")

	var results []imagetotext.FileResult

	if len(paths) == 1 {
		var observe ocr.ProgressFunc
		if showProgress {
			bar := newProgressBar(stderr, 100, paths[0])
			observe = func(p ocr.Progress) {
				if overall, ok := p.Overall(); ok {
					_ = bar.Set(int(overall * 100))
				}
			}
			defer bar.Finish()
		}
		opts.OnProgress = logging.Chain(logging.ProgressObserver(a.logger), observe)

		result, err := conv.FileToText(cmd.Context(), paths[0], opts)
		results = []imagetotext.FileResult{{Path: paths[0], Result: result, Err: err}}
	} else {
		var observe ocr.ProgressFunc
		if showProgress {
			bar := newProgressBar(stderr, int64(len(paths)), "images")
			observe = func(p ocr.Progress) {
				if p.Status == ocr.StatusRecognizing && p.Progress == 1 {
					_ = bar.Add(1)
				}
			}
			defer bar.Finish()
		}
		opts.OnProgress = logging.Chain(logging.ProgressObserver(a.logger), observe)

		var err error
		results, err = conv.ConvertFiles(cmd.Context(), paths, opts, concurrency)
		if err != nil {
			return err
		}
	}

	if o.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), results, o.words); err != nil {
			return err
		}
	} else {
		writeText(cmd.OutOrStdout(), stderr, results, o.quiet)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			a.logger.Warn().Str("path", r.Path).Err(r.Err).Msg("conversion failed")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(results))
	}
	return nil
}

func writeJSON(w io.Writer, results []imagetotext.FileResult, words bool) error {
	out := make([]convertOutput, 0, len(results))
	for _, r := range results {
		entry := convertOutput{Path: r.Path}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		} else {
			entry.Text = r.Result.Text
			entry.Confidence = r.Result.Confidence
			entry.Language = r.Result.Language
			if words {
				entry.Words = r.Result.Words
			}
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(out, status io.Writer, results []imagetotext.FileResult, quiet bool) {
	multi := len(results) > 1
	for i, r := range results {
		if r.Err != nil {
			printError(status, "%s: %v", r.Path, r.Err)
			continue
		}
		if multi {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printHeader(out, r.Path)
		}
		fmt.Fprintln(out, r.Result.Text)
		if !quiet {
			printSuccess(status, "%s (%.1f%% confidence, %s)", r.Path, r.Result.Confidence, r.Result.Language)
		}
	}
}
