package imagetotext

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-to-text/internal/ocr"
)

// FileResult is the outcome of converting one file in a batch.
type FileResult struct {
	Path   string
	Result *ocr.Result
	Err    error
}

// ConvertFiles runs FileToText for every path, at most concurrency at a time.
//
// Results are returned in the order of paths. A failing file records its
// error in its own FileResult and does not stop the batch. The returned error
// is non-nil only when ctx is done; files not yet started are then left with
// the context error.
//
// opts.OnProgress, if set, is called from several goroutines.
func (c *Converter) ConvertFiles(ctx context.Context, paths []string, opts Options, concurrency int) ([]FileResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]FileResult, len(paths))
	for i, path := range paths {
		results[i].Path = path
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range paths {
		i := i
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			results[i].Result, results[i].Err = c.FileToText(gctx, results[i].Path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
