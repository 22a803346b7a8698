package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-to-text/internal/ocr"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and OCR engine information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image-to-text %s\n", a.info.Version)
			fmt.Fprintf(out, "  Build time: %s\n", a.info.BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", a.info.GitCommit)

			info := ocr.EngineInfo(a.cfg.OCR.Config)
			if info.Available {
				fmt.Fprintf(out, "  Tesseract:  %s (%s)\n", info.Version, info.Backend)
			} else {
				fmt.Fprintf(out, "  Tesseract:  unavailable: %s\n", info.Error)
			}
			if info.TessdataPrefix != "" {
				fmt.Fprintf(out, "  Tessdata:   %s\n", info.TessdataPrefix)
			}
			return nil
		},
	}
}
