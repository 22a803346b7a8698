package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-to-text/pkg/imagetotext"
)

func newFormatCmd(a *app) *cobra.Command {
	var flags formatFlags

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format text without running OCR",
		Long:  "Apply the OCR text formatter to a text file, or to stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if len(args) == 1 && args[0] != "-" {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			ov := a.cfg.Format.Merge(flags.overrides(cmd))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), imagetotext.FormatText(string(raw), ov))
			return err
		},
	}
	flags.bind(cmd)
	return cmd
}
