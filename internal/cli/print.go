package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"hdrbar/internal/config"
	"hdrbar/internal/logging"
	"hdrbar/internal/ui"
)

const defaultPrintWidth = 80

func newPrintCmd(v *viper.Viper) *cobra.Command {
	var (
		width int
		rows  int
		color bool
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the table with its saved layout and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger, logCloser, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
			if err != nil {
				return err
			}
			defer logCloser.Close()

			opts, err := uiOptions(cfg, logger)
			if err != nil {
				return err
			}

			// the saved layout is shown when there is one
			if _, statErr := os.Stat(cfg.Layout.Path); statErr == nil {
				layouts, err := openLayouts(cfg.Layout, logger)
				if err != nil {
					return err
				}
				defer layouts.Close()
				opts.Layouts = layouts
			}

			if width <= 0 {
				width = terminalWidth()
			}
			if rows <= 0 {
				rows = len(opts.Table.Rows)
			}

			out, err := ui.Render(opts, width, rows, !color)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "output width, the terminal width by default")
	cmd.Flags().IntVarP(&rows, "rows", "n", 0, "number of rows, all by default")
	cmd.Flags().BoolVar(&color, "color", false, "keep the theme colors")
	return cmd
}

// terminalWidth returns the width of the terminal on stdout, or
// defaultPrintWidth when stdout is not a terminal
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultPrintWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultPrintWidth
	}
	return width
}
