package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/phaseguide/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored progress document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Transfer.Export(cmd.Context())
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), doc)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(doc+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace all stored progress with a previously exported document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			n, err := app.Transfer.Import(cmd.Context(), string(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d project(s)\n", formatter.StyleGreen.Render("✔"), n)
			return nil
		},
	}
}
