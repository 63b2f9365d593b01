package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/export"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

var exportFormats = []string{"md", "html", "json"}

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		format   string
		output   string
		noImages bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the guide as Markdown, HTML or JSON",
		Example: `  alertguide export --format html -o guide.html
  alertguide export --format json | jq '.tracks[0].steps[].image'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			write, err := exportWriter(format)
			if err != nil {
				return err
			}
			s, err := root.resolve()
			if err != nil {
				return err
			}

			var store *assets.Store
			if !noImages {
				store = s.store()
			}

			if output == "" || output == "-" {
				if err := write(cmd.OutOrStdout(), s.guide, store); err != nil {
					return fmt.Errorf("exporting %s: %w", format, err)
				}
				return nil
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := writeAndClose(f, func(w io.Writer) error { return write(w, s.guide, store) }); err != nil {
				return fmt.Errorf("exporting %s to %s: %w", format, output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: "+strings.Join(exportFormats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "do not resolve screenshots; link them as-is")
	return cmd
}

// writeAndClose runs write against wc, closes it and returns the first error.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}

type exportFunc func(io.Writer, *guide.Guide, *assets.Store) error

func exportWriter(format string) (exportFunc, error) {
	switch strings.ToLower(format) {
	case "md", "markdown":
		return export.WriteMarkdown, nil
	case "html":
		return export.WriteHTML, nil
	case "json":
		return export.WriteJSON, nil
	}
	return nil, fmt.Errorf("unknown format %q (want %s)", format, strings.Join(exportFormats, ", "))
}
