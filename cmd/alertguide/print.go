package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/alertguide/pkg/export"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

const defaultPrintWidth = 80

func newPrintCmd(root *rootOptions) *cobra.Command {
	var (
		raw   bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Render one direction of the guide to the terminal",
		Long: `print renders the steps of one direction without the interactive UI.
When no direction is set by --direction, ALERTGUIDE_DIRECTION or
ui.default_direction and the terminal is interactive, it asks which one to
show.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.resolve()
			if err != nil {
				return err
			}

			d := s.direction
			if !s.directionSet && isInteractive() {
				if d, err = promptDirection(s.guide, d); err != nil {
					return err
				}
			}

			md := export.MarkdownTrack(s.guide, d, s.store())
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			if width <= 0 {
				width = terminalWidth()
			}
			out, err := renderMarkdown(md, width, isTerminal(os.Stdout))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown source instead of rendering it")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "wrap width (default: terminal width)")
	return cmd
}

// renderMarkdown styles md for a terminal, or with the plain "notty" style
// when output is redirected.
func renderMarkdown(md string, width int, tty bool) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if tty {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}

func promptDirection(g *guide.Guide, current guide.Direction) (guide.Direction, error) {
	d := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[guide.Direction]().
				Title(g.Title).
				Options(
					huh.NewOption(g.Buy.Tab, guide.Buy),
					huh.NewOption(g.Sell.Tab, guide.Sell),
				).
				Value(&d),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return current, err
	}
	return d, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func isInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultPrintWidth
}
