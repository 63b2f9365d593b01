package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/guide"
	"github.com/vanderheijden86/alertguide/pkg/metrics"
)

// errMissingImages makes the process exit non-zero after the report has
// already been printed.
var errMissingImages = errors.New("missing images")

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		only  string
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify every screenshot the guide references",
		Long: `check resolves each image reference against the assets directory and
reports its format and size. It exits non-zero when any image is missing or
cannot be decoded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.resolve()
			if err != nil {
				return err
			}

			refs := s.guide.ImageRefs()
			if only != "" {
				d, err := guide.ParseDirection(only)
				if err != nil {
					return err
				}
				refs = s.guide.Sequence(d).ImageRefs()
			}

			results, err := assets.Check(cmd.Context(), s.store(), refs, s.cfg.Assets.Concurrency)
			if err != nil {
				return err
			}
			err = reportCheck(cmd, s.cfg.Assets.Dir, results)
			if stats {
				reportStats(cmd)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&only, "only", "", "check a single direction: buy or sell")
	cmd.Flags().BoolVar(&stats, "stats", false, "print load timings and cache counters")
	return cmd
}

func reportCheck(cmd *cobra.Command, dir string, results []assets.CheckResult) error {
	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(tw, "ok\t%s\t%s %d×%d\n", r.Ref, strings.ToUpper(r.Image.Format), r.Image.Width, r.Image.Height)
		} else {
			fmt.Fprintf(tw, "FAIL\t%s\t%s\n", r.Ref, failureReason(r.Err))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	failed := assets.Failed(results)
	if len(failed) == 0 {
		fmt.Fprintf(out, "\nAll %d images found in %s\n", len(results), dir)
		return nil
	}
	fmt.Fprintf(out, "\n%d of %d images missing or unreadable in %s\n", len(failed), len(results), dir)
	return errMissingImages
}

func reportStats(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	for _, t := range metrics.AllTimingStats() {
		fmt.Fprintf(out, "%-14s n=%-3d avg=%.2fms max=%.2fms total=%.2fms\n", t.Name, t.Count, t.AvgMs, t.MaxMs, t.TotalMs)
	}
	for _, c := range metrics.AllCacheMetrics() {
		st := c.Stats()
		fmt.Fprintf(out, "%-14s hits=%d misses=%d\n", st.Name, st.Hits, st.Misses)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, assets.ErrNotFound):
		return "not found"
	case errors.Is(err, assets.ErrUndecodable):
		return "not a supported image"
	case errors.Is(err, assets.ErrInvalidRef):
		return "invalid reference"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return err.Error()
}
