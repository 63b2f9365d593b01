package assets

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CheckResult is the outcome for one reference.
type CheckResult struct {
	Ref   string
	Image Image
	Err   error
}

// OK reports whether the reference resolved.
func (r CheckResult) OK() bool { return r.Err == nil }

// Check resolves every ref through s with at most limit loads in flight.
// Results keep the order of refs. Only ctx cancellation is returned as an
// error; per-image failures are reported in the results.
func Check(ctx context.Context, s *Store, refs []string, limit int) ([]CheckResult, error) {
	results := make([]CheckResult, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := s.Load(ref)
			results[i] = CheckResult{Ref: ref, Image: img, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed filters results down to the failures.
func Failed(results []CheckResult) []CheckResult {
	var out []CheckResult
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}
