package pipeline

import (
	"context"
	"errors"

	"hamark/internal/records"
	"hamark/internal/scene"
)

// BatchOptions controls RunBatch.
type BatchOptions struct {
	// KeepGoing continues past a failed record instead of stopping.
	KeepGoing bool
	// OnResult, when set, sees every finished record in order.
	OnResult func(Result)
}

// Summary collects the per-record results of a batch.
type Summary struct {
	Results []Result
	Failed  int
}

// Images returns every image path written by successful records.
func (s Summary) Images() []string {
	var out []string
	for _, r := range s.Results {
		if r.OK() {
			out = append(out, r.Images...)
		}
	}
	return out
}

// RunBatch processes records sequentially against one scene. Cancellation
// is checked between records; a record already in the host runs to the end.
// The returned error is the first failure (or ctx.Err()).
func RunBatch(ctx context.Context, sc *scene.Scene, list []records.Record, o BatchOptions) (Summary, error) {
	var (
		sum   Summary
		first error
	)
	for _, rec := range list {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res, err := Process(ctx, sc, rec)
		sum.Results = append(sum.Results, res)
		if o.OnResult != nil {
			o.OnResult(res)
		}
		if err == nil {
			continue
		}
		sum.Failed++
		if first == nil {
			first = err
		}
		if errors.Is(err, context.Canceled) || !o.KeepGoing {
			return sum, err
		}
	}
	return sum, first
}
