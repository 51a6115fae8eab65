package scanner

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/vibescan/internal/taxonomy"
)

// maxConcurrentScanners bounds the fan-out so shell-based checks cannot
// exhaust process slots.
const maxConcurrentScanners = 4

// RunAll executes every scanner concurrently and returns results in the same
// order the scanners were given, so merge precedence survives parallel
// execution. A scanner that returns an error or panics is isolated: it yields
// an empty detection list with the elapsed time up to failure and never
// aborts the others.
func RunAll(ctx context.Context, scanners []Scanner) []Result {
	results := make([]Result, len(scanners))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScanners)

	for i, s := range scanners {
		i, s := i, s
		g.Go(func() error {
			results[i] = runOne(ctx, s)
			return nil
		})
	}

	// Workers never return errors; failures are captured per result.
	_ = g.Wait()
	return results
}

func runOne(ctx context.Context, s Scanner) (result Result) {
	start := time.Now()
	result = Result{Scanner: s.Name(), Detections: []taxonomy.Detection{}}

	defer func() {
		result.Duration = time.Since(start)
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "scanner %s panicked: %v\n", s.Name(), r)
			result.Detections = []taxonomy.Detection{}
		}
	}()

	detections, err := s.Scan(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scanner %s failed: %v\n", s.Name(), err)
		return result
	}
	if detections != nil {
		result.Detections = detections
	}
	return result
}
