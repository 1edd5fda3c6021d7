package hy3

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParseFiles parses several files concurrently. Each file gets its own
// ParsedFile; results are returned in the order of paths. The first failure
// cancels the remaining parses.
func ParseFiles(ctx context.Context, p *Parser, paths []string) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Result, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := p.ParseFile(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
