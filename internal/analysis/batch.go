package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// BatchItem is the outcome of one request in a batch.
type BatchItem struct {
	Index  int
	Result *Result
	Err    error
}

// AnalyzeBatch analyzes reqs with at most concurrency requests in flight.
// Items come back in input order and each carries its own error; one
// failure does not stop the others.
func (s *Service) AnalyzeBatch(ctx context.Context, reqs []*Request, concurrency int) []BatchItem {
	if concurrency <= 0 {
		concurrency = s.cfg.BatchConcurrency
	}

	items := make([]BatchItem, len(reqs))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, req := range reqs {
		items[i].Index = i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}
			items[i].Result, items[i].Err = s.Analyze(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	return items
}

type batchFile struct {
	Questions []*Request `yaml:"questions"`
}

// LoadBatch reads a YAML document with a top-level questions list.
func LoadBatch(r io.Reader) ([]*Request, error) {
	var f batchFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("batch file is empty")
		}
		return nil, fmt.Errorf("parse batch file: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, errors.New("batch file has no questions")
	}
	for i, q := range f.Questions {
		if q == nil {
			return nil, fmt.Errorf("question %d is empty", i+1)
		}
	}
	return f.Questions, nil
}
