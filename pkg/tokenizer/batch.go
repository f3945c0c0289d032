package tokenizer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SentenceTokenizeBatch runs tok.SentenceTokenize over every text with at
// most workers texts in flight (0 means GOMAXPROCS). Results come back in
// input order. Texts not yet started when ctx is done are skipped and the
// context error is returned.
func SentenceTokenizeBatch(ctx context.Context, tok Tokenizer, texts []string, workers int) ([][][]string, error) {
	if workers < 0 {
		return nil, ErrInvalidWorkers
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([][][]string, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = tok.SentenceTokenize(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
