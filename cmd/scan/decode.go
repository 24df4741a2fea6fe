package main

import (
	"context"
	"sync"

	"github.com/Garik-/midfix4agb/pkg/midi"
	"go.uber.org/zap"
)

type result struct {
	name  string
	score *midi.Score
	err   error
}

func decodeFile(name string) *result {
	out := &result{name: name}
	out.score, out.err = midi.ReadFile(name)
	return out
}

// decodeWorker decodes at most cntRoutines files at a time. done is signalled
// once every started decode has finished or been dropped.
func decodeWorker(ctx context.Context, paths <-chan string, cntRoutines int) (<-chan *result, <-chan struct{}) {
	log := decoderLog.Named("decodeWorker")
	out := make(chan *result)
	done := make(chan struct{}, 1)

	go func() {
		var wg sync.WaitGroup
		goroutines := make(chan struct{}, cntRoutines)

	loop:
		for path := range paths {
			select {
			case goroutines <- struct{}{}:
			case <-ctx.Done():
				log.Debug("context done")
				break loop
			}
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				defer func() { <-goroutines }()

				if ctx.Err() != nil {
					log.Debug("skipped", zap.String("name", path))
					return
				}

				select {
				case out <- decodeFile(path):
				case <-ctx.Done():
					log.Debug("result dropped", zap.String("name", path))
				}
			}(path)
		}

		wg.Wait()
		close(goroutines)
		close(out)

		done <- struct{}{}
		close(done)
	}()

	return out, done
}
