package pipeline

import (
	"context"

	"golang.org/x/xerrors"
)

// sourceWorker consumes payloads from a Source and pushes them into the
// channel that feeds the first stage of the pipeline.
func sourceWorker(ctx context.Context, source Source, outCh chan<- Payload, errCh chan<- error) {
	for source.Next(ctx) {
		payload := source.Payload()
		select {
		case outCh <- payload:
		case <-ctx.Done():
			return
		}
	}

	if err := source.Error(); err != nil {
		wErr := xerrors.Errorf("pipeline source: %w", err)
		select {
		case errCh <- wErr:
		default: // error channel is full.
		}
	}
}

// sinkWorker consumes payloads from the output channel of the last
// pipeline stage, passes them to the provided sink and marks them as
// processed.
func sinkWorker(ctx context.Context, sink Sink, inCh <-chan Payload, errCh chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, open := <-inCh:
			if !open {
				return
			}
			if err := sink.Consume(ctx, payload); err != nil {
				wErr := xerrors.Errorf("pipeline sink: %w", err)
				select {
				case errCh <- wErr:
				default: // error channel is full.
				}
			}
			payload.MarkAsProcessed()
		}
	}
}
