/*
   Generic multi-stage payload processing pipeline.
*/
package pipeline

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Payload is implemented by values that can be sent through the pipeline.
type Payload interface {
	// Clone returns a new Payload that's a deep-copy of the original.
	Clone() Payload

	// MarkAsProcessed is called by the pipeline when the payload reaches
	// the output sink or gets discarded by a stage.
	MarkAsProcessed()
}

// Processor is implemented by types that can process a Payload as part
// of a pipeline stage.
type Processor interface {
	// Process takes an input Payload and returns a new Payload to be
	// forwarded to the next stage or the output sink. Processors can
	// prevent a payload from reaching the rest of the pipeline by
	// returning nil.
	Process(context.Context, Payload) (Payload, error)
}

// ProcessorFunc is an adapter to allow the use of plain functions as
// Processor instances.
type ProcessorFunc func(context.Context, Payload) (Payload, error)

func (f ProcessorFunc) Process(ctx context.Context, p Payload) (Payload, error) {
	return f(ctx, p)
}

// StageParams provides the information required for executing a
// pipeline stage. A StageParams instance is passed to the Run() method
// of each stage.
type StageParams interface {
	// StageIndex returns the position of this stage in the pipeline.
	StageIndex() int
	// Input returns a channel for reading the input payloads for the stage.
	Input() <-chan Payload
	// Output returns a channel for writing the stage output.
	Output() chan<- Payload
	// Error returns a channel for writing errors that were encountered
	// during the stage execution.
	Error() chan<- error
}

// StageRunner is implemented by types that can be chained together to
// form a multi-stage pipeline.
type StageRunner interface {
	// Run implements the processing logic of a stage. Run reads input
	// payloads from the Input channel and writes its output to the
	// Output channel. Calls to Run are expected to block until one of
	// the following occurs:
	// - the input channel is closed
	// - the context gets cancelled
	Run(context.Context, StageParams)
}

// Source is implemented by types that generate Payload instances which
// can be used as inputs to a Pipeline instance.
type Source interface {
	// Next fetches the next payload. If no more payloads are available
	// or an error occurs, calls to Next return false.
	Next(context.Context) bool

	// Payload returns the next payload to be processed.
	Payload() Payload

	// Error returns the last error observed by the source.
	Error() error
}

// Sink is implemented by types that consume the output of a Pipeline
// instance.
type Sink interface {
	// Consume processes a Payload instance that has been emitted out of
	// a Pipeline instance.
	Consume(context.Context, Payload) error
}

// Pipeline implements a modular, multi-stage pipeline. Each pipeline is
// constructed out of an input source, an output sink and zero or more
// processing stages.
type Pipeline struct {
	stages []StageRunner
}

// New returns a new Pipeline instance where input payloads will
// traverse each of the provided stages in order.
func New(stages ...StageRunner) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process reads the contents of the specified source, sends them
// through the various stages of the pipeline and directs the results to
// the specified sink, returning back any errors that may have occurred.
//
// Calls to Process block until:
//  - all data from the source has been processed OR
//  - an error occurs OR
//  - the supplied context expires/gets cancelled
//
// It is safe to call Process concurrently with different sources and sinks.
func (p *Pipeline) Process(ctx context.Context, source Source, sink Sink) error {
	var wg sync.WaitGroup
	ctx, ctxCancel := context.WithCancel(ctx)
	defer ctxCancel()

	// Allocate channels for wiring together the source, the pipeline
	// stages and the output sink. The output of the ith stage is used as
	// the input of the i+1th stage; one extra channel is needed to wire
	// the source and the sink.
	stageCh := make([]chan Payload, len(p.stages)+1)
	errCh := make(chan error, len(p.stages)+2)
	for i := range stageCh {
		stageCh[i] = make(chan Payload)
	}

	// Start a worker for each stage.
	wg.Add(len(p.stages))
	for i := range p.stages {
		go func(stageIdx int) {
			defer wg.Done()
			p.stages[stageIdx].Run(
				ctx,
				&WorkerParams{
					Stage: stageIdx,
					InCh:  stageCh[stageIdx],
					OutCh: stageCh[stageIdx+1],
					ErrCh: errCh,
				},
			)
			close(stageCh[stageIdx+1])
		}(i)
	}

	// Start the source and sink goroutines.
	wg.Add(2)
	go func() {
		defer wg.Done()
		sourceWorker(ctx, source, stageCh[0], errCh)
		close(stageCh[0])
	}()

	go func() {
		defer wg.Done()
		sinkWorker(ctx, sink, stageCh[len(stageCh)-1], errCh)
	}()

	// Guarding goroutine: close the error channel and cancel the context
	// once all workers are done.
	go func() {
		wg.Wait()
		close(errCh)
		ctxCancel()
	}()

	// Collect any emitted errors and wrap them in a multi-error.
	var err error
	for pErr := range errCh {
		err = multierror.Append(err, pErr)
		ctxCancel()
	}
	return err
}
