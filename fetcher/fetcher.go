/*
   Manages the concurrent fetching of a document corpus and its
   aggregation into a link graph.
*/
package fetcher

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/Ahmed-Sermani/bucketrank/extractor"
	"github.com/Ahmed-Sermani/bucketrank/graph"
	"github.com/Ahmed-Sermani/bucketrank/pipeline"
	"github.com/Ahmed-Sermani/bucketrank/pipeline/runners"
	"github.com/Ahmed-Sermani/bucketrank/store"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// ErrNoDocuments is returned by Run when the corpus enumeration is empty.
var ErrNoDocuments = xerrors.New("no documents to fetch")

// Config encapsulates the settings for a Fetcher instance.
type Config struct {
	// Store retrieves raw document contents.
	Store store.Store

	// Extractor maps document contents to link targets.
	Extractor extractor.Extractor

	// Graph receives the vertices and edges discovered by the pipeline.
	Graph *graph.Graph

	// FetchWorkers bounds the number of concurrent document fetches.
	FetchWorkers int

	// KeepTarget, when non-nil, decides whether a resolved link target
	// becomes a graph edge. Rejected targets are dropped entirely.
	KeepTarget func(id string) bool

	// Logger for reporting per-document fetch failures. If not defined,
	// a null logger is used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Store == nil {
		err = multierror.Append(err, xerrors.New("document store has not been provided"))
	}
	if cfg.Extractor == nil {
		err = multierror.Append(err, xerrors.New("link extractor has not been provided"))
	}
	if cfg.Graph == nil {
		err = multierror.Append(err, xerrors.New("graph has not been provided"))
	}
	if cfg.FetchWorkers < 1 {
		err = multierror.Append(err, xerrors.New("invalid value for fetch workers"))
	}
	if cfg.Logger == nil {
		nullLogger := logrus.New()
		nullLogger.SetOutput(io.Discard)
		cfg.Logger = logrus.NewEntry(nullLogger)
	}
	return err
}

// Summary describes the outcome of a fetch run.
type Summary struct {
	// Fetched is the number of documents that were fetched and parsed
	// successfully.
	Fetched int

	// Failed is the number of documents whose fetch or parse failed.
	// Failed documents stay in the graph as vertices without outgoing
	// edges.
	Failed int

	Elapsed time.Duration
}

// Fetcher implements the document fetching pipeline consisting of the
// following stages:
//
// - Given a document identifier, retrieve its contents from the store.
// - Extract the link targets from the retrieved contents and resolve
//   them against the document's directory.
// - Insert the document and its out-links into the link graph.
type Fetcher struct {
	cfg Config
}

// NewFetcher returns a new Fetcher instance using the provided config
// options.
func NewFetcher(cfg Config) (*Fetcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("fetcher config validation failed: %w", err)
	}
	return &Fetcher{cfg: cfg}, nil
}

// Run sends every identifier in docIDs through the fetch pipeline and
// aggregates the discovered links into the configured graph. Calls to
// Run block until the corpus is exhausted, an error occurs or the
// context is cancelled. Individual fetch failures are counted and
// skipped; they never abort the run. Results are aggregated in no
// particular order.
func (f *Fetcher) Run(ctx context.Context, docIDs []string) (*Summary, error) {
	if len(docIDs) == 0 {
		return nil, ErrNoDocuments
	}

	// Every enumerated document is part of the graph even if its fetch
	// later fails; a failure simply leaves it without outgoing edges.
	for _, id := range docIDs {
		f.cfg.Graph.AddVertex(id)
	}

	var failed int64
	p := assembleFetchPipeline(f.cfg, &failed)

	sink := new(countingSink)
	start := time.Now()
	if err := p.Process(ctx, &documentSource{docIDs: docIDs}, sink); err != nil {
		return nil, err
	}

	return &Summary{
		Fetched: sink.getCount(),
		Failed:  int(atomic.LoadInt64(&failed)),
		Elapsed: time.Since(start),
	}, nil
}

func assembleFetchPipeline(cfg Config, failed *int64) *pipeline.Pipeline {
	return pipeline.New(
		runners.FixedWorkerPool(
			newDocumentFetcher(cfg.Store, cfg.Logger, failed),
			cfg.FetchWorkers,
		),
		runners.FIFO(newLinkExtractor(cfg.Extractor, cfg.KeepTarget)),
		runners.FIFO(newGraphUpdater(cfg.Graph)),
	)
}
