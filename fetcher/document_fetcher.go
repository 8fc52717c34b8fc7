package fetcher

import (
	"context"
	"sync/atomic"

	"github.com/Ahmed-Sermani/bucketrank/pipeline"
	"github.com/Ahmed-Sermani/bucketrank/store"
	"github.com/sirupsen/logrus"
)

var _ pipeline.Processor = (*documentFetcher)(nil)

type documentFetcher struct {
	store  store.Store
	logger *logrus.Entry

	// failed counts per-document fetch failures across all pool workers.
	failed *int64
}

func newDocumentFetcher(s store.Store, logger *logrus.Entry, failed *int64) *documentFetcher {
	return &documentFetcher{
		store:  s,
		logger: logger,
		failed: failed,
	}
}

func (df *documentFetcher) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*documentPayload)

	content, err := df.store.Fetch(ctx, payload.DocID)
	if err != nil {
		// A single unreachable document must not abort the run. The
		// document keeps its vertex and contributes no edges.
		atomic.AddInt64(df.failed, 1)
		df.logger.WithField("doc", payload.DocID).WithError(err).Warn("fetch failed; skipping document")
		return nil, nil
	}

	payload.RawContent.Write(content)
	return payload, nil
}
