package fetcher

import (
	"context"

	"github.com/Ahmed-Sermani/bucketrank/pipeline"
)

type documentSource struct {
	docIDs []string
	curIdx int
}

func (s *documentSource) Next(context.Context) bool {
	if s.curIdx >= len(s.docIDs) {
		return false
	}
	s.curIdx++
	return true
}

func (s *documentSource) Payload() pipeline.Payload {
	payload := payloadPool.Get().(*documentPayload)
	payload.DocID = s.docIDs[s.curIdx-1]
	return payload
}

func (s *documentSource) Error() error { return nil }

type countingSink struct {
	count int
}

func (s *countingSink) Consume(_ context.Context, p pipeline.Payload) error {
	s.count++
	return nil
}

func (s *countingSink) getCount() int { return s.count }
