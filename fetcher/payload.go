package fetcher

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/Ahmed-Sermani/bucketrank/pipeline"
)

var (
	_ pipeline.Payload = (*documentPayload)(nil)

	// The fetcher pushes large numbers of payloads through the pipeline
	// concurrently which puts pressure on the GC. To reduce the number
	// of allocations, payloads are recycled through a pool: each request
	// either returns an existing object or creates a new one.
	payloadPool = sync.Pool{
		New: func() any { return new(documentPayload) },
	}
)

type documentPayload struct {
	DocID string

	RawContent bytes.Buffer

	// Targets holds the resolved identifiers of the documents that this
	// document links to.
	Targets []string
}

func (p *documentPayload) Clone() pipeline.Payload {
	newp := payloadPool.Get().(*documentPayload)
	newp.DocID = p.DocID
	newp.Targets = append([]string(nil), p.Targets...)

	if _, err := io.Copy(&newp.RawContent, &p.RawContent); err != nil {
		panic(fmt.Sprintf("error while cloning payload contents: %v", err))
	}
	return newp
}

// MarkAsProcessed resets the payload before putting it back to the
// pool. Slice lengths and the buffer are zeroed without touching their
// capacity so recycled payloads reuse the already allocated space.
func (p *documentPayload) MarkAsProcessed() {
	p.DocID = ""
	p.RawContent.Reset()
	p.Targets = p.Targets[:0]
	payloadPool.Put(p)
}
