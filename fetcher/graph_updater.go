package fetcher

import (
	"context"

	"github.com/Ahmed-Sermani/bucketrank/graph"
	"github.com/Ahmed-Sermani/bucketrank/pipeline"
)

var _ pipeline.Processor = (*graphUpdater)(nil)

type graphUpdater struct {
	g *graph.Graph
}

func newGraphUpdater(g *graph.Graph) *graphUpdater {
	return &graphUpdater{g: g}
}

func (gu *graphUpdater) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*documentPayload)

	// Edge insertion is idempotent so payloads arriving in any order,
	// or documents repeating a link, cannot double-count an edge.
	for _, target := range payload.Targets {
		gu.g.AddEdge(payload.DocID, target)
	}
	return p, nil
}
