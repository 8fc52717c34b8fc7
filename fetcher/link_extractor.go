package fetcher

import (
	"context"
	"path"

	"github.com/Ahmed-Sermani/bucketrank/extractor"
	"github.com/Ahmed-Sermani/bucketrank/pipeline"
)

var _ pipeline.Processor = (*linkExtractor)(nil)

type linkExtractor struct {
	extractor  extractor.Extractor
	keepTarget func(id string) bool
}

func newLinkExtractor(ex extractor.Extractor, keepTarget func(string) bool) *linkExtractor {
	return &linkExtractor{
		extractor:  ex,
		keepTarget: keepTarget,
	}
}

func (le *linkExtractor) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*documentPayload)

	// Extracted targets are relative names; resolve them against the
	// directory of the source document so both sides of an edge use the
	// same identifier space.
	baseDir := path.Dir(payload.DocID)
	for _, target := range le.extractor.ExtractLinks(payload.RawContent.Bytes()) {
		resolved := target
		if baseDir != "." {
			resolved = baseDir + "/" + target
		}
		if le.keepTarget != nil && !le.keepTarget(resolved) {
			continue
		}
		payload.Targets = append(payload.Targets, resolved)
	}
	return payload, nil
}
