package extractor

import "regexp"

// Extractor is implemented by objects that can map raw document
// contents to the set of documents they link to.
type Extractor interface {
	// ExtractLinks returns the identifiers of the documents that the
	// provided content links to. Implementations must be pure: no I/O,
	// no retained state, and malformed input degrades to an empty
	// result instead of an error.
	ExtractLinks(content []byte) []string
}

var hrefRegex = regexp.MustCompile(`(?i)<a\s+HREF="(\d+\.html)"`)

var _ Extractor = HrefExtractor{}

// HrefExtractor extracts anchor targets of the form N.html from the
// generated corpus pages. Targets are returned deduplicated, in
// document order.
type HrefExtractor struct{}

func (HrefExtractor) ExtractLinks(content []byte) []string {
	matches := hrefRegex.FindAllSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	links := make([]string, 0, len(matches))
	for _, match := range matches {
		target := string(match[1])
		if _, exists := seen[target]; exists {
			continue
		}
		seen[target] = struct{}{}
		links = append(links, target)
	}
	return links
}
