package graph

import "sort"

// Snapshot is an immutable, index-based view of a Graph. Vertices are
// assigned dense indexes following the lexicographic order of their
// identifiers, which fixes the iteration order for all downstream
// arithmetic. Out-neighbor and in-neighbor lists are sorted ascending.
type Snapshot struct {
	ids   []string
	index map[string]int

	out       [][]int
	in        [][]int
	dangling  []int
	edgeCount int
}

// Snapshot returns an immutable view of the graph's current contents.
// The receiver remains usable afterwards; the returned snapshot never
// changes.
func (g *Graph) Snapshot() *Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := &Snapshot{
		ids:       make([]string, 0, len(g.out)),
		index:     make(map[string]int, len(g.out)),
		edgeCount: g.edgeCount,
	}
	for id := range g.out {
		snap.ids = append(snap.ids, id)
	}
	sort.Strings(snap.ids)
	for i, id := range snap.ids {
		snap.index[id] = i
	}

	snap.out = make([][]int, len(snap.ids))
	snap.in = make([][]int, len(snap.ids))
	for i, id := range snap.ids {
		targets := g.out[id]
		if len(targets) == 0 {
			snap.dangling = append(snap.dangling, i)
			continue
		}
		outIdx := make([]int, 0, len(targets))
		for dst := range targets {
			outIdx = append(outIdx, snap.index[dst])
		}
		sort.Ints(outIdx)
		snap.out[i] = outIdx
	}

	// Derive the reverse adjacency; sources are visited in ascending
	// order so the in-neighbor lists come out sorted.
	for src, targets := range snap.out {
		for _, dst := range targets {
			snap.in[dst] = append(snap.in[dst], src)
		}
	}
	return snap
}

// VertexCount returns the number of vertices in the snapshot.
func (s *Snapshot) VertexCount() int { return len(s.ids) }

// EdgeCount returns the number of distinct edges in the snapshot.
func (s *Snapshot) EdgeCount() int { return s.edgeCount }

// IDs returns the vertex identifiers in index order. Callers must not
// mutate the returned slice.
func (s *Snapshot) IDs() []string { return s.ids }

// ID returns the identifier of the vertex at index i.
func (s *Snapshot) ID(i int) string { return s.ids[i] }

// Index returns the index of the vertex with the specified identifier.
func (s *Snapshot) Index(id string) (int, bool) {
	i, exists := s.index[id]
	return i, exists
}

// OutDegree returns the number of outgoing edges of the vertex at index i.
func (s *Snapshot) OutDegree(i int) int { return len(s.out[i]) }

// InDegree returns the number of incoming edges of the vertex at index i.
func (s *Snapshot) InDegree(i int) int { return len(s.in[i]) }

// InNeighbors returns the indexes of the vertices with an edge into the
// vertex at index i, in ascending order. Callers must not mutate the
// returned slice.
func (s *Snapshot) InNeighbors(i int) []int { return s.in[i] }

// Dangling returns the indexes of the vertices with no outgoing edges,
// in ascending order. Callers must not mutate the returned slice.
func (s *Snapshot) Dangling() []int { return s.dangling }
