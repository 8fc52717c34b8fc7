/*
   Maintains the directed link graph of a document corpus while it is
   being assembled by concurrent fetch workers.
*/
package graph

import "sync"

// Graph accumulates the directed link structure of a document corpus.
// Vertices are keyed by document identifier (the object name). The
// graph is safe for concurrent insertion; all mutation is serialized
// through a single mutex.
type Graph struct {
	mu sync.RWMutex

	out       map[string]map[string]struct{}
	edgeCount int
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{out: make(map[string]map[string]struct{})}
}

// AddVertex registers the document with the specified id as a graph
// vertex. Adding an existing vertex is a no-op.
func (g *Graph) AddVertex(id string) {
	g.mu.Lock()
	g.addVertexLocked(id)
	g.mu.Unlock()
}

// AddEdge inserts a directed edge from src to dst. Both endpoints are
// registered as vertices if not already present, so a target that was
// never fetched still appears in the graph (as a dangling vertex).
// Inserting the same edge twice is a no-op.
func (g *Graph) AddEdge(src, dst string) {
	g.mu.Lock()
	targets := g.addVertexLocked(src)
	g.addVertexLocked(dst)
	if _, exists := targets[dst]; !exists {
		targets[dst] = struct{}{}
		g.edgeCount++
	}
	g.mu.Unlock()
}

func (g *Graph) addVertexLocked(id string) map[string]struct{} {
	targets := g.out[id]
	if targets == nil {
		targets = make(map[string]struct{})
		g.out[id] = targets
	}
	return targets
}

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.out)
}

// EdgeCount returns the number of distinct edges in the graph.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edgeCount
}
