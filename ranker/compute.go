package ranker

import (
	"context"
	"math"
	"sync"

	"github.com/Ahmed-Sermani/bucketrank/graph"
)

// Rank runs power iteration over the provided snapshot and returns the
// converged rank vector together with the iteration count. Scores are
// initialized to 1/N and renormalization is implicit: dangling mass is
// folded back into every update so each iteration preserves the total.
//
// The computation is deterministic: repeated calls with the same
// snapshot and config yield bitwise-identical results regardless of the
// configured worker count.
func (r *Ranker) Rank(ctx context.Context, snap *graph.Snapshot) (*Result, error) {
	n := snap.VertexCount()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	cur := make([]float64, n)
	next := make([]float64, n)
	for i := range cur {
		cur[i] = 1.0 / float64(n)
	}

	var (
		iterations int
		converged  bool
	)
	for iterations = 1; iterations <= r.cfg.MaxIterations; iterations++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		r.step(snap, cur, next)

		// L1 distance between successive vectors, accumulated in vertex
		// order so the stopping point does not depend on scheduling.
		var delta float64
		for i := range cur {
			delta += math.Abs(next[i] - cur[i])
		}
		cur, next = next, cur

		if delta < r.cfg.Tolerance {
			converged = true
			break
		}
	}
	if !converged {
		iterations = r.cfg.MaxIterations
	}

	scores := make(map[string]float64, n)
	var sum float64
	for i, id := range snap.IDs() {
		scores[id] = cur[i]
		sum += cur[i]
	}

	return &Result{
		Scores:     scores,
		Iterations: iterations,
		Converged:  converged,
		Sum:        sum,
	}, nil
}

// step computes the next rank vector from the frozen cur vector:
//
//   next(v) = (1-d)/N + d * (sum over u->v of cur(u)/outdeg(u) + danglingMass/N)
//
// where danglingMass is the total score held by vertices without
// outgoing edges. Vertices are partitioned into contiguous shards, one
// worker per shard; every slot of next is written by exactly one worker
// and each per-vertex sum runs over the sorted in-neighbor list, so the
// output is independent of the worker count.
func (r *Ranker) step(snap *graph.Snapshot, cur, next []float64) {
	n := len(cur)
	d := r.cfg.DampingFactor

	var danglingMass float64
	for _, i := range snap.Dangling() {
		danglingMass += cur[i]
	}

	base := (1.0-d)/float64(n) + d*danglingMass/float64(n)

	workers := r.cfg.ComputeWorkers
	if workers > n {
		workers = n
	}
	shard := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(lo int) {
			defer wg.Done()
			hi := lo + shard
			if hi > n {
				hi = n
			}
			for v := lo; v < hi; v++ {
				var incoming float64
				for _, u := range snap.InNeighbors(v) {
					incoming += cur[u] / float64(snap.OutDegree(u))
				}
				next[v] = base + d*incoming
			}
		}(w * shard)
	}
	wg.Wait()
}
