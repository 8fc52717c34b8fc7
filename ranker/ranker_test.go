package ranker_test

import (
	"context"
	"math"
	"testing"

	"github.com/Ahmed-Sermani/bucketrank/graph"
	"github.com/Ahmed-Sermani/bucketrank/ranker"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(RankerTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type RankerTestSuite struct{}

func (s *RankerTestSuite) TestTwoNodeCycleSymmetry(c *gc.C) {
	snap := buildSnapshot(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	res := s.rank(c, snap, ranker.Config{ComputeWorkers: 1})
	c.Assert(res.Converged, gc.Equals, true)

	// The graph is symmetric under swapping A and B so the converged
	// scores must be identical, not merely close.
	c.Assert(res.Scores["A"], gc.Equals, res.Scores["B"])
	c.Assert(math.Abs(res.Scores["A"]-0.5) < 1e-9, gc.Equals, true)
	c.Assert(math.Abs(res.Sum-1.0) < 1e-9, gc.Equals, true)
}

func (s *RankerTestSuite) TestSingleIsolatedNode(c *gc.C) {
	g := graph.NewGraph()
	g.AddVertex("only")

	res := s.rank(c, g.Snapshot(), ranker.Config{ComputeWorkers: 1})
	c.Assert(res.Converged, gc.Equals, true)
	c.Assert(res.Iterations, gc.Equals, 1)
	// The dangling redistribution hands the full mass straight back.
	c.Assert(res.Scores["only"], gc.Equals, 1.0)
}

func (s *RankerTestSuite) TestThreeNodeChainWithDanglingTail(c *gc.C) {
	// A -> B -> C with C dangling; fixed point solved analytically for
	// damping 0.85.
	snap := buildSnapshot(map[string][]string{
		"A": {"B"},
		"B": {"C"},
	})

	res := s.rank(c, snap, ranker.Config{Tolerance: 1e-8, ComputeWorkers: 1})
	c.Assert(res.Converged, gc.Equals, true)

	expected := map[string]float64{
		"A": 0.1844168,
		"B": 0.3411710,
		"C": 0.4744122,
	}
	for id, want := range expected {
		c.Assert(math.Abs(res.Scores[id]-want) < 1e-6, gc.Equals, true,
			gc.Commentf("vertex %v: got %v, want %v", id, res.Scores[id], want))
	}
	c.Assert(res.Scores["C"] > res.Scores["A"], gc.Equals, true)
	c.Assert(math.Abs(res.Sum-1.0) < 1e-9, gc.Equals, true)
}

func (s *RankerTestSuite) TestMassConservationWithDanglingVertices(c *gc.C) {
	// Two of the five vertices are dangling. Run a single iteration with
	// an unreachable tolerance: the total mass must still be conserved
	// and the non-convergence must be surfaced.
	snap := buildSnapshot(map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d", "e"},
	})

	res := s.rank(c, snap, ranker.Config{
		Tolerance:      1e-12,
		MaxIterations:  1,
		ComputeWorkers: 1,
	})
	c.Assert(res.Converged, gc.Equals, false)
	c.Assert(res.Iterations, gc.Equals, 1)
	c.Assert(math.Abs(res.Sum-1.0) < 1e-12, gc.Equals, true)
}

func (s *RankerTestSuite) TestRankSumInvariant(c *gc.C) {
	snap := buildSnapshot(map[string][]string{
		"0": {"1", "2", "5"},
		"1": {"2"},
		"2": {"0", "3"},
		"3": {"3", "4"},
		"4": {},
		"5": {"0", "1", "2", "3"},
		"6": {"0"},
	})

	res := s.rank(c, snap, ranker.Config{})
	c.Assert(res.Converged, gc.Equals, true)
	c.Assert(math.Abs(res.Sum-1.0) < 1e-9, gc.Equals, true)
	for id, score := range res.Scores {
		c.Assert(score > 0, gc.Equals, true, gc.Commentf("vertex %v", id))
	}
}

func (s *RankerTestSuite) TestDeterministicResults(c *gc.C) {
	edges := map[string][]string{
		"p0": {"p1", "p2"},
		"p1": {"p3"},
		"p2": {"p0", "p3", "p4"},
		"p3": {"p0"},
		"p4": {},
		"p5": {"p2", "p4"},
		"p6": {"p6", "p0"},
		"p7": {"p5"},
	}

	var results []*ranker.Result
	for _, workers := range []int{1, 4, 4} {
		res := s.rank(c, buildSnapshot(edges), ranker.Config{ComputeWorkers: workers})
		results = append(results, res)
	}

	// Identical graph and parameters must yield bitwise-identical
	// scores, regardless of the worker count.
	c.Assert(results[1].Scores, gc.DeepEquals, results[0].Scores)
	c.Assert(results[2].Scores, gc.DeepEquals, results[0].Scores)
	c.Assert(results[1].Iterations, gc.Equals, results[0].Iterations)
}

func (s *RankerTestSuite) TestTopOrdering(c *gc.C) {
	snap := buildSnapshot(map[string][]string{
		"a":   {"hub"},
		"b":   {"hub"},
		"c":   {"hub"},
		"hub": {"a"},
	})

	res := s.rank(c, snap, ranker.Config{})
	top := res.Top(2)
	c.Assert(top, gc.HasLen, 2)
	c.Assert(top[0].ID, gc.Equals, "hub")
	c.Assert(top[0].Score >= top[1].Score, gc.Equals, true)

	c.Assert(res.Top(100), gc.HasLen, 4)
	c.Assert(res.Top(0), gc.HasLen, 0)
}

func (s *RankerTestSuite) TestEmptyGraph(c *gc.C) {
	r, err := ranker.NewRanker(ranker.Config{})
	c.Assert(err, gc.IsNil)

	_, err = r.Rank(context.Background(), graph.NewGraph().Snapshot())
	c.Assert(xerrors.Is(err, ranker.ErrEmptyGraph), gc.Equals, true)
}

func (s *RankerTestSuite) TestConfigValidation(c *gc.C) {
	badConfigs := []ranker.Config{
		{DampingFactor: 1.0},
		{DampingFactor: -0.1},
		{Tolerance: -1e-6},
		{MaxIterations: -1},
		{ComputeWorkers: -1},
	}
	for i, cfg := range badConfigs {
		_, err := ranker.NewRanker(cfg)
		c.Assert(err, gc.NotNil, gc.Commentf("config %d", i))
	}

	_, err := ranker.NewRanker(ranker.Config{})
	c.Assert(err, gc.IsNil)
}

func (s *RankerTestSuite) rank(c *gc.C, snap *graph.Snapshot, cfg ranker.Config) *ranker.Result {
	r, err := ranker.NewRanker(cfg)
	c.Assert(err, gc.IsNil)

	res, err := r.Rank(context.Background(), snap)
	c.Assert(err, gc.IsNil)
	return res
}

func buildSnapshot(edges map[string][]string) *graph.Snapshot {
	g := graph.NewGraph()
	for src, targets := range edges {
		g.AddVertex(src)
		for _, dst := range targets {
			g.AddEdge(src, dst)
		}
	}
	return g.Snapshot()
}
