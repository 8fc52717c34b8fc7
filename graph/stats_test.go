package graph_test

import (
	"github.com/Ahmed-Sermani/bucketrank/graph"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(StatsTestSuite))

type StatsTestSuite struct{}

func (s *StatsTestSuite) TestSummarizeChain(c *gc.C) {
	// 0 -> 1 -> 2; vertex 2 is dangling.
	g := graph.NewGraph()
	g.AddEdge("0", "1")
	g.AddEdge("1", "2")

	report := graph.Summarize(g.Snapshot())
	c.Assert(report.Vertices, gc.Equals, 3)
	c.Assert(report.Edges, gc.Equals, 2)
	c.Assert(report.Dangling, gc.Equals, 1)

	c.Assert(report.OutDegree.Count, gc.Equals, 3)
	c.Assert(report.OutDegree.Min, gc.Equals, 0)
	c.Assert(report.OutDegree.Max, gc.Equals, 1)
	c.Assert(report.OutDegree.Mean, gc.Equals, 2.0/3.0)
	c.Assert(report.OutDegree.Median, gc.Equals, 1.0)

	c.Assert(report.InDegree.Min, gc.Equals, 0)
	c.Assert(report.InDegree.Max, gc.Equals, 1)
	c.Assert(report.InDegree.Mean, gc.Equals, 2.0/3.0)
}

func (s *StatsTestSuite) TestSummarizeQuintiles(c *gc.C) {
	// A hub pointed at by everyone: in-degrees are [1 1 1 1 4].
	g := graph.NewGraph()
	for _, src := range []string{"a", "b", "c", "d"} {
		g.AddEdge("hub", src)
		g.AddEdge(src, "hub")
	}

	report := graph.Summarize(g.Snapshot())
	c.Assert(report.Vertices, gc.Equals, 5)
	c.Assert(report.InDegree.Quintiles[0], gc.Equals, 1.0)
	c.Assert(report.InDegree.Quintiles[5], gc.Equals, 4.0)
	c.Assert(report.InDegree.Max, gc.Equals, 4)
}

func (s *StatsTestSuite) TestSummarizeEmptyGraph(c *gc.C) {
	report := graph.Summarize(graph.NewGraph().Snapshot())
	c.Assert(report.Vertices, gc.Equals, 0)
	c.Assert(report.Edges, gc.Equals, 0)
	c.Assert(report.InDegree, gc.DeepEquals, graph.DegreeSummary{})
}
