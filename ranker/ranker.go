/*
   Implements Google's famous and first PageRank algorithm
   https://en.wikipedia.org/wiki/PageRank over a finalized document
   graph snapshot.
*/
package ranker

import (
	"runtime"
	"sort"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

/*
   PageRank works by counting the number and quality of links to a page
   to determine a rough estimate of how important the page is, under the
   model of a random surfer: with probability equal to the damping
   factor the surfer follows one of the outgoing links of the current
   page; otherwise they teleport to a uniformly random page.

   Scores reflect the probability that the surfer lands on a particular
   page, so every score lies in [0, 1] and the sum of all scores is 1.
   Pages without outgoing links (dangling pages) strand the surfer;
   their score mass is redistributed uniformly across the whole graph on
   every iteration, otherwise probability mass leaks out of the vector
   and the stationary-distribution interpretation breaks.
*/

// ErrEmptyGraph is returned by Rank when the graph contains no vertices.
var ErrEmptyGraph = xerrors.New("cannot rank an empty graph")

const (
	defaultDampingFactor = 0.85
	defaultTolerance     = 1e-6
	defaultMaxIterations = 100
)

// Config encapsulates the settings for a Ranker instance. Zero values
// select the documented defaults.
type Config struct {
	// DampingFactor is the probability that the random surfer follows
	// one of the outgoing links of the current page. Must lie in the
	// range [0, 1). Defaults to 0.85.
	DampingFactor float64

	// Tolerance is the L1 distance between successive rank vectors
	// below which the computation is considered converged. Must be
	// positive. Defaults to 1e-6.
	Tolerance float64

	// MaxIterations caps the number of iterations so that pathological
	// graphs still terminate. Reaching the cap is reported through
	// Result.Converged, not as an error. Defaults to 100.
	MaxIterations int

	// ComputeWorkers is the number of workers that compute per-vertex
	// score updates within one iteration. The worker count never
	// affects the computed scores. Defaults to the number of CPUs.
	ComputeWorkers int
}

func (cfg *Config) validate() error {
	var err error
	if cfg.DampingFactor == 0 {
		cfg.DampingFactor = defaultDampingFactor
	}
	if cfg.DampingFactor < 0 || cfg.DampingFactor >= 1 {
		err = multierror.Append(err, xerrors.New("damping factor must be in the range [0, 1)"))
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = defaultTolerance
	}
	if cfg.Tolerance <= 0 {
		err = multierror.Append(err, xerrors.New("tolerance must be positive"))
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.MaxIterations < 1 {
		err = multierror.Append(err, xerrors.New("invalid value for max iterations"))
	}
	if cfg.ComputeWorkers == 0 {
		cfg.ComputeWorkers = runtime.NumCPU()
	}
	if cfg.ComputeWorkers < 1 {
		err = multierror.Append(err, xerrors.New("invalid value for compute workers"))
	}
	return err
}

// Ranker executes the iterative version of the PageRank algorithm on a
// graph snapshot until the desired level of convergence is reached.
type Ranker struct {
	cfg Config
}

// NewRanker returns a new Ranker instance using the provided config
// options.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank ranker config validation failed: %w", err)
	}
	return &Ranker{cfg: cfg}, nil
}

// Result holds the outcome of a rank computation.
type Result struct {
	// Scores maps each document identifier to its PageRank score. The
	// scores sum to 1.0 within floating-point tolerance.
	Scores map[string]float64

	// Iterations is the number of iterations that were executed.
	Iterations int

	// Converged is false when MaxIterations elapsed before the L1
	// distance between successive vectors dropped below the tolerance.
	Converged bool

	// Sum is the total mass of the final vector so that callers can
	// verify the normalization instead of assuming it.
	Sum float64
}

// RankedDoc pairs a document identifier with its PageRank score.
type RankedDoc struct {
	ID    string
	Score float64
}

// Top returns the k highest ranked documents ordered by score
// descending. Ties are broken by identifier so the ordering is
// deterministic.
func (r *Result) Top(k int) []RankedDoc {
	ranked := make([]RankedDoc, 0, len(r.Scores))
	for id, score := range r.Scores {
		ranked = append(ranked, RankedDoc{ID: id, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	if k < 0 {
		k = 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
