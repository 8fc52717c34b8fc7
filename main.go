package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/Ahmed-Sermani/bucketrank/extractor"
	"github.com/Ahmed-Sermani/bucketrank/fetcher"
	"github.com/Ahmed-Sermani/bucketrank/graph"
	"github.com/Ahmed-Sermani/bucketrank/ranker"
	"github.com/Ahmed-Sermani/bucketrank/store"
	gcsstore "github.com/Ahmed-Sermani/bucketrank/store/gcs"
	memstore "github.com/Ahmed-Sermani/bucketrank/store/memory"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var (
	appName = "bucketrank"
	appSha  = ""
)

func main() {
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger := rootLogger.WithFields(logrus.Fields{
		"app":    appName,
		"sha":    appSha,
		"run_id": uuid.New().String(),
	})

	if err := run(logger); err != nil {
		logger.WithError(err).Fatal("rank computation failed")
	}
}

func run(logger *logrus.Entry) error {
	// A local .env file can provide the bucket name and credentials; a
	// missing file is fine.
	_ = godotenv.Load()

	var (
		fetcherCfg fetcher.Config
		rankerCfg  ranker.Config
	)

	storeURI := flag.String("store-uri", defaultStoreURI(), "The URI for connecting to the document store (supported URIs: in-memory://, gs://bucket-name)")
	prefix := flag.String("prefix", envOr("PAGES_PREFIX", "html-pages"), "The object name prefix under which the corpus lives")
	numDocs := flag.Int("n", 0, "The number of documents in the corpus; 0 enumerates the store prefix instead")
	topK := flag.Int("topk", 5, "The number of top-ranked documents to print")
	flag.IntVar(&fetcherCfg.FetchWorkers, "fetch-workers", 32, "The number of workers to use for fetching documents")
	flag.IntVar(&rankerCfg.ComputeWorkers, "compute-workers", runtime.NumCPU(), "The number of workers to use for rank computation (defaults to number of CPUs)")
	flag.Float64Var(&rankerCfg.DampingFactor, "damping", 0.85, "The damping factor for the PageRank computation")
	flag.Float64Var(&rankerCfg.Tolerance, "tolerance", 1e-6, "The L1 convergence tolerance for the PageRank computation")
	flag.IntVar(&rankerCfg.MaxIterations, "max-iterations", 100, "The maximum number of PageRank iterations")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	docStore, err := getStore(ctx, *storeURI, logger)
	if err != nil {
		return err
	}

	docIDs, keepTarget, err := enumerateCorpus(ctx, docStore, *prefix, *numDocs)
	if err != nil {
		return err
	}
	logger.WithField("documents", len(docIDs)).Info("corpus enumerated")

	linkGraph := graph.NewGraph()
	fetcherCfg.Store = docStore
	fetcherCfg.Extractor = extractor.HrefExtractor{}
	fetcherCfg.Graph = linkGraph
	fetcherCfg.KeepTarget = keepTarget
	fetcherCfg.Logger = logger.WithField("component", "fetcher")

	f, err := fetcher.NewFetcher(fetcherCfg)
	if err != nil {
		return err
	}

	summary, err := f.Run(ctx, docIDs)
	if err != nil {
		return xerrors.Errorf("fetching corpus: %w", err)
	}
	if summary.Failed > 0 {
		logger.WithFields(logrus.Fields{
			"failed":  summary.Failed,
			"fetched": summary.Fetched,
		}).Warn("some documents could not be fetched; they contribute no edges")
	}
	logger.WithFields(logrus.Fields{
		"fetched":  summary.Fetched,
		"failed":   summary.Failed,
		"read_sec": summary.Elapsed.Seconds(),
	}).Info("corpus fetched")

	snap := linkGraph.Snapshot()
	report := graph.Summarize(snap)
	logger.WithFields(logrus.Fields{
		"vertices":        report.Vertices,
		"edges":           report.Edges,
		"dangling":        report.Dangling,
		"in_degree_min":   report.InDegree.Min,
		"in_degree_max":   report.InDegree.Max,
		"in_degree_mean":  report.InDegree.Mean,
		"out_degree_min":  report.OutDegree.Min,
		"out_degree_max":  report.OutDegree.Max,
		"out_degree_mean": report.OutDegree.Mean,
	}).Info("graph statistics")

	r, err := ranker.NewRanker(rankerCfg)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := r.Rank(ctx, snap)
	if err != nil {
		return xerrors.Errorf("computing ranks: %w", err)
	}
	if !res.Converged {
		logger.WithField("iterations", res.Iterations).Warn("rank computation hit the iteration cap before converging")
	}
	logger.WithFields(logrus.Fields{
		"iterations": res.Iterations,
		"sum":        res.Sum,
		"rank_sec":   time.Since(start).Seconds(),
	}).Info("ranks computed")

	for _, doc := range res.Top(*topK) {
		fmt.Printf("%s\t%.10f\n", doc.ID, doc.Score)
	}
	return nil
}

func getStore(ctx context.Context, storeURI string, logger *logrus.Entry) (store.Store, error) {
	if storeURI == "" {
		return nil, xerrors.New("store URI must be specified with --store-uri")
	}

	uri, err := url.Parse(storeURI)
	if err != nil {
		return nil, xerrors.Errorf("could not parse store URI: %w", err)
	}

	switch uri.Scheme {
	case "in-memory":
		logger.Info("using in-memory store")
		return memstore.NewInMemoryStore(), nil
	case "gs":
		logger.WithField("bucket", uri.Host).Info("using GCS store")
		return gcsstore.NewBucketStore(ctx, uri.Host)
	default:
		return nil, xerrors.Errorf("unsupported store URI scheme: %q", uri.Scheme)
	}
}

// enumerateCorpus produces the list of document identifiers to rank.
// When n is positive, the corpus follows the generated layout
// prefix/0.html .. prefix/(n-1).html and link targets outside the
// enumerated range are dropped, matching how the corpus was produced.
// Otherwise the store listing is the corpus and every discovered target
// is kept (targets never fetched remain as dangling vertices).
func enumerateCorpus(ctx context.Context, docStore store.Store, prefix string, n int) ([]string, func(string) bool, error) {
	prefix = strings.TrimSuffix(prefix, "/")

	if n > 0 {
		docIDs := make([]string, n)
		corpus := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			docIDs[i] = fmt.Sprintf("%s/%d.html", prefix, i)
			corpus[docIDs[i]] = struct{}{}
		}
		keep := func(id string) bool {
			_, exists := corpus[id]
			return exists
		}
		return docIDs, keep, nil
	}

	docIDs, err := docStore.List(ctx, prefix+"/")
	if err != nil {
		return nil, nil, xerrors.Errorf("enumerating corpus: %w", err)
	}
	return docIDs, nil, nil
}

func defaultStoreURI() string {
	if bucket := envOr("BUCKET", os.Getenv("BUCKET_NAME")); bucket != "" {
		return "gs://" + bucket
	}
	return "in-memory://"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
