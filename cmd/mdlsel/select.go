package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/mdlsel"
	"github.com/hupe1980/mdlsel/codec"
	"github.com/hupe1980/mdlsel/dataset"
	mdlprom "github.com/hupe1980/mdlsel/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type selectFlags struct {
	store storeFlags

	config   string
	events   string
	clusters string
	report   string
	codec    string
	noTrace  bool
	metrics  string

	// Overrides, applied only when set on the command line.
	fuzzifier   float64
	threshold   float64
	iterations  int
	tenure      int
	metric      string
	parallel    bool
	workers     int
	precompute  bool
	concurrency int
	compression string
}

// report is the document printed by the select command.
type report struct {
	*mdlsel.Result
	Codec     string      `json:"codec"`
	Centroids [][]float32 `json:"centroids"`
}

func newSelectCmd(g *globalFlags) *cobra.Command {
	f := &selectFlags{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select the best subset of clusters",
		Long: `Build the quality matrix of the given events and cluster centroids, run
the tabu search and print the selected clusters.

Events and clusters are read from the blob store in CSV or, for names
ending in .bin, binary format. The search trace is written back to the
same store as <events>_tabu_search_results_table_<N>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelect(cmd, g, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.StringVar(&f.events, "events", "", "events dataset name")
	fs.StringVar(&f.clusters, "clusters", "", "cluster centroids dataset name")
	fs.StringVar(&f.report, "report", "", "also store the report under this name")
	fs.StringVar(&f.codec, "codec", codec.Default.Name(), "report codec (json, go-json)")
	fs.BoolVar(&f.noTrace, "no-trace", false, "do not persist the search trace")
	fs.StringVar(&f.metrics, "metrics-out", "", "write Prometheus metrics to this textfile")

	fs.Float64Var(&f.fuzzifier, "fuzzifier", 0, "fuzzy c-means exponent m")
	fs.Float64Var(&f.threshold, "threshold", 0, "membership threshold")
	fs.IntVar(&f.iterations, "iterations", 0, "tabu search iterations")
	fs.IntVar(&f.tenure, "tenure", 0, "tabu tenure")
	fs.StringVar(&f.metric, "metric", "", "distance metric (euclidean, squared-l2, manhattan)")
	fs.BoolVar(&f.parallel, "parallel", false, "use the parallel quality matrix builder")
	fs.IntVar(&f.workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	fs.BoolVar(&f.precompute, "precompute", false, "precompute the distance table")
	fs.IntVar(&f.concurrency, "search-concurrency", 0, "goroutines scoring candidate flips")
	fs.StringVar(&f.compression, "compression", "", "trace compression (none, zstd, lz4)")

	f.store.register(cmd)

	_ = cmd.MarkFlagRequired("events")
	_ = cmd.MarkFlagRequired("clusters")

	return cmd
}

func (f *selectFlags) loadConfig(cmd *cobra.Command) (mdlsel.Config, error) {
	cfg := mdlsel.DefaultConfig()
	if f.config != "" {
		file, err := os.Open(f.config)
		if err != nil {
			return mdlsel.Config{}, err
		}
		defer func() { _ = file.Close() }()

		if cfg, err = mdlsel.LoadConfig(file); err != nil {
			return mdlsel.Config{}, fmt.Errorf("%s: %w", f.config, err)
		}
	}

	fs := cmd.Flags()
	if fs.Changed("fuzzifier") {
		cfg.Fuzzifier = f.fuzzifier
	}
	if fs.Changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if fs.Changed("iterations") {
		cfg.TabuIterations = f.iterations
	}
	if fs.Changed("tenure") {
		cfg.TabuTenure = f.tenure
	}
	if fs.Changed("metric") {
		cfg.Metric = f.metric
	}
	if fs.Changed("parallel") {
		cfg.Parallel = f.parallel
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("precompute") {
		cfg.Precompute = f.precompute
	}
	if fs.Changed("search-concurrency") {
		cfg.SearchConcurrency = f.concurrency
	}
	if fs.Changed("compression") {
		cfg.TraceCompression = f.compression
	}

	return cfg, cfg.Validate()
}

func runSelect(cmd *cobra.Command, g *globalFlags, f *selectFlags) error {
	ctx := cmd.Context()

	logger, err := g.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	enc, err := codec.Lookup(f.codec)
	if err != nil {
		return err
	}

	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := f.store.open(ctx)
	if err != nil {
		return err
	}

	events, err := dataset.Load(ctx, store, f.events)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	clusters, err := dataset.Load(ctx, store, f.clusters)
	if err != nil {
		return fmt.Errorf("load clusters: %w", err)
	}

	opts := []mdlsel.Option{
		mdlsel.WithLogger(logger),
		mdlsel.WithTraceName(f.events),
	}
	if !f.noTrace {
		opts = append(opts, mdlsel.WithTraceStore(store))
	}

	var reg *prometheus.Registry
	if f.metrics != "" {
		reg = prometheus.NewRegistry()
		mc, err := mdlprom.NewCollector(reg, "mdlsel")
		if err != nil {
			return err
		}
		opts = append(opts, mdlsel.WithMetricsCollector(mc))
	}

	sel, err := mdlsel.New(cfg, opts...)
	if err != nil {
		return err
	}

	res, err := sel.Select(ctx, events, clusters)
	if err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(f.metrics, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	centroids := res.Centroids(clusters)
	rep := report{
		Result:    res,
		Codec:     enc.Name(),
		Centroids: make([][]float32, centroids.Rows()),
	}
	for i := range rep.Centroids {
		rep.Centroids[i] = centroids.Row(i)
	}

	out, err := enc.Encode(rep)
	if err != nil {
		return err
	}

	if f.report != "" {
		if err := store.Put(ctx, f.report, out); err != nil {
			return fmt.Errorf("store report: %w", err)
		}
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
