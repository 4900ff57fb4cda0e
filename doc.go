// Package mdlsel selects, from the output of a fuzzy c-means clustering, the
// subset of clusters that best balances fit against complexity.
//
// A selection runs in two phases. First an N×N quality matrix is derived from
// the fuzzy memberships of every event: diagonal entries reward a cluster's
// members and penalise its error and dimensionality, off-diagonal entries
// penalise pairs of clusters that share events. Then a tabu search walks the
// 2^N inclusion vectors one flip at a time, starting from all clusters
// included, and keeps the best-scoring vector it sees.
//
// # Quick Start
//
//	events, _ := dataset.Load(ctx, store, "events.csv")
//	clusters, _ := dataset.Load(ctx, store, "clusters.csv")
//
//	sel, err := mdlsel.New(mdlsel.DefaultConfig(),
//	    mdlsel.WithLogger(mdlsel.NewTextLogger(slog.LevelInfo)),
//	    mdlsel.WithTraceStore(store),
//	    mdlsel.WithTraceName("events.csv"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	res, err := sel.Select(ctx, events, clusters)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.SelectedIndices, res.Score)
//
// # Components
//
//   - distance: event/centroid distances, on demand or precomputed
//   - membership: the fuzzy c-means membership function
//   - quality: sequential and parallel quality matrix builders
//   - tabu: the scorer and the tabu optimizer
//   - trace: the per-iteration search log and its on-disk format
//   - dataset: CSV and binary event/centroid matrices
//   - blobstore: local, in-memory, S3 and MinIO storage for inputs and traces
//
// # Observability
//
// Selectors log through Logger (log/slog) and report to a MetricsCollector.
// BasicMetricsCollector keeps in-memory counters; the metrics/prometheus
// package exports the same events to Prometheus.
package mdlsel
