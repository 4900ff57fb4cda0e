// Command mdlsel selects the clusters of a fuzzy c-means result that best
// describe its events.
//
// Examples:
//
//	mdlsel select --events events.csv --clusters clusters.csv
//	mdlsel select --config run.yaml --store s3 --bucket runs --prefix exp1/ \
//	    --events events.bin --clusters clusters.bin --compression zstd
//	mdlsel trace events.csv_tabu_search_results_table_16
//	mdlsel config > run.yaml
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
