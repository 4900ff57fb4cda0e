package mdlsel_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/mdlsel"
	"github.com/hupe1980/mdlsel/blobstore"
	"github.com/hupe1980/mdlsel/dataset"
)

func Example() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	events, _ := dataset.FromRows([][]float32{
		{0.1, 0.2}, {-0.3, 0.1}, {0.2, -0.2},
		{9.8, 10.1}, {10.3, 9.9}, {10.1, 10.2},
	})
	clusters, _ := dataset.FromRows([][]float32{{0, 0}, {10, 10}, {5, 5}})

	cfg := mdlsel.DefaultConfig()
	cfg.TabuIterations = 10

	sel, err := mdlsel.New(cfg,
		mdlsel.WithTraceStore(store),
		mdlsel.WithTraceName("events.csv"),
	)
	if err != nil {
		log.Fatal(err)
	}

	res, err := sel.Select(ctx, events, clusters)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Iterations, res.TraceName)
	// Output: 10 events.csv_tabu_search_results_table_3
}
