package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/hupe1980/mdlsel/trace"
	"github.com/spf13/cobra"
)

var errEmptyTrace = errors.New("empty trace")

func newTraceCmd() *cobra.Command {
	var (
		store storeFlags
		best  bool
	)

	cmd := &cobra.Command{
		Use:   "trace NAME",
		Short: "Print a persisted search trace",
		Long: `Decode a persisted search trace and print it in plain form.
Compressed traces (.zst, .lz4) are detected by their suffix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := store.open(ctx)
			if err != nil {
				return err
			}

			b, err := s.Open(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = b.Close() }()

			rc, err := b.ReadRange(ctx, 0, b.Size())
			if err != nil {
				return err
			}
			defer func() { _ = rc.Close() }()

			records, err := trace.Read(rc, trace.CompressionOf(args[0]))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			if best {
				if len(records) == 0 {
					return fmt.Errorf("%s: %w", args[0], errEmptyTrace)
				}
				top := records[0]
				for _, r := range records[1:] {
					if r.Score > top.Score {
						top = r
					}
				}
				fmt.Fprintln(w, top.String())
				return w.Flush()
			}

			buf := make([]byte, 0, 64)
			for _, r := range records {
				buf = r.AppendText(buf[:0])
				if _, err := w.Write(buf); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&best, "best", false, "print only the highest-scoring record")
	store.register(cmd)

	return cmd
}
