package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/mdlsel"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "mdlsel",
		Short:        "MDL cluster selection for fuzzy c-means results",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format (text, json)")

	cmd.AddCommand(
		newSelectCmd(g),
		newTraceCmd(),
		newConfigCmd(),
	)

	return cmd
}

func (g *globalFlags) logger(w io.Writer) (*mdlsel.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(g.logFormat) {
	case "text":
		return mdlsel.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return mdlsel.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", g.logFormat)
	}
}
