package trace

import (
	"fmt"
	"strings"
)

// Compression selects the framing of a persisted trace.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Extension returns the file suffix for c ("" for CompressionNone).
func (c Compression) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression returns the compression for its String form.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("trace: unknown compression %q", s)
	}
}

// CompressionOf infers the compression of a trace from its file name.
func CompressionOf(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// FileName returns the trace file name for an input identifier and cluster
// count, e.g. "events.csv_tabu_search_results_table_16".
func FileName(input string, clusters int, c Compression) string {
	return fmt.Sprintf("%s_tabu_search_results_table_%d%s", input, clusters, c.Extension())
}
