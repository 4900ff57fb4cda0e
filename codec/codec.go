// Package codec renders selection reports.
//
// Every codec emits indented JSON terminated by a newline, so a report
// written with one codec decodes with any other. The CLI records the codec
// name in the report itself.
package codec

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"slices"

	gojson "github.com/goccy/go-json"
)

// ErrUnknown is returned by Lookup for an unregistered name.
var ErrUnknown = errors.New("codec: unknown codec")

// Codec turns a report into bytes and back.
type Codec interface {
	Name() string
	Encode(report any) ([]byte, error)
	Decode(data []byte, report any) error
}

const indent = "  "

// GoJSON uses github.com/goccy/go-json.
type GoJSON struct{}

func (GoJSON) Name() string { return "go-json" }

func (GoJSON) Encode(report any) ([]byte, error) {
	b, err := gojson.MarshalIndent(report, "", indent)
	if err != nil {
		return nil, fmt.Errorf("codec go-json: %w", err)
	}
	return append(b, '\n'), nil
}

func (GoJSON) Decode(data []byte, report any) error {
	return gojson.Unmarshal(data, report)
}

// JSON uses encoding/json.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(report any) ([]byte, error) {
	b, err := stdjson.MarshalIndent(report, "", indent)
	if err != nil {
		return nil, fmt.Errorf("codec json: %w", err)
	}
	return append(b, '\n'), nil
}

func (JSON) Decode(data []byte, report any) error {
	return stdjson.Unmarshal(data, report)
}

// Default is used when no codec is named.
var Default Codec = GoJSON{}

var registry = map[string]Codec{
	GoJSON{}.Name(): GoJSON{},
	JSON{}.Name():   JSON{},
}

// Lookup resolves a codec name.
func Lookup(name string) (Codec, error) {
	if c, ok := registry[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w %q, want one of %v", ErrUnknown, name, Names())
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
