package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported encodings.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	}
	return true
}

// SupportedFormats returns the names of all supported output formats.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// FormatFromPath infers an output format from a file extension. Paths
// without a recognized extension default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatJSON
}

// Serializer writes structured data to an output destination.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by serializers holding a resource that must be
// released after the last Serialize call.
type Closer interface {
	Close() error
}

// Writer serializes values to an io.Writer in a chosen format.
type Writer struct {
	format Format
	out    io.Writer
	closer io.Closer
}

// NewWriter creates a writer for the given format and destination.
// Unknown formats fall back to JSON; a nil destination falls back to
// stdout.
func NewWriter(format Format, out io.Writer) *Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	if out == nil {
		out = os.Stdout
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a writer targeting stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a writer for the given path. An empty or
// "-" path targets stdout. The returned serializer implements Closer when
// it owns a file handle.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize implements Serializer.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return w.serializeTable(data)
	default:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

// Close releases the underlying file handle if the writer owns one.
// Calling Close more than once is safe.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// serializeTable renders the value as a two-column FIELD/VALUE table with
// nested structures flattened into dotted key paths.
func (w *Writer) serializeTable(data any) error {
	rows := make(map[string]string)
	var keys []string
	flatten("", reflect.ValueOf(data), rows, &keys)

	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	if len(keys) == 0 {
		fmt.Fprintln(tw, "<empty>\t")
	}
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, rows[k])
	}
	return tw.Flush()
}

func flatten(prefix string, v reflect.Value, rows map[string]string, keys *[]string) {
	if !v.IsValid() {
		record(prefix, "<nil>", rows, keys)
		return
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			record(prefix, "<nil>", rows, keys)
			return
		}
		flatten(prefix, v.Elem(), rows, keys)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			flatten(joinKey(prefix, t.Field(i).Name), v.Field(i), rows, keys)
		}
	case reflect.Map:
		mapKeys := make([]string, 0, v.Len())
		byName := make(map[string]reflect.Value, v.Len())
		for _, k := range v.MapKeys() {
			name := fmt.Sprintf("%v", k.Interface())
			mapKeys = append(mapKeys, name)
			byName[name] = v.MapIndex(k)
		}
		sort.Strings(mapKeys)
		for _, name := range mapKeys {
			flatten(joinKey(prefix, name), byName[name], rows, keys)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), rows, keys)
		}
	default:
		record(prefix, fmt.Sprintf("%v", v.Interface()), rows, keys)
	}
}

func record(key, value string, rows map[string]string, keys *[]string) {
	if key == "" {
		key = "value"
	}
	rows[key] = value
	*keys = append(*keys, key)
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
