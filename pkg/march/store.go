package march

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/NVIDIA/arch-stack/pkg/feature"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed data/microarchitectures-v1.yaml
	datasetBytes []byte

	loadOnce    sync.Once
	cachedGraph *Graph
	loadErr     error
)

// Dataset is the decoded shape of a microarchitecture data file.
type Dataset struct {
	// Microarchitectures maps node names to their raw records. The map
	// key is authoritative for the record name.
	Microarchitectures map[string]Record `json:"microarchitectures" yaml:"microarchitectures"`

	// FeatureAliases maps synthetic feature names to their definitions.
	FeatureAliases map[string]feature.Alias `json:"feature_aliases,omitempty" yaml:"feature_aliases,omitempty"`

	// Conversions holds the platform normalization tables.
	Conversions feature.Conversions `json:"conversions,omitempty" yaml:"conversions,omitempty"`
}

// Records returns the dataset's records with names filled in from the map
// keys, in deterministic (sorted) order.
func (d *Dataset) Records() []Record {
	records := make([]Record, 0, len(d.Microarchitectures))
	for _, name := range sortedKeys(d.Microarchitectures) {
		rec := d.Microarchitectures[name]
		rec.Name = name
		records = append(records, rec)
	}
	return records
}

// ParseDataset decodes a YAML microarchitecture data file.
func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal microarchitecture dataset: %w", err)
	}
	if len(ds.Microarchitectures) == 0 {
		return nil, fmt.Errorf("dataset contains no microarchitectures")
	}
	return &ds, nil
}

// BuildFromDataset validates a decoded dataset and links it into a graph.
func BuildFromDataset(ds *Dataset) (*Graph, []Warning, error) {
	return Build(ds.Records(),
		WithAliases(ds.FeatureAliases),
		WithConversions(ds.Conversions),
	)
}

// Load returns the process-wide graph built from the embedded dataset.
// Because the data is embedded at build time, it is parsed and validated
// once and the immutable in-memory graph is reused for the lifetime of
// the process.
func Load() (*Graph, error) {
	loadOnce.Do(func() {
		ds, err := ParseDataset(datasetBytes)
		if err != nil {
			loadErr = err
			return
		}
		g, _, err := BuildFromDataset(ds)
		if err != nil {
			loadErr = fmt.Errorf("embedded dataset failed validation: %w", err)
			return
		}
		cachedGraph = g
	})
	return cachedGraph, loadErr
}

func sortedKeys(m map[string]Record) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
