package pitch

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"gopkg.in/yaml.v3"
)

//go:embed zones.yaml
var defaultZonesYAML []byte

var (
	defaultOnce       sync.Once
	defaultClassifier *Classifier
	defaultErr        error
)

type zoneFile struct {
	Zones []Zone `yaml:"zones" validate:"required,min=1,dive"`
}

// Classifier maps coordinates to zones by first match in declaration order.
type Classifier struct {
	zones []Zone
}

// NewClassifier validates zones and keeps them in the given order.
func NewClassifier(zones []Zone) (*Classifier, error) {
	file := zoneFile{Zones: zones}
	if err := validator.New().Struct(file); err != nil {
		return nil, dataset.NewConfigError("zones", "invalid zone table: %v", err)
	}

	names := make(map[string]struct{}, len(zones))
	for _, z := range zones {
		if z.Name == Outside {
			return nil, dataset.NewConfigError("zones", "zone name %q is reserved", Outside)
		}
		if _, dup := names[z.Name]; dup {
			return nil, dataset.NewConfigError("zones", "duplicate zone name %q", z.Name)
		}
		names[z.Name] = struct{}{}
	}

	return &Classifier{zones: append([]Zone(nil), zones...)}, nil
}

// LoadZones decodes a YAML zone table.
func LoadZones(r io.Reader) ([]Zone, error) {
	var file zoneFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, dataset.NewConfigError("zones", "decode zone table: %v", err)
	}
	return file.Zones, nil
}

// LoadClassifierFile builds a classifier from a YAML file on disk.
func LoadClassifierFile(path string) (*Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open zone table %s: %w", path, err)
	}
	defer f.Close()

	zones, err := LoadZones(f)
	if err != nil {
		return nil, err
	}
	return NewClassifier(zones)
}

// DefaultClassifier returns the classifier for the reference zone table.
func DefaultClassifier() (*Classifier, error) {
	defaultOnce.Do(func() {
		zones, err := LoadZones(bytes.NewReader(defaultZonesYAML))
		if err != nil {
			defaultErr = err
			return
		}
		defaultClassifier, defaultErr = NewClassifier(zones)
	})
	return defaultClassifier, defaultErr
}

// Classify returns the first zone containing (x, y) on the vertical pitch, or
// Outside. Callers filter out null and out-of-range coordinates beforehand.
func (c *Classifier) Classify(x, y float64) string {
	for _, z := range c.zones {
		if z.Contains(x, y) {
			return z.Name
		}
	}
	return Outside
}

// Locate classifies an event location. Events measure X along the length and
// Y across the width, so the axes swap into the vertical frame.
func (c *Classifier) Locate(p Point) string {
	return c.Classify(p.Y, p.X)
}

// Zones returns a copy of the table in declaration order.
func (c *Classifier) Zones() []Zone {
	return append([]Zone(nil), c.zones...)
}
