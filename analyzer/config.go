package analyzer

import (
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"

	"github.com/carbocation/smartchip/dataset"
	"github.com/carbocation/smartchip/qc"
)

// Config carries every tunable of one analysis. It is passed by value; there
// are no package-level settings.
type Config struct {
	AssayColumn      string `yaml:"assay_column"`
	SampleColumn     string `yaml:"sample_column"`
	CtColumn         string `yaml:"ct_column"`
	EfficiencyColumn string `yaml:"efficiency_column"`

	// KeyColumns is the ordered tuple identifying a group. Empty means
	// assay then sample.
	KeyColumns []string `yaml:"key_columns"`

	// HasHeader is false for inputs without a header line, in which case all
	// column settings are zero-based column numbers. See HeaderlessColumns.
	HasHeader bool `yaml:"headers"`

	NonTemplateControl string `yaml:"non_template_control"`
	NegativeControl    string `yaml:"negative_control"` // "none" disables the check
	Standard           string `yaml:"standard"`

	EfficiencyMin float64 `yaml:"efficiency_min"`
	EfficiencyMax float64 `yaml:"efficiency_max"`
	RSquaredMin   float64 `yaml:"r_squared_min"`

	// A well with Ct at or below this counts as positive.
	PositiveCtMax float64 `yaml:"positive_ct_max"`
}

// DefaultConfig matches the SmartChip export layout.
func DefaultConfig() Config {
	return Config{
		AssayColumn:        "Assay",
		SampleColumn:       "Sample",
		CtColumn:           "Ct",
		EfficiencyColumn:   "Efficiency",
		HasHeader:          true,
		NonTemplateControl: "NTC",
		NegativeControl:    "NEG",
		Standard:           "STD",
		EfficiencyMin:      1.70,
		EfficiencyMax:      2.20,
		RSquaredMin:        0.85,
		PositiveCtMax:      33,
	}
}

// LoadConfig reads a YAML file over the defaults; keys that are absent keep
// their default value.
func LoadConfig(path string) (Config, error) {
	out := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return out, pfx.Err(err)
	}

	if err := yaml.Unmarshal(b, &out); err != nil {
		return out, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return out, nil
}

// Validate rejects settings that cannot produce a meaningful analysis.
func (c Config) Validate() error {
	for _, v := range [][2]string{
		{"assay column", c.AssayColumn},
		{"sample column", c.SampleColumn},
		{"Ct column", c.CtColumn},
		{"standard marker", c.Standard},
		{"non-template marker", c.NonTemplateControl},
		{"negative marker", c.NegativeControl},
	} {
		if v[1] == "" {
			return fmt.Errorf("The %s must not be empty", v[0])
		}
	}

	if c.EfficiencyMin > c.EfficiencyMax {
		return fmt.Errorf("Minimum efficiency %v is greater than maximum efficiency %v", c.EfficiencyMin, c.EfficiencyMax)
	}

	return nil
}

// Columns is the input layout for the dataset indexer.
func (c Config) Columns() dataset.Columns {
	return dataset.Columns{
		Assay:      c.AssayColumn,
		Sample:     c.SampleColumn,
		Ct:         c.CtColumn,
		Efficiency: c.EfficiencyColumn,
		Keys:       c.KeyColumns,
	}
}

// ReplacementColumns is the layout of a replacement standards table. Only
// the standards' Ct values are read from it, so no efficiency column is
// needed.
func (c Config) ReplacementColumns() dataset.Columns {
	cols := c.Columns()
	cols.Efficiency = ""
	return cols
}

// HeaderlessColumns maps any column still set to its default name onto the
// default export position when the input has no header. Names cannot be
// resolved without a header, so this only changes settings that would
// otherwise fail.
func (c Config) HeaderlessColumns() Config {
	if c.HasHeader {
		return c
	}

	defaults := DefaultConfig()
	for _, v := range []struct {
		column   *string
		name     string
		position string
	}{
		{&c.AssayColumn, defaults.AssayColumn, "0"},
		{&c.SampleColumn, defaults.SampleColumn, "1"},
		{&c.CtColumn, defaults.CtColumn, "2"},
		{&c.EfficiencyColumn, defaults.EfficiencyColumn, "3"},
	} {
		if *v.column == v.name {
			*v.column = v.position
		}
	}

	return c
}

// Markers are the control and standard identifiers.
func (c Config) Markers() qc.Markers {
	return qc.Markers{
		NonTemplate: c.NonTemplateControl,
		Negative:    c.NegativeControl,
		Standard:    c.Standard,
	}
}

// Thresholds are the standard curve acceptance bounds.
func (c Config) Thresholds() qc.Thresholds {
	return qc.Thresholds{
		EfficiencyMin: c.EfficiencyMin,
		EfficiencyMax: c.EfficiencyMax,
		RSquaredMin:   c.RSquaredMin,
	}
}
