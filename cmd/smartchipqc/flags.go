package main

import (
	"github.com/carbocation/smartchip/analyzer"
)

// configFlags are the analysis settings that can also be given on the
// command line.
type configFlags struct {
	Assay       string
	Sample      string
	Ct          string
	Efficiency  string
	Headers     bool
	Negative    string
	Standard    string
	NonTemplate string
	EffMin      float64
	EffMax      float64
	RSquared    float64
}

// apply overrides cfg with the flags named in set. Flags left at their
// default do not override a value from the config file. Without a header,
// columns still at their default name become their default position.
func (f configFlags) apply(cfg analyzer.Config, set map[string]bool) analyzer.Config {
	if set["assay"] {
		cfg.AssayColumn = f.Assay
	}
	if set["sample"] {
		cfg.SampleColumn = f.Sample
	}
	if set["ct"] {
		cfg.CtColumn = f.Ct
	}
	if set["efficiency"] {
		cfg.EfficiencyColumn = f.Efficiency
	}
	if set["headers"] {
		cfg.HasHeader = f.Headers
	}
	if set["negcontrol"] {
		cfg.NegativeControl = f.Negative
	}
	if set["standard"] {
		cfg.Standard = f.Standard
	}
	if set["nontemplate"] {
		cfg.NonTemplateControl = f.NonTemplate
	}
	if set["effmin"] {
		cfg.EfficiencyMin = f.EffMin
	}
	if set["effmax"] {
		cfg.EfficiencyMax = f.EffMax
	}
	if set["rsquare"] {
		cfg.RSquaredMin = f.RSquared
	}

	return cfg.HeaderlessColumns()
}
