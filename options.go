package heatsel

import "github.com/vizlab/heatsel/model"

// trimStep records one edge trim in the order it was requested.
type trimStep struct {
	edge  Edge
	count int
}

// selectOptions holds configuration for selection resolution.
type selectOptions struct {
	// Annotation markers on non-empty results
	includeAnnotations bool

	// Label query behavior
	propagateAll bool
	patterns     bool
	panel        string

	// Post-resolution trimming, applied in request order
	trims         []trimStep
	trimEmptyAxes []model.Axis
}

// defaultOptions returns the default selection options.
func defaultOptions() selectOptions {
	return selectOptions{
		includeAnnotations: false,
		propagateAll:       false,
		patterns:           false,
		panel:              "",
	}
}

// clone creates a deep copy of selectOptions.
func (o selectOptions) clone() selectOptions {
	newOpts := selectOptions{
		includeAnnotations: o.includeAnnotations,
		propagateAll:       o.propagateAll,
		patterns:           o.patterns,
		panel:              o.panel,
	}

	if o.trims != nil {
		newOpts.trims = make([]trimStep, len(o.trims))
		copy(newOpts.trims, o.trims)
	}
	if o.trimEmptyAxes != nil {
		newOpts.trimEmptyAxes = make([]model.Axis, len(o.trimEmptyAxes))
		copy(newOpts.trimEmptyAxes, o.trimEmptyAxes)
	}

	return newOpts
}
