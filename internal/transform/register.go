package transform

import "tabular/internal/pipeline"

// RegisterBuiltins installs the stock transformations into reg.
func RegisterBuiltins(reg *pipeline.Registry) {
	reg.Register(func() pipeline.Transformation { return Uppercase{} })
	reg.Register(func() pipeline.Transformation { return Rename{} })
	reg.Register(func() pipeline.Transformation { return Filter{} })
}
