package main

import (
	"github.com/example/annotator/internal/gesture"
	"github.com/example/annotator/internal/hittest"
	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/shape"
)

// sessionOptions turns the configured tool styles and delays into
// gesture options.
func (r *root) sessionOptions() ([]gesture.Option, error) {
	opts := []gesture.Option{gesture.WithDelays(r.config.DeleteDelay(), r.config.TextDelay())}
	for _, kind := range shape.Kinds {
		st, err := r.config.ToolStyle(kind)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gesture.WithDefaults(kind, st))
	}
	return opts, nil
}

func (r *root) tester() hittest.Tester {
	return hittest.Tester{
		Measurer:     render.FontMeasurer{},
		Tolerance:    r.config.Hit.Tolerance,
		HandleRadius: r.config.Hit.HandleRadius,
	}
}
