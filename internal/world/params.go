package world

import (
	"math"
	"strconv"

	"landmass/internal/core"
	"landmass/internal/heightmap"
)

// Snapshot lists the options in display groups.
func (o Options) Snapshot() core.ParameterSnapshot {
	template := o.Template
	if o.Recipe != "" {
		template = "custom"
	}
	groups := []core.ParameterGroup{
		{
			Name: "Canvas",
			Params: []core.Parameter{
				stringParam("seed", "Seed", o.Seed),
				intParam("w", "Width", o.Width),
				intParam("h", "Height", o.Height),
				intParam("points", "Points", o.Points),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				stringParam("template", "Template", template),
				intParam("lake_limit", "Lake elevation limit", o.LakeLimit),
				intParam("depression_steps", "Depression steps", o.DepressionSteps),
				boolParam("erosion", "Erosion", o.Erosion),
			},
		},
		{
			Name: "Climate",
			Params: []core.Parameter{
				boolParam("randomize", "Randomize", o.Randomize),
				floatParam("temp_equator", "Equator temperature", o.Climate.TempEquator),
				floatParam("temp_north_pole", "North pole temperature", o.Climate.TempNorthPole),
				floatParam("temp_south_pole", "South pole temperature", o.Climate.TempSouthPole),
				floatParam("precipitation", "Precipitation", o.Climate.Precipitation),
				floatParam("height_exponent", "Height exponent", o.Climate.HeightExponent),
				stringParam("winds", "Winds", formatWinds(o.Climate.Winds)),
			},
		},
	}
	if o.Recipe != "" {
		groups[1].Summary = o.Recipe
	}
	return core.ParameterSnapshot{Groups: groups}
}

var controls = []core.ParameterControl{
	{Key: "points", Label: "Points", Type: core.ParamTypeInt, Step: 1, Min: 1000, Max: 100000, HasMin: true, HasMax: true},
	{Key: "lake_limit", Label: "Lake limit", Type: core.ParamTypeInt, Step: 5, Min: 0, Max: 80, HasMin: true, HasMax: true},
	{Key: "depression_steps", Label: "Depression steps", Type: core.ParamTypeInt, Step: 50, Min: 0, Max: 1000, HasMin: true, HasMax: true},
	{Key: "temp_equator", Label: "Equator temp", Type: core.ParamTypeFloat, Step: 1, Min: -50, Max: 50, HasMin: true, HasMax: true},
	{Key: "temp_north_pole", Label: "North pole temp", Type: core.ParamTypeFloat, Step: 1, Min: -50, Max: 50, HasMin: true, HasMax: true},
	{Key: "temp_south_pole", Label: "South pole temp", Type: core.ParamTypeFloat, Step: 1, Min: -50, Max: 50, HasMin: true, HasMax: true},
	{Key: "precipitation", Label: "Precipitation", Type: core.ParamTypeFloat, Step: 10, Min: 0, Max: 500, HasMin: true, HasMax: true},
	{Key: "height_exponent", Label: "Height exponent", Type: core.ParamTypeFloat, Step: 0.1, Min: 1.5, Max: 2.2, HasMin: true, HasMax: true},
}

// ParameterControls lists the options the viewer can step.
func (o *Options) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), controls...)
}

func lookupControl(key string) (core.ParameterControl, bool) {
	for _, c := range controls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter clamps value to the control bounds and stores it. Point
// counts move between the supported tiers: a step up or down from the
// current count lands on the neighbouring tier.
func (o *Options) SetIntParameter(key string, value int) bool {
	ctrl, ok := lookupControl(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	switch key {
	case "points":
		o.Points = stepTier(o.Points, value)
	case "lake_limit":
		o.LakeLimit = value
	case "depression_steps":
		o.DepressionSteps = value
	default:
		return false
	}
	return true
}

// SetFloatParameter clamps value to the control bounds and stores it.
func (o *Options) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := lookupControl(key)
	if !ok || ctrl.Type != core.ParamTypeFloat || math.IsNaN(value) {
		return false
	}
	value = ctrl.Clamp(value)
	switch key {
	case "temp_equator":
		o.Climate.TempEquator = value
	case "temp_north_pole":
		o.Climate.TempNorthPole = value
	case "temp_south_pole":
		o.Climate.TempSouthPole = value
	case "precipitation":
		o.Climate.Precipitation = value
	case "height_exponent":
		o.Climate.HeightExponent = value
	default:
		return false
	}
	return true
}

// stepTier moves from the current point count toward target and returns the
// nearest supported tier in that direction.
func stepTier(current, target int) int {
	tiers := heightmap.Tiers()
	switch {
	case target > current:
		for _, t := range tiers {
			if t > current {
				return t
			}
		}
		return tiers[len(tiers)-1]
	case target < current:
		for i := len(tiers) - 1; i >= 0; i-- {
			if tiers[i] < current {
				return tiers[i]
			}
		}
		return tiers[0]
	}
	return current
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
