package heightmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	pcore "landmass/pkg/core"
)

// ErrUnknownTemplate is returned by Lookup for names with no template.
var ErrUnknownTemplate = errors.New("heightmap: unknown template")

// Template is a named recipe with a selection weight for random picks.
type Template struct {
	ID     string
	Name   string
	Weight int
	Recipe string
}

// Templates are listed in selection order; Random depends on it.
var templates = []Template{
	{ID: "volcano", Name: "Volcano", Weight: 3, Recipe: `Hill 1 90-100 44-56 40-60
Multiply 0.8 50-100 0 0
Range 1.5 30-55 45-55 40-60
Smooth 3 0 0 0
Hill 1.5 35-45 25-30 20-75
Hill 1 35-55 75-80 25-75
Hill 0.5 20-25 10-15 20-25
Mask 3 0 0 0`},
	{ID: "highIsland", Name: "High Island", Weight: 19, Recipe: `Hill 1 90-100 65-75 47-53
Add 7 all 0 0
Hill 5-6 20-30 25-55 45-55
Range 1 40-50 45-55 45-55
Multiply 0.8 land 0 0
Mask 3 0 0 0
Smooth 2 0 0 0
Trough 2-3 20-30 20-30 20-30
Trough 2-3 20-30 60-80 70-80
Hill 1 10-15 60-60 50-50
Hill 1.5 13-16 15-20 20-75
Range 1.5 30-40 15-85 30-40
Range 1.5 30-40 15-85 60-70
Pit 3-5 10-30 15-85 20-80`},
	{ID: "lowIsland", Name: "Low Island", Weight: 9, Recipe: `Hill 1 90-99 60-80 45-55
Hill 1-2 20-30 10-30 10-90
Smooth 2 0 0 0
Hill 6-7 25-35 20-70 30-70
Range 1 40-50 45-55 45-55
Trough 2-3 20-30 15-85 20-30
Trough 2-3 20-30 15-85 70-80
Hill 1.5 10-15 5-15 20-80
Hill 1 10-15 85-95 70-80
Pit 5-7 15-25 15-85 20-80
Multiply 0.4 20-100 0 0
Mask 4 0 0 0`},
	{ID: "continents", Name: "Continents", Weight: 16, Recipe: `Hill 1 80-85 60-80 40-60
Hill 1 80-85 20-30 40-60
Hill 6-7 15-30 25-75 15-85
Multiply 0.6 land 0 0
Hill 8-10 5-10 15-85 20-80
Range 1-2 30-60 5-15 25-75
Range 1-2 30-60 80-95 25-75
Range 0-3 30-60 80-90 20-80
Strait 2 vertical 0 0
Strait 1 vertical 0 0
Smooth 3 0 0 0
Trough 3-4 15-20 15-85 20-80
Trough 3-4 5-10 45-55 45-55
Pit 3-4 10-20 15-85 20-80
Mask 4 0 0 0`},
	{ID: "archipelago", Name: "Archipelago", Weight: 18, Recipe: `Add 11 all 0 0
Range 2-3 40-60 20-80 20-80
Hill 5 15-20 10-90 30-70
Hill 2 10-15 10-30 20-80
Hill 2 10-15 60-90 20-80
Smooth 3 0 0 0
Trough 10 20-30 5-95 5-95
Strait 2 vertical 0 0
Strait 2 horizontal 0 0`},
	{ID: "atoll", Name: "Atoll", Weight: 1, Recipe: `Hill 1 75-80 50-60 45-55
Hill 1.5 30-50 25-75 30-70
Hill .5 30-50 25-35 30-70
Smooth 1 0 0 0
Multiply 0.2 25-100 0 0
Hill 0.5 10-20 50-55 48-52`},
	{ID: "mediterranean", Name: "Mediterranean", Weight: 5, Recipe: `Range 4-6 30-80 0-100 0-10
Range 4-6 30-80 0-100 90-100
Hill 6-8 30-50 10-90 0-5
Hill 6-8 30-50 10-90 95-100
Multiply 0.9 land 0 0
Mask -2 0 0 0
Smooth 1 0 0 0
Hill 2-3 30-70 0-5 20-80
Hill 2-3 30-70 95-100 20-80
Trough 3-6 40-50 0-100 0-10
Trough 3-6 40-50 0-100 90-100`},
	{ID: "peninsula", Name: "Peninsula", Weight: 3, Recipe: `Range 2-3 20-35 40-50 0-15
Add 5 all 0 0
Hill 1 90-100 10-90 0-5
Add 13 all 0 0
Hill 3-4 3-5 5-95 80-100
Hill 1-2 3-5 5-95 40-60
Trough 5-6 10-25 5-95 5-95
Smooth 3 0 0 0
Invert 0.4 both 0 0`},
	{ID: "pangea", Name: "Pangea", Weight: 5, Recipe: `Hill 1-2 25-40 15-50 0-10
Hill 1-2 5-40 50-85 0-10
Hill 1-2 25-40 50-85 90-100
Hill 1-2 5-40 15-50 90-100
Hill 8-12 20-40 20-80 48-52
Smooth 2 0 0 0
Multiply 0.7 land 0 0
Trough 3-4 25-35 5-95 10-20
Trough 3-4 25-35 5-95 80-90
Range 5-6 30-40 10-90 35-65`},
	{ID: "isthmus", Name: "Isthmus", Weight: 2, Recipe: `Hill 5-10 15-30 0-30 0-20
Hill 5-10 15-30 10-50 20-40
Hill 5-10 15-30 30-70 40-60
Hill 5-10 15-30 50-90 60-80
Hill 5-10 15-30 70-100 80-100
Smooth 2 0 0 0
Trough 4-8 15-30 0-30 0-20
Trough 4-8 15-30 10-50 20-40
Trough 4-8 15-30 30-70 40-60
Trough 4-8 15-30 50-90 60-80
Trough 4-8 15-30 70-100 80-100
Invert 0.25 x 0 0`},
	{ID: "shattered", Name: "Shattered", Weight: 7, Recipe: `Hill 8 35-40 15-85 30-70
Trough 10-20 40-50 5-95 5-95
Range 5-7 30-40 10-90 20-80
Pit 12-20 30-40 15-85 20-80`},
	{ID: "test", Name: "Test", Weight: 0, Recipe: `Hill 1 90-100 44-56 40-60`},
}

// Templates returns all known templates in selection order.
func Templates() []Template {
	return append([]Template(nil), templates...)
}

func normalize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// Lookup finds a template by id or display name, ignoring case, spaces,
// dashes and underscores. Unknown names produce an error wrapping
// ErrUnknownTemplate that suggests the closest known id.
func Lookup(name string) (Template, error) {
	key := normalize(name)
	for _, t := range templates {
		if normalize(t.ID) == key {
			return t, nil
		}
	}

	best, bestDist := "", -1
	for _, t := range templates {
		d := levenshtein.ComputeDistance(key, normalize(t.ID))
		if d > suggestLimit(len(t.ID)) {
			continue
		}
		if bestDist == -1 || d < bestDist {
			best, bestDist = t.ID, d
		}
	}
	if best != "" {
		return Template{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownTemplate, name, best)
	}
	return Template{}, fmt.Errorf("%w %q", ErrUnknownTemplate, name)
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Random picks a template by weight.
func Random(rng pcore.Source) Template {
	items := make([]pcore.Weighted[Template], 0, len(templates))
	for _, t := range templates {
		items = append(items, pcore.Weighted[Template]{Value: t, Weight: t.Weight})
	}
	return pcore.Rw(rng, items)
}
