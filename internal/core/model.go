package core

import "landmass/internal/mesh"

// LandHeight is the lowest height treated as land.
const LandHeight = 20

// LakeHeight is the height given to cells of a lake created in a depression.
const LakeHeight = 19

// Coastal distance codes stored in the T layer of the grid and the pack.
const (
	DeeperLand int8 = 3
	Landlocked int8 = 2
	LandCoast  int8 = 1
	Unmarked   int8 = 0
	WaterCoast int8 = -1
	DeepWater  int8 = -2
)

// FeatureType classifies a connected region of cells.
type FeatureType uint8

const (
	FeatureNone FeatureType = iota
	FeatureOcean
	FeatureLake
	FeatureIsland
)

func (t FeatureType) String() string {
	switch t {
	case FeatureOcean:
		return "ocean"
	case FeatureLake:
		return "lake"
	case FeatureIsland:
		return "island"
	default:
		return "none"
	}
}

// Feature is a connected region of same-class cells. Index 0 of a feature
// list is always nil so ids start at 1.
type Feature struct {
	ID        int
	Type      FeatureType
	Land      bool
	Border    bool
	Cells     int
	FirstCell int

	// Pack-only geometry.
	Vertices []int
	Area     float64

	// Lake attributes.
	Height       float64
	Shoreline    []int
	Closed       bool
	OutCell      int
	Outlet       int
	Inlets       []int
	River        int
	EnteringFlux float64
	Flux         float64
	Temp         float64
	Evaporation  float64
}

// IsLake reports whether f is a lake.
func (f *Feature) IsLake() bool { return f != nil && f.Type == FeatureLake }

// Grid is the coarse simulation graph built from the jittered lattice.
type Grid struct {
	Width, Height int
	Spacing       float64
	CellsDesired  int
	CellsX        int
	CellsY        int
	Points        []mesh.Point
	Boundary      []mesh.Point

	Cells    mesh.Cells
	Vertices mesh.Vertices

	H    []uint8
	F    []int
	T    []int8
	Temp []int8
	Prec []uint8

	Features []*Feature
}

// CellCount returns the number of grid cells.
func (g *Grid) CellCount() int { return len(g.Points) }

// IsLand reports whether cell i is land.
func (g *Grid) IsLand(i int) bool { return g.H[i] >= LandHeight }

// Pack is the coastally refined copy of the grid used for hydrology.
type Pack struct {
	Points []mesh.Point

	Cells    mesh.Cells
	Vertices mesh.Vertices

	G      []int
	H      []uint8
	Area   []uint16
	F      []int
	T      []int8
	Haven  []int
	Harbor []uint8

	Fl   []uint16
	R    []int
	Conf []uint16

	Features []*Feature
	Rivers   []*River
}

// CellCount returns the number of pack cells.
func (p *Pack) CellCount() int { return len(p.Points) }

// IsLand reports whether cell i is land.
func (p *Pack) IsLand(i int) bool { return p.H[i] >= LandHeight }

// RiverPoint is one vertex of a meandered river line.
type RiverPoint struct {
	X, Y float64
	Flux float64
}

// River is a drainage path of pack cells from source to mouth.
type River struct {
	ID          int
	Parent      int
	Source      int
	Mouth       int
	Cells       []int
	Discharge   float64
	Length      float64
	Width       float64
	WidthFactor float64
	SourceWidth float64
	Points      []RiverPoint
}

// Coordinates is the geographic extent of the map in degrees.
type Coordinates struct {
	LatT, LatN, LatS float64
	LonT, LonW, LonE float64
}
