package core

// Size describes raster dimensions in pixels.
type Size struct {
	W int
	H int
}

// LayerFunc maps a pack cell to a palette index for one map layer.
type LayerFunc func(p *Pack, g *Grid, cell int) uint8

var layers = map[string]LayerFunc{}
var layerOrder []string

// RegisterLayer adds a display layer under the provided name. Layers are
// listed in registration order.
func RegisterLayer(name string, f LayerFunc) {
	if name == "" || f == nil {
		return
	}
	if _, ok := layers[name]; !ok {
		layerOrder = append(layerOrder, name)
	}
	layers[name] = f
}

// Layers returns the registered layer names in registration order.
func Layers() []string {
	return append([]string(nil), layerOrder...)
}

// LookupLayer returns the layer registered under name.
func LookupLayer(name string) (LayerFunc, bool) {
	f, ok := layers[name]
	return f, ok
}
