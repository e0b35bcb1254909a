package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"landmass/internal/export"
	"landmass/internal/render"
	"landmass/internal/world"
)

func main() {
	opts := world.DefaultOptions()
	opts.Bind(flag.CommandLine)
	geoDir := flag.String("geojson", "", "directory for features/rivers/cells GeoJSON files")
	geo := flag.Bool("geo", false, "project GeoJSON coordinates to longitude/latitude")
	pngPath := flag.String("png", "", "write a PNG preview to this path")
	layer := flag.String("layer", "height", "layer drawn in the PNG preview")
	scale := flag.Float64("scale", 1, "PNG preview scale")
	jsonPath := flag.String("json", "", "write a JSON summary to this path, - for stdout")
	describe := flag.Bool("describe", false, "print the resolved options before generating")
	verbose := flag.Bool("v", false, "log generation stages to stderr")
	flag.Parse()

	if *verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if *describe {
		for _, group := range opts.Snapshot().Groups {
			fmt.Println(group.Name)
			for _, p := range group.Params {
				fmt.Printf("  %-18s %s\n", p.Label, p.Value)
			}
		}
	}

	m, err := world.Generate(opts)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	printStats(m)

	if *geoDir != "" {
		proj := export.Pixels
		if *geo {
			proj = export.Geographic(m)
		}
		if err := os.MkdirAll(*geoDir, 0o755); err != nil {
			log.Fatalf("geojson: %v", err)
		}
		for _, l := range []export.Layer{export.LayerFeatures, export.LayerRivers, export.LayerCells} {
			path := filepath.Join(*geoDir, string(l)+".geojson")
			if err := writeLayer(path, m, l, proj); err != nil {
				log.Fatalf("geojson %s: %v", l, err)
			}
		}
	}

	if *pngPath != "" {
		po := render.DefaultPreviewOptions()
		po.Layer = *layer
		po.Scale = *scale
		img, err := render.Preview(m, po)
		if err != nil {
			log.Fatalf("preview: %v", err)
		}
		if err := render.SavePNG(*pngPath, img); err != nil {
			log.Fatalf("preview: %v", err)
		}
	}

	if *jsonPath != "" {
		if err := writeSummary(*jsonPath, m); err != nil {
			log.Fatalf("summary: %v", err)
		}
	}
}

func writeLayer(path string, m *world.Map, layer export.Layer, proj export.Projection) error {
	fc, err := export.Collection(m, layer, proj)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteGeoJSON(f, fc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSummary(path string, m *world.Map) error {
	if path == "-" {
		return export.WriteSummary(os.Stdout, m)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteSummary(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStats(m *world.Map) {
	s := m.Stats()
	fmt.Printf("%s (%s), seed %s, %dx%d\n", m.Template.Name, m.Template.ID, m.Options.Seed, m.Options.Width, m.Options.Height)
	fmt.Printf("cells=%d land=%d (%.1f%%) height mean=%.1f sd=%.1f median(land)=%.0f max=%.0f\n",
		s.Cells, s.LandCells, s.LandShare*100, s.MeanHeight, s.HeightStdDev, s.MedianLand, s.MaxHeight)
	fmt.Printf("oceans=%d islands=%d lakes=%d\n", s.Oceans, s.Islands, s.Lakes)
	fmt.Printf("rivers=%d maxFlux=%.0f discharge=%.0f longest=%.1f precipitation=%.1f\n",
		s.Rivers, s.MaxFlux, s.TotalDischarge, s.LongestRiver, s.MeanPrecipitation)
}
