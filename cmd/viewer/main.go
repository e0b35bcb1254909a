//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"landmass/internal/app"
	"landmass/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	opts := world.DefaultOptions()
	opts.Bind(flag.CommandLine)
	flag.Parse()

	session, err := app.NewSession(opts, cfg.Layer)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	game := app.New(session, cfg)
	w, h := cfg.ViewSize(opts.Width, opts.Height)

	ebiten.SetWindowTitle("landmass - " + session.Map.Template.Name)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w+max(cfg.Panel, 0), h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
