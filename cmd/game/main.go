package main

import (
	"flag"
	"log"

	"github.com/cjqian/SnagTheFlag/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional YAML match config")
	flag.Parse()

	cfg := game.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = game.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	g, err := game.NewWithConfig(cfg, game.DefaultLevel())
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Snag The Flag")
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(2*w, 2*h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
