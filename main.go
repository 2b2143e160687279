package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cluehunt/clue"
	"github.com/milk9111/cluehunt/prefabs"
	"github.com/quasilyte/gdata/v2"
	"golang.design/x/clipboard"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	prefabDir := flag.String("prefabs", "prefabs", "directory checked for prefab overrides before the embedded copies")
	noSave := flag.Bool("nosave", false, "keep clue progress in memory only")
	watch := flag.Bool("watch", true, "hot reload prefabs and scripts from -prefabs")
	flag.Parse()

	prefabs.SetDiskDir(*prefabDir)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("cluehunt")

	var manager *gdata.Manager
	if !*noSave {
		m, err := gdata.Open(gdata.Config{AppName: "cluehunt"})
		if err != nil {
			log.Printf("gdata: open failed, progress will not be saved: %v", err)
		} else {
			manager = m
		}
	}

	var copyText func(string) error
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: unavailable: %v", err)
	} else {
		copyText = func(text string) error {
			clipboard.Write(clipboard.FmtText, []byte(text))
			return nil
		}
	}

	game, err := NewGame(Options{
		Debug:     *debug,
		Watch:     *watch,
		Store:     clue.NewStore(manager),
		Clipboard: copyText,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
