package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hdparallax/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay stats")
	levelName := flag.String("level", "demo", "level name in levels/ (basename, .json optional) or a path to a level file")
	assetsDir := flag.String("assets", "", "directory mirroring the atlas layout; .meta files here override the bundled ones")
	packPath := flag.String("pack", "", "bbolt resource pack built by metapack")
	watch := flag.Bool("watch", false, "reload .meta files under -assets when they change")
	flag.Parse()

	common.SetDebug(*debug)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.HDWidth/2, common.HDHeight/2)
	ebiten.SetWindowTitle("hdparallax")

	game, err := NewGame(Options{
		Level:  *levelName,
		Assets: *assetsDir,
		Pack:   *packPath,
		Watch:  *watch,
		Debug:  *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
