package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
)

func main() {
	dir := flag.String("dir", "assets/textures", "Directory of images to pack")
	out := flag.String("out", ".", "Directory to write atlas.png and atlas.yaml to")
	maxSize := flag.Int("max", 2048, "Maximum atlas side in pixels")
	padding := flag.Int("padding", 0, "Transparent pixels between textures")
	watch := flag.Bool("watch", false, "Repack whenever an image in -dir changes")
	flag.Parse()

	opts := packOptions{Dir: *dir, Out: *out, MaxSize: *maxSize, Padding: *padding}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := pack(ctx, opts); err != nil {
		if !*watch {
			log.Fatal(err)
		}
		log.Printf("atlaspack: %v", err)
	}
	if !*watch {
		return
	}
	if err := watchAndPack(ctx, opts); err != nil {
		log.Fatal(err)
	}
}
