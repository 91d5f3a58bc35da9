// Command bnsaprint prints frames and palettes of a sprite archive on the
// terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-bnsa/bnsa"
	"badc0de.net/pkg/go-bnsa/compositor"
	"badc0de.net/pkg/go-bnsa/imageprint"
	"badc0de.net/pkg/go-bnsa/paths"
)

var (
	animID    = flag.Int("anim", 0, "animation to print")
	frameID   = flag.Int("frame", -1, "frame to print; -1 prints every frame of the animation")
	paletteID = flag.Int("palette", -1, "palette to print instead of an animation")
	info      = flag.Bool("info", false, "whether to print a summary of the archive before any image")
	mode      = flag.String("mode", "24bit", "how to print: 24bit, 256, none, iterm or rasterm")
	blanks    = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize  = flag.Bool("downsize", true, "whether to shrink images that do not fit the terminal")
	scale     = flag.Int("scale", 1, "integer factor to enlarge images by before printing")

	bnsaPath string
)

func setupFilePathFlags() {
	paths.SetupFilePathFlag("default.bnsa", "bnsa", &bnsaPath)
}

func printInfo(a *bnsa.Archive) {
	fmt.Printf("animations:  %d (largest tileset hint %d)\n", len(a.Animations), a.LargestTilesetHint)
	fmt.Printf("tilesets:    %d at 0x%06X\n", len(a.Tilesets), a.TilesetStart)
	fmt.Printf("palettes:    %d at 0x%06X\n", len(a.Palettes), a.PaletteStart)
	fmt.Printf("mini-anims:  %d at 0x%06X\n", len(a.MiniAnimGroups), a.MiniAnimStart)
	fmt.Printf("oam groups:  %d at 0x%06X\n", len(a.OAMGroups), a.OAMStart)
	fmt.Printf("length:      0x%06X (fully read: %v)\n", a.Length, a.Consistent)
	for _, an := range a.Animations {
		fmt.Printf("  anim %3d at 0x%06X: %d frames, bounds %v\n", an.Index, an.Offset, len(an.Frames), an.Bounds)
	}
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	m, err := imageprint.ParseMode(*mode)
	if err != nil {
		glog.Exitf("bad -mode: %v", err)
	}
	if bnsaPath == "" {
		glog.Exitf("no archive given; pass -bnsa or put default.bnsa into $%s", paths.DataEnv)
	}

	a, err := bnsa.DecodeFile(bnsaPath)
	if err != nil {
		glog.Exitf("%v", err)
	}
	if !a.Valid() {
		glog.Exitf("%s is not a sprite archive: %s", bnsaPath, a.Rejection)
	}

	if *info {
		printInfo(a)
	}

	if *paletteID >= 0 {
		p := a.Palette(*paletteID)
		if p == nil {
			glog.Exitf("no palette %d; archive has %d", *paletteID, len(a.Palettes))
		}
		out(compositor.PaletteSwatch(p, 1), m, fmt.Sprintf("palette_%03d.png", *paletteID))
		return
	}

	if *animID < 0 || *animID >= len(a.Animations) {
		glog.Exitf("no animation %d; archive has %d", *animID, len(a.Animations))
	}
	frames := []int{*frameID}
	if *frameID < 0 {
		frames = frames[:0]
		for i := range a.Animations[*animID].Frames {
			frames = append(frames, i)
		}
	}

	failed := false
	for _, fr := range frames {
		img, err := compositor.Frame(a, *animID, fr)
		if err != nil {
			glog.Errorf("animation %d frame %d: %v", *animID, fr, err)
			failed = true
			continue
		}
		if len(frames) > 1 {
			f := a.Animations[*animID].Frames[fr]
			fmt.Printf("frame %d: delay %d, tileset %d, palette %d\n", fr, f.Delay, f.Tileset, f.Palette)
		}
		out(img, m, fmt.Sprintf("anim_%03d_frame_%03d.png", *animID, fr))
	}
	if failed {
		os.Exit(1)
	}
}
