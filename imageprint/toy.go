// Package imageprint prints sprite frames on terminal. UNSUPPORTED debug
// package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/gookit/color"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Mode selects how pixels are put on the terminal.
type Mode int

const (
	Mode24bit Mode = iota
	Mode256Color
	ModeNoColor
	ModeITerm
	ModeRasTerm
)

var modeNames = map[string]Mode{
	"24bit":   Mode24bit,
	"256":     Mode256Color,
	"none":    ModeNoColor,
	"iterm":   ModeITerm,
	"rasterm": ModeRasTerm,
}

// ParseMode accepts the names used by command line flags: 24bit, 256, none,
// iterm and rasterm.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeNames[s]; ok {
		return m, nil
	}
	return 0, errors.Errorf("unknown print mode %q", s)
}

func shade(w io.Writer, col ic.Color, escapesTrueColor, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		fmt.Fprintf(w, "\x1b[0m  ")
		return
	}
	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)

	cell := "  "
	if !blanks {
		switch a := (uint32(r) + uint32(g) + uint32(b)) / 3; {
		case a < 32:
			cell = ".."
		case a < 64:
			cell = "--"
		case a < 128:
			cell = "=="
		default:
			cell = "##"
		}
	}

	switch {
	case noColor:
		fmt.Fprint(w, cell)
	case escapesTrueColor:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, cell)
	default:
		fmt.Fprint(w, color.RGB(r, g, b, true).Sprint(cell))
	}
}

func printCells(w io.Writer, i image.Image, trueColor, blanks, noColor bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			shade(w, i.At(x, y), trueColor, blanks, noColor)
		}
		if !noColor {
			fmt.Fprintf(w, "\x1b[0m")
		}
		fmt.Fprintf(w, "\n")
	}
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(w io.Writer, i image.Image, blanks bool) {
	printCells(w, i, false, blanks, false)
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(w io.Writer, i image.Image, blanks bool) {
	printCells(w, i, true, blanks, false)
}

// PrintNoColor draws an image without using color escape sequences. Only
// makes sense with blanks=false.
func PrintNoColor(w io.Writer, i image.Image, blanks bool) {
	printCells(w, i, true, blanks, true)
}

// PrintITerm draws an image using iTerm2's escape sequences. Nothing is
// printed when the terminal does not look like iTerm2 or WezTerm.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(w io.Writer, i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	png.Encode(bEnc, i)
	bEnc.Close()
	fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
}

// Print draws the image in the given mode. fn names the image for terminals
// that display file names.
func Print(w io.Writer, i image.Image, mode Mode, blanks bool, fn string) {
	switch mode {
	case Mode256Color:
		Print256Color(w, i, blanks)
	case ModeNoColor:
		PrintNoColor(w, i, blanks)
	case ModeITerm:
		PrintITerm(w, i, fn)
	case ModeRasTerm:
		PrintRasTerm(w, i)
	default:
		Print24bit(w, i, blanks)
	}
}

// Scale enlarges pixel art by an integer factor without smoothing.
func Scale(i image.Image, factor int) image.Image {
	if factor <= 1 {
		return i
	}
	return resize.Resize(uint(i.Bounds().Dx()*factor), uint(i.Bounds().Dy()*factor), i, resize.NearestNeighbor)
}

// Fit shrinks an image to at most cols x rows terminal cells. Each pixel
// takes two columns in the cell based modes.
func Fit(i image.Image, cols, rows int) image.Image {
	maxW, maxH := cols/2, rows
	if maxW <= 0 || maxH <= 0 || (i.Bounds().Dx() <= maxW && i.Bounds().Dy() <= maxH) {
		return i
	}
	return resize.Thumbnail(uint(maxW), uint(maxH), i, resize.NearestNeighbor)
}
