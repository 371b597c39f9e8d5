// Package caption stamps a one-line label onto rendered PNG figures.
package caption

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	charWidth  = 7
	charHeight = 13
	margin     = 4
)

// Text builds the caption for one image: "seq protein clade [subclade] view".
func Text(seq, protein, clade, subclade, view string) string {
	parts := []string{seq, protein, clade}
	if subclade != "" {
		parts = append(parts, subclade)
	}
	parts = append(parts, view)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Stamp draws label on a white box in the top-left corner of img.
func Stamp(img draw.Image, label string) {
	x, y := margin, margin
	box := image.Rect(x-margin, y-margin, x+len(label)*charWidth+margin, y+charHeight+margin)
	draw.Draw(img, box.Intersect(img.Bounds()), image.NewUniform(color.White), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + charHeight - 2)},
	}
	d.DrawString(label)
}

// StampFile rewrites the PNG at path with label drawn on it.
func StampFile(path, label string) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	src, err := png.Decode(fh)
	fh.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	Stamp(rgba, label)

	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := png.Encode(out, rgba); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
