// Package report lays a repainted image beside its source on a PDF page.
package report

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/ughe/tigerpaint/imagestore"
)

const (
	margin   = 20.0
	caption  = 36.0
	fontSize = 10.0
	// Images are scaled so their longer side fits in this many points
	maxSide = 2000.0
)

// Summary is printed under the images
type Summary struct {
	Source   string
	Order    string
	Palette  int
	Pixels   int
	Rebuilds int
	Elapsed  time.Duration
}

func (s Summary) lines() []string {
	return []string{
		fmt.Sprintf("%s  order=%s  pixels=%d  palette=%d", s.Source, s.Order, s.Pixels, s.Palette),
		fmt.Sprintf("rebuilds=%d  elapsed=%v", s.Rebuilds, s.Elapsed.Round(time.Millisecond)),
	}
}

func scale(b image.Rectangle) float64 {
	side := float64(max(b.Dx(), b.Dy()))
	if side <= maxSide {
		return 1
	}
	return maxSide / side
}

// Write renders the page to w. The result is on the left, the source on
// the right.
func Write(w io.Writer, src, dst image.Image, s Summary) error {
	sb, db := src.Bounds(), dst.Bounds()
	k := min(scale(sb), scale(db))
	sw, sh := float64(sb.Dx())*k, float64(sb.Dy())*k
	dw, dh := float64(db.Dx())*k, float64(db.Dy())*k

	pdf := gofpdf.New("L", "pt", "Letter", "")
	pdf.SetFont("Courier", "", fontSize)
	pdf.AddPageFormat("P", gofpdf.SizeType{
		Wd: dw + sw + 3*margin,
		Ht: max(dh, sh) + 2*margin + caption,
	})
	opt := gofpdf.ImageOptions{ImageType: "png", ReadDpi: false}
	for _, im := range []struct {
		name string
		img  image.Image
		x    float64
		w, h float64
	}{
		{"result", dst, margin, dw, dh},
		{"source", src, 2*margin + dw, sw, sh},
	} {
		buf, err := imagestore.EncodePNG(im.img)
		if err != nil {
			return err
		}
		pdf.RegisterImageOptionsReader(im.name, opt, bytes.NewReader(buf))
		pdf.ImageOptions(im.name, im.x, margin, im.w, im.h, false, opt, 0, "")
	}
	y := max(dh, sh) + 2*margin
	for _, line := range s.lines() {
		y += fontSize + 2
		pdf.Text(margin, y, line)
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
