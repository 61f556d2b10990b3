// Package preview turns a selected image into something the terminal can show.
//
// A Ref is the preview reference for one selection: it holds a downscaled
// copy of the decoded image and renders it as half-block cells. Refs are
// released when a newer selection supersedes them, after which they render
// nothing.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxThumbEdge bounds the stored thumbnail so large photos are not kept at
// full resolution.
const maxThumbEdge = 160

// Ref is a revocable handle to a decoded thumbnail.
type Ref struct {
	mu       sync.RWMutex
	thumb    image.Image
	format   string
	width    int
	height   int
	err      error
	released bool
}

// New decodes data into a Ref. Decode failures are kept on the Ref rather
// than returned: a file can be a valid upload even when no preview can be
// drawn for it.
func New(data []byte) *Ref {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return &Ref{err: fmt.Errorf("decode preview: %w", err)}
	}
	b := img.Bounds()
	return &Ref{
		thumb:  scale(img, maxThumbEdge, maxThumbEdge),
		format: format,
		width:  b.Dx(),
		height: b.Dy(),
	}
}

// Err returns the decode error, if any.
func (r *Ref) Err() error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Format returns the decoder name ("png", "jpeg", ...).
func (r *Ref) Format() string {
	if r == nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.format
}

// Dimensions returns the original pixel size.
func (r *Ref) Dimensions() (int, int) {
	if r == nil {
		return 0, 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width, r.height
}

// Release drops the thumbnail. It is safe to call more than once.
func (r *Ref) Release() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.thumb = nil
	r.released = true
}

// Released reports whether Release has been called.
func (r *Ref) Released() bool {
	if r == nil {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.released
}

// Render draws the thumbnail into at most cols x rows terminal cells. Each
// cell shows two vertically stacked pixels using an upper half block. It
// returns "" when nothing can be drawn.
func (r *Ref) Render(cols, rows int) string {
	if r == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	r.mu.RLock()
	thumb := r.thumb
	r.mu.RUnlock()
	if thumb == nil {
		return ""
	}

	dst := scale(thumb, cols, rows*2)
	b := dst.Bounds()
	lines := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			top := dst.At(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = dst.At(x, y+1)
			}
			line.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom))).
				Render("▀"))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// scale fits src inside maxW x maxH, preserving aspect ratio. Images that
// already fit are still copied so callers never share pixel buffers.
func scale(src image.Image, maxW, maxH int) *image.RGBA {
	sb := src.Bounds()
	w, h := fit(sb.Dx(), sb.Dy(), maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	return dst
}

func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := float64(w) / float64(h)
	outW, outH := maxW, int(float64(maxW)/ratio)
	if outH > maxH {
		outH = maxH
		outW = int(float64(maxH) * ratio)
	}
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}

func hex(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
