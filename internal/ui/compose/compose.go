// Package compose paints a surface.Document onto a fixed-size terminal
// canvas and maps screen coordinates back to nodes.
package compose

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/riordanpawley/popstack/internal/popup"
	"github.com/riordanpawley/popstack/internal/surface"
)

const resetStyle = "\x1b[0m"

// BackdropStyler resolves the style a backdrop paints content beneath it with
type BackdropStyler interface {
	Backdrop(classes []string) lipgloss.Style
}

// Rectangle is a screen region in cells
type Rectangle struct {
	X, Y, W, H int
}

// Contains reports whether the cell at x, y lies inside r
func (r Rectangle) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Rect lays out n on a width x height screen
func Rect(n *surface.Node, width, height int) Rectangle {
	if n.Placement == surface.PlaceFill {
		return Rectangle{W: width, H: height}
	}

	w, h := lipgloss.Width(n.Content), lipgloss.Height(n.Content)
	switch n.Placement {
	case surface.PlaceCenter:
		return Rectangle{X: max(0, (width-w)/2), Y: max(0, (height-h)/2), W: w, H: h}
	case surface.PlaceRight:
		return Rectangle{X: max(0, width-w), W: w, H: height}
	default:
		return Rectangle{X: n.X, Y: n.Y, W: w, H: h}
	}
}

// layers returns the visible, attached element nodes in paint order:
// ascending z-index, tree order within equal z-index.
func layers(doc *surface.Document) []*surface.Node {
	var out []*surface.Node
	doc.Walk(func(n *surface.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Kind() == surface.KindElement && n != doc.Body() {
			out = append(out, n)
		}
		return true
	})
	slices.SortStableFunc(out, func(a, b *surface.Node) int {
		return a.ZIndex - b.ZIndex
	})
	return out
}

func isBackdrop(n *surface.Node) bool {
	return n.Classes.Has(popup.ClassModal)
}

// Render paints doc onto a width x height canvas
func Render(doc *surface.Document, width, height int, styler BackdropStyler) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	canvas := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range canvas {
		canvas[i] = blank
	}

	for _, n := range layers(doc) {
		if isBackdrop(n) {
			dim(canvas, styler.Backdrop(n.Classes.Tokens()))
			continue
		}
		paint(canvas, n, width, height)
	}

	return strings.Join(canvas, "\n")
}

// dim re-renders everything painted so far through style
func dim(canvas []string, style lipgloss.Style) {
	for i, line := range canvas {
		canvas[i] = style.Render(ansi.Strip(line))
	}
}

func paint(canvas []string, n *surface.Node, width, height int) {
	r := Rect(n, width, height)
	for i, line := range strings.Split(n.Content, "\n") {
		row := r.Y + i
		if row < 0 || row >= height || i >= r.H {
			continue
		}
		canvas[row] = splice(canvas[row], line, r.X, width)
	}
}

// splice writes fg over bg starting at column x, keeping the line width
func splice(bg, fg string, x, width int) string {
	if x >= width || x < 0 {
		return bg
	}

	fgWidth := ansi.StringWidth(fg)
	if x+fgWidth > width {
		fg = ansi.Truncate(fg, width-x, "")
		fgWidth = ansi.StringWidth(fg)
	}

	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := ansi.TruncateLeft(bg, x+fgWidth, "")
	if w := ansi.StringWidth(left) + fgWidth + ansi.StringWidth(right); w < width {
		right += strings.Repeat(" ", width-w)
	}

	return left + resetStyle + fg + resetStyle + right
}

// HitTest returns the topmost visible node covering x, y
func HitTest(doc *surface.Document, x, y, width, height int) *surface.Node {
	ls := layers(doc)
	for i := len(ls) - 1; i >= 0; i-- {
		if Rect(ls[i], width, height).Contains(x, y) {
			return ls[i]
		}
	}
	return nil
}
