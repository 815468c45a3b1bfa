package thumb

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const halfBlock = "▀"

// Thumbnail is an image rendered as rows of half-block cells.
type Thumbnail struct {
	URL    string
	Rows   []string
	Width  int
	Height int
}

// View joins the rows for display.
func (t Thumbnail) View() string {
	return strings.Join(t.Rows, "\n")
}

// Empty reports whether nothing was rendered.
func (t Thumbnail) Empty() bool {
	return len(t.Rows) == 0
}

// Render converts img into half-block rows: the foreground paints the upper
// pixel and the background the lower one. An odd final row repeats the upper
// pixel.
func Render(url string, img image.Image) Thumbnail {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return Thumbnail{URL: url}
	}

	rows := make([]string, 0, (height+1)/2)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		var b strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := hexColor(img, x, y)
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = hexColor(img, x, y+1)
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
		rows = append(rows, b.String())
	}
	return Thumbnail{URL: url, Rows: rows, Width: width, Height: len(rows)}
}

func hexColor(img image.Image, x, y int) string {
	r, g, b, _ := img.At(x, y).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
