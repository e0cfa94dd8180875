package sim

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/sslteam/stp/stp"
	"github.com/sslteam/stp/world"
)

type Glyphs struct {
	Friendly string
	Enemy    string
	Ball     string
	Empty    string
}

var DefaultGlyphs = Glyphs{
	Friendly: "F",
	Enemy:    "E",
	Ball:     "o",
	Empty:    ".",
}

// cellSize is the edge length, in meters, of one rendered cell.
const cellSize = 0.5

func cell(f world.Field, x, y float64) (int, int) {
	cx := int(math.Floor((x + f.XLength()/2) / cellSize))
	cy := int(math.Floor((y + f.YLength()/2) / cellSize))
	return cx, cy
}

// Render draws w as a coarse grid, +y up and the enemy goal on the right,
// followed by the assignments made this tick.
func Render(g *Glyphs, out io.Writer, w *world.World, as []stp.Assignment) {
	if g == nil {
		g = &DefaultGlyphs
	}
	f := w.Field
	cols := int(math.Ceil(f.XLength() / cellSize))
	rows := int(math.Ceil(f.YLength() / cellSize))
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
	}
	put := func(x, y float64, s string) {
		cx, cy := cell(f, x, y)
		if cx < 0 || cx >= cols || cy < 0 || cy >= rows {
			return
		}
		grid[cy][cx] += s
	}
	for _, r := range w.Friendly.Robots {
		put(r.Position.X, r.Position.Y, fmt.Sprintf("%s%d", g.Friendly, r.ID))
	}
	for _, r := range w.Enemy.Robots {
		put(r.Position.X, r.Position.Y, fmt.Sprintf("%s%d", g.Enemy, r.ID))
	}
	put(w.Ball.Position.X, w.Ball.Position.Y, g.Ball)

	fmt.Fprintf(out, "[t=%s %s]\n", w.Timestamp, w.GameState)
	tw := tabwriter.NewWriter(out, 3, 8, 1, ' ', 0)
	for y := rows - 1; y >= 0; y-- {
		for x := 0; x < cols; x++ {
			s := grid[y][x]
			if s == "" {
				s = g.Empty
			}
			fmt.Fprintf(tw, "%s\t", s)
		}
		fmt.Fprintf(tw, "\n")
	}
	tw.Flush()

	var bits []string
	for _, a := range as {
		bits = append(bits, fmt.Sprintf("%d:%s", a.Robot, a.Tactic.Name()))
	}
	fmt.Fprintf(out, "tactics: %s\n", strings.Join(bits, " "))
}
