package export

import (
	"fmt"
	"html"
	"math"
	"strings"
)

var strokeColors = []string{"#00ff88", "#ff5577", "#33aaff", "#ffcc00"}

// TrajectorySVG draws every run's path on shared axes with the ground line
// at y=0. Runs with fewer than two samples are skipped.
func TrajectorySVG(runs []Run, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := 0.0, math.Inf(-1)
	for _, r := range runs {
		if r.Trajectory == nil {
			continue
		}
		for _, p := range r.Trajectory.Positions {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		minX, maxX, maxY = 0, 1, 1
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	sx := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	sy := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-width="1"/>
`, width, height, width, height, sy(0), width, sy(0))

	for i, r := range runs {
		if r.Trajectory.Len() < 2 {
			continue
		}
		color := strokeColors[i%len(strokeColors)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		for j, p := range r.Trajectory.Positions {
			if j > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", sx(p.X), sy(p.Y))
		}
		sb.WriteString("\"/>\n")
		if r.Name != "" {
			fmt.Fprintf(&sb, `<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 20+16*i, color, html.EscapeString(r.Name))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
