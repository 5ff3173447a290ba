package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  50%. Colors go red below a
// third, yellow below two thirds, green above.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderFraction renders done/total next to a bar of the same ratio.
func RenderFraction(done, total, width int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	return fmt.Sprintf("%s %s", RenderProgress(pct, width), Dim(fmt.Sprintf("%d/%d", done, total)))
}

func clampPct(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 1:
		return 1
	default:
		return pct
	}
}
