package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zapponejosh/lunar-api/internal/calendar"
	"github.com/zapponejosh/lunar-api/internal/ganzhi"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel  = lipgloss.NewStyle().Foreground(colorGray)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleGod    = lipgloss.NewStyle().Foreground(colorGreen)
	stylePillar = lipgloss.NewStyle().Bold(true)

	styleColumn = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Align(lipgloss.Center)
)

// elementColors tints stems and branches by their element.
var elementColors = map[ganzhi.Element]lipgloss.Color{
	ganzhi.Wood:  lipgloss.Color("35"),
	ganzhi.Fire:  lipgloss.Color("167"),
	ganzhi.Earth: lipgloss.Color("180"),
	ganzhi.Metal: lipgloss.Color("255"),
	ganzhi.Water: lipgloss.Color("75"),
}

func pillarColumn(label string, p ganzhi.Pillar, god string) string {
	stem := stylePillar.Foreground(elementColors[p.Stem.Element()]).Render(p.Stem.String())
	branch := stylePillar.Foreground(elementColors[p.Branch.Element()]).Render(p.Branch.String())
	if god == "" {
		god = "　"
	}
	return styleColumn.Render(lipgloss.JoinVertical(lipgloss.Center,
		styleLabel.Render(label),
		styleGod.Render(god),
		stem,
		branch,
	))
}

// renderChart draws the four pillars right to left, hour first, as they
// are traditionally read, followed by the lunar date and solar terms.
func renderChart(w io.Writer, s calendar.Snapshot) error {
	var gods calendar.TenGods
	if s.TenGods != nil {
		gods = *s.TenGods
	}
	short := func(g ganzhi.TenGod) string {
		if s.TenGods == nil {
			return ""
		}
		return g.Short()
	}

	chart := lipgloss.JoinHorizontal(lipgloss.Top,
		pillarColumn("時", s.Pillars.Hour, short(gods.Hour)),
		pillarColumn("日", s.Pillars.Day, short(gods.Day)),
		pillarColumn("月", s.Pillars.Month, short(gods.Month)),
		pillarColumn("年", s.Pillars.Year, short(gods.Year)),
	)

	var b strings.Builder
	fmt.Fprintln(&b, styleTitle.Render(fmt.Sprintf("%s %s時", s.Date, s.Time)))
	fmt.Fprintln(&b, chart)
	fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("農曆"), s.LunarText)
	if s.Reference != "" {
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("日主"), s.Reference)
	}
	prev, next := s.SolarTerms.Previous, s.SolarTerms.Next
	fmt.Fprintf(&b, "%s %s %s\n", styleLabel.Render("前節氣"), prev.SolarTerm,
		styleDim.Render(fmt.Sprintf("%d 天前 (%.4f)", prev.DiffDistanceDay, prev.DiffDistanceDetail)))
	fmt.Fprintf(&b, "%s %s %s\n", styleLabel.Render("後節氣"), next.SolarTerm,
		styleDim.Render(fmt.Sprintf("%d 天後 (%.4f)", next.DiffDistanceDay, next.DiffDistanceDetail)))

	_, err := io.WriteString(w, b.String())
	return err
}
