package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/pokedex/internal/pokeapi"
)

// viewDetail renders the single-entry detail screen.
func (a App) viewDetail() string {
	p, ok := a.selected()
	if !ok {
		return HelpStyle.Render("Nothing selected.")
	}

	var b strings.Builder

	title := fmt.Sprintf("#%04d %s", p.ID, p.Name)
	if a.store.IsFavorite(p.ID) {
		title += " " + FavoriteMark.Render("♥")
	}
	b.WriteString(DetailTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(" " + typeSummary(p))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf(" %s %.1f m    %s %.1f kg\n",
		DetailLabel.Render("height"), float64(p.Height)/10,
		DetailLabel.Render("weight"), float64(p.Weight)/10))
	b.WriteString("\n")

	if len(p.Stats) > 0 {
		b.WriteString(DetailLabel.Render(" stats") + "\n")
		for _, st := range p.Stats {
			b.WriteString(fmt.Sprintf("   %-16s %3d %s\n",
				st.Stat.Name, st.BaseStat, statBar(st.BaseStat)))
		}
		b.WriteString("\n")
	}

	if len(p.Abilities) > 0 {
		b.WriteString(DetailLabel.Render(" abilities") + "  ")
		names := make([]string, 0, len(p.Abilities))
		for _, ab := range p.Abilities {
			name := ab.Ability.Name
			if ab.IsHidden {
				name += " (hidden)"
			}
			names = append(names, name)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n\n")
	}

	if chain, ok := a.store.Chain(p.ID); ok {
		b.WriteString(DetailLabel.Render(" evolution") + "\n")
		b.WriteString(renderChain(chain.Chain, 1))
	} else {
		b.WriteString(HelpStyle.Render("No evolution data."))
	}

	b.WriteString("\n")
	b.WriteString(StatusBar.Render(
		StatusBarKey.Render("esc") + StatusBarText.Render(" back  ") +
			StatusBarKey.Render("f") + StatusBarText.Render(" fav  ") +
			StatusBarKey.Render("c") + StatusBarText.Render(" cry")))

	return b.String()
}

// statBar renders a proportional bar for a base stat (255 max).
func statBar(value int) string {
	width := value * 20 / 255
	if width < 1 {
		width = 1
	}
	return strings.Repeat("▇", width)
}

// renderChain renders an evolution tree, one node per line, children
// indented under their parent with the transition condition on the edge.
func renderChain(link pokeapi.ChainLink, depth int) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(link.Species.Name)
	if cond := transitionLabel(link.EvolutionDetails); cond != "" {
		b.WriteString(" " + ChainArrow.Render("("+cond+")"))
	}
	b.WriteString("\n")

	for _, child := range link.EvolvesTo {
		b.WriteString(ChainArrow.Render(strings.Repeat("  ", depth) + " └▸"))
		b.WriteString("\n")
		b.WriteString(renderChain(child, depth+1))
	}

	return b.String()
}

// transitionLabel summarizes how an evolution is triggered.
func transitionLabel(details []pokeapi.EvolutionDetails) string {
	if len(details) == 0 {
		return ""
	}

	d := details[0]
	parts := []string{}
	if d.Trigger.Name != "" {
		parts = append(parts, d.Trigger.Name)
	}
	if d.MinLevel != nil {
		parts = append(parts, fmt.Sprintf("lv %d", *d.MinLevel))
	}
	if d.Item != nil {
		parts = append(parts, d.Item.Name)
	}
	return strings.Join(parts, ", ")
}
