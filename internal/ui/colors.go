package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/shared"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#3B82F6", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	info  lipgloss.Style
	muted lipgloss.Style
	label lipgloss.Style
}

func NewPalette(t, s, e, i, m string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewStyle(e),
		info:  NewStyle(i),
		muted: NewEm(m),
		label: NewBold(t),
	}
}

// PaletteFromConfig builds a palette from the [ui.colors] section, keeping defaults for empty keys.
func PaletteFromConfig(c shared.ColorsConfig) *Palette {
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return NewPalette(
		pick(c.Title, "#7D56F4"),
		pick(c.Success, "#04B575"),
		pick(c.Error, "#FF0000"),
		pick(c.Info, "#3B82F6"),
		pick(c.Muted, "#626262"),
	)
}

// Notice returns the banner style for a notification kind.
func (p *Palette) Notice(k models.Kind) lipgloss.Style {
	switch k {
	case models.KindSuccess:
		return p.ok
	case models.KindError:
		return p.err.Bold(true)
	default:
		return p.info.Bold(true)
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
