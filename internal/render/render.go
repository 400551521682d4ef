// Package render formats setups for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scythe/internal/engine"
)

const nbsp = "\u00a0"

// AutomaLabel replaces the board label on the automa seat.
const AutomaLabel = "Automa:"

var factionColors = map[string]lipgloss.Color{
	"faction-nordic":  lipgloss.Color("#3b82f6"),
	"faction-rusviet": lipgloss.Color("#dc2626"),
	"faction-togawa":  lipgloss.Color("#a855f7"),
	"faction-crimea":  lipgloss.Color("#eab308"),
	"faction-saxony":  lipgloss.Color("#6b7280"),
	"faction-polania": lipgloss.Color("#f5f5f5"),
	"faction-albion":  lipgloss.Color("#16a34a"),
}

// Renderer writes setups, optionally coloured by faction.
type Renderer struct {
	w      io.Writer
	styled bool
}

func New(w io.Writer, styled bool) *Renderer {
	return &Renderer{w: w, styled: styled}
}

// PlayerBoardLabel is the board label of a seat, or AutomaLabel.
func PlayerBoardLabel(a engine.Assignment) string {
	if a.IsAutoma || a.PlayerBoard == nil {
		return AutomaLabel
	}
	return a.PlayerBoard.Label
}

// FactionLabel keeps the first two words of a faction label together.
func FactionLabel(f engine.Faction) string {
	return strings.Replace(f.Label, " ", nbsp, 1)
}

// ProximityLabel formats a score the way it is shown next to a seat.
func ProximityLabel(v float64) string {
	return nbsp + "(" + strconv.FormatFloat(v, 'f', engine.ProximityPrecision, 64) + ")"
}

// PlayerCountLabel labels a player count option; solo play includes the automa.
func PlayerCountLabel(n int) string {
	if n == 1 {
		return "1+A"
	}
	return strconv.Itoa(n)
}

// SeatLine is one seat without styling.
func SeatLine(s engine.Seat) string {
	line := PlayerBoardLabel(s.Assignment) + " " + FactionLabel(s.Faction)
	if s.Proximity != nil {
		line += ProximityLabel(*s.Proximity)
	}
	return line
}

// GlobalLine is one table-wide item without styling.
func GlobalLine(g engine.GlobalItem) string {
	return g.Icon + " " + g.Label
}

// Setup writes every seat, then every global item.
func (r *Renderer) Setup(s *engine.Setup) error {
	for _, seat := range s.Seats {
		if _, err := fmt.Fprintln(r.w, r.seat(seat)); err != nil {
			return err
		}
	}
	if len(s.Globals) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(r.w); err != nil {
		return err
	}
	for _, g := range s.Globals {
		if _, err := fmt.Fprintln(r.w, GlobalLine(g)); err != nil {
			return err
		}
	}
	return nil
}

// PlayerCounts writes the selectable player counts on one line.
func (r *Renderer) PlayerCounts(counts []int) error {
	labels := make([]string, len(counts))
	for i, n := range counts {
		labels[i] = PlayerCountLabel(n)
	}
	_, err := fmt.Fprintln(r.w, strings.Join(labels, " "))
	return err
}

func (r *Renderer) seat(s engine.Seat) string {
	line := SeatLine(s)
	if !r.styled {
		return line
	}
	style := lipgloss.NewStyle().Bold(true)
	if c, ok := factionColors[s.Faction.ClassName]; ok {
		style = style.Foreground(c)
	}
	if s.IsAutoma {
		style = style.Italic(true).Bold(false)
	}
	return style.Render(line)
}
