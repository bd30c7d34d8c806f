// Package rating turns face stat values into display bands and gauge fill.
package rating

import (
	"math"

	"github.com/okian/playercards/internal/domain/model"
)

const (
	maxStat    = 99
	maxPercent = 100
)

// Band is a colour band for a stat value.
type Band struct {
	Name string
	From string
	To   string
}

// Bands from best to worst; a value falls in the first band whose min it reaches.
var bands = []struct {
	min int
	Band
}{
	{90, Band{Name: "elite", From: "#34D399", To: "#059669"}},
	{80, Band{Name: "high", From: "#60A5FA", To: "#06B6D4"}},
	{70, Band{Name: "good", From: "#FCD34D", To: "#F97316"}},
	{60, Band{Name: "fair", From: "#FB923C", To: "#F43F5E"}},
}

var lowBand = Band{Name: "low", From: "#F87171", To: "#EF4444"}

// BandFor returns the band of v.
func BandFor(v int) Band {
	for _, b := range bands {
		if v >= b.min {
			return b.Band
		}
	}
	return lowBand
}

// Percent is the gauge fill for v on a 0..99 scale, clamped to [0, 100].
func Percent(v int) float64 {
	p := float64(v) / maxStat * maxPercent
	return math.Max(0, math.Min(maxPercent, p))
}

// Lines renders the six face stats in card order.
func Lines(s model.Stats) []model.StatLine {
	src := []struct {
		label string
		value model.Scalar
	}{
		{"PAC", s.Pac}, {"SHO", s.Sho}, {"PAS", s.Pas},
		{"DRI", s.Dri}, {"DEF", s.Def}, {"PHY", s.Phy},
	}
	out := make([]model.StatLine, len(src))
	for i, st := range src {
		v := st.value.Int()
		b := BandFor(v)
		out[i] = model.StatLine{
			Label:   st.label,
			Value:   v,
			Band:    b.Name,
			From:    b.From,
			To:      b.To,
			Percent: Percent(v),
		}
	}
	return out
}
