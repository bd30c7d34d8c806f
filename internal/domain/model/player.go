// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PriceUnknown is the base price of a player with no known price.
const PriceUnknown = "N/A"

// Scalar holds a field that upstream data ships either as a JSON number or
// as a string ("85", 85, "€10M"). It is stored as text and re-emitted as a
// number when the text is a valid JSON number literal.
type Scalar string

// UnmarshalJSON accepts a number, a string, a bool or null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	default:
		*s = Scalar(data)
	}
	return nil
}

// MarshalJSON emits numbers unquoted and everything else as a string.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.isNumber() {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}

// String returns the raw text.
func (s Scalar) String() string { return string(s) }

// Int parses the leading integer of the value, the way a browser parseInt
// would: "87" -> 87, "87+3" -> 87, "" -> 0.
func (s Scalar) Int() int {
	str := strings.TrimSpace(string(s))
	end := 0
	if end < len(str) && (str[end] == '-' || str[end] == '+') {
		end++
	}
	digits := end
	for end < len(str) && str[end] >= '0' && str[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(str[:end])
	if err != nil {
		return 0
	}
	return n
}

func (s Scalar) isNumber() bool {
	str := string(s)
	if str == "" {
		return false
	}
	if _, err := strconv.ParseFloat(str, 64); err != nil {
		return false
	}
	// reject forms JSON cannot carry: leading zeros, "+1", ".5", "Inf"
	return json.Valid([]byte(str))
}

// Stats are the six face stats of a card.
type Stats struct {
	Pac Scalar `json:"pac"`
	Sho Scalar `json:"sho"`
	Pas Scalar `json:"pas"`
	Dri Scalar `json:"dri"`
	Def Scalar `json:"def"`
	Phy Scalar `json:"phy"`
}

// Images are optional image URLs shipped with a player.
type Images struct {
	Team     string `json:"team,omitempty"`
	Nation   string `json:"nation,omitempty"`
	Headshot string `json:"headshot,omitempty"`
}

// Player is a player record as read from the player list. BasePrice is the
// produced field; RawBasePrice is the record's own base_price.
type Player struct {
	Name              string   `json:"name"`
	Club              string   `json:"club"`
	Ovr               Scalar   `json:"ovr,omitempty"`
	Pot               Scalar   `json:"pot,omitempty"`
	Age               Scalar   `json:"age,omitempty"`
	Height            Scalar   `json:"height,omitempty"`
	Positions         []string `json:"positions,omitempty"`
	Value             Scalar   `json:"value,omitempty"`
	Wage              Scalar   `json:"wage,omitempty"`
	WeakFoot          Scalar   `json:"weak_foot,omitempty"`
	SkillMoves        Scalar   `json:"skill_moves,omitempty"`
	AttackingWorkrate string   `json:"attacking_workrate,omitempty"`
	DefensiveWorkrate string   `json:"defensive_workrate,omitempty"`
	Stats             Stats    `json:"stats"`
	Images            Images   `json:"images"`
	RawBasePrice      Scalar   `json:"base_price,omitempty"`
	BasePrice         string   `json:"basePrice,omitempty"`
}

// OwnPrice returns the record's own base_price, or PriceUnknown when blank.
func (p Player) OwnPrice() string {
	if v := strings.TrimSpace(p.RawBasePrice.String()); v != "" {
		return v
	}
	return PriceUnknown
}

// PriceRow is one row of the price table, coerced to strings at parse time.
type PriceRow struct {
	Name      string
	BasePrice string
	// Line is the 1-based line number in the source, for diagnostics.
	Line int
}

// Logo sources in fallback order.
const (
	LogoFromClubMap   = "club_map"
	LogoFromTeamImage = "team_image"
	LogoPlaceholder   = "placeholder"
)

// StatLine is one rendered face stat.
type StatLine struct {
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Band    string  `json:"band"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Percent float64 `json:"percent"`
}

// Card is a player ready for display: the record plus resolved images and
// rendered stats. Number is 1-based.
type Card struct {
	Number int `json:"number"`
	Player
	TeamLogo   string     `json:"teamLogo"`
	LogoSource string     `json:"logoSource"`
	NationLogo string     `json:"nationLogo"`
	Headshot   string     `json:"headshot"`
	StatLines  []StatLine `json:"statLines"`
}
