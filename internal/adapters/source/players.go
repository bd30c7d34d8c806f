package source

import (
	"bytes"
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/playercards/internal/domain/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// playersEnvelope is the {"players": [...]} form of the player list.
type playersEnvelope struct {
	Players []model.Player `json:"players"`
}

// LoadPlayers loads the player list at loc.
func (l *Loader) LoadPlayers(ctx context.Context, loc string) ([]model.Player, error) {
	b, err := l.read(ctx, loc)
	if err != nil {
		return nil, err
	}
	return DecodePlayers(b)
}

// DecodePlayers accepts either {"players": [...]} or a bare array. An
// envelope without players, or null, decodes to an empty list.
func DecodePlayers(b []byte) ([]model.Player, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Player{}, nil
	}

	switch trimmed[0] {
	case '[':
		var players []model.Player
		if err := json.Unmarshal(trimmed, &players); err != nil {
			return nil, fmt.Errorf("%w: players array: %w", ErrDecode, err)
		}
		return players, nil
	case '{':
		var env playersEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: players envelope: %w", ErrDecode, err)
		}
		if env.Players == nil {
			return []model.Player{}, nil
		}
		return env.Players, nil
	default:
		return nil, fmt.Errorf("%w: players: expected object or array", ErrDecode)
	}
}
