package source

import (
	"context"
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/okian/playercards/internal/domain/logo"
)

//go:embed data/clubs.yaml
var defaultClubs []byte

// LoadLogoMap loads a club logo map at loc: a YAML list of {club, logo}.
func (l *Loader) LoadLogoMap(ctx context.Context, loc string) (*logo.Map, error) {
	b, err := l.read(ctx, loc)
	if err != nil {
		return nil, err
	}
	return DecodeLogoMap(b)
}

// DecodeLogoMap parses a YAML logo map, keeping entry order.
func DecodeLogoMap(b []byte) (*logo.Map, error) {
	var entries []logo.Entry
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("%w: logo map: %w", ErrDecode, err)
	}
	m, err := logo.NewMap(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return m, nil
}

// DefaultLogoMap returns the built-in club logo map.
func DefaultLogoMap() *logo.Map {
	m, err := DecodeLogoMap(defaultClubs)
	if err != nil {
		panic(fmt.Sprintf("embedded logo map: %v", err))
	}
	return m
}
