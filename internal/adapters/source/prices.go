package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/playercards/internal/domain/model"
)

const (
	colName      = "name"
	colBasePrice = "base_price"

	// Largest integer a browser number holds exactly; bigger values stay text.
	maxSafeInteger = 1<<53 - 1
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var numberRe = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// LoadPrices loads the price table at loc.
func (l *Loader) LoadPrices(ctx context.Context, loc string) ([]model.PriceRow, error) {
	b, err := l.read(ctx, loc)
	if err != nil {
		return nil, err
	}
	return DecodePrices(bytes.NewReader(b))
}

// DecodePrices parses a price table. Headers are trimmed and lower-cased; a
// name column is required, base_price is optional. Blank lines are skipped
// and short rows read missing cells as empty.
func DecodePrices(r io.Reader) ([]model.PriceRow, error) {
	br := bufio.NewReader(r)
	if bom, _ := br.Peek(len(utf8BOM)); bytes.Equal(bom, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, colName)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: prices header: %w", ErrDecode, err)
	}
	col := func(name string) int {
		for i, h := range header {
			if normalizeHeader(h) == name {
				return i
			}
		}
		return -1
	}
	ciName, ciPrice := col(colName), col(colBasePrice)
	if ciName < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, colName)
	}

	var rows []model.PriceRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: prices: %w", ErrDecode, err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, model.PriceRow{
			Name:      Canonical(safeGet(rec, ciName)),
			BasePrice: Canonical(safeGet(rec, ciPrice)),
			Line:      line,
		})
	}
	return rows, nil
}

// Canonical coerces a cell to its canonical text. Numeric-looking cells are
// re-rendered in shortest form ("1.50" -> "1.5", "007" -> "7") so they
// compare the same however the sheet was typed; other cells are trimmed.
func Canonical(cell string) string {
	s := strings.TrimSpace(cell)
	if !numberRe.MatchString(s) {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.Abs(f) > maxSafeInteger {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func safeGet(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
