// Package deck implements slideshow navigation over a deck of n cards.
// Indices are 0-based; player numbers shown to users are 1-based.
package deck

import (
	"github.com/okian/playercards/internal/domain/model"
)

// Next returns the index after i, wrapping to the first card.
func Next(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// Prev returns the index before i, wrapping to the last card.
func Prev(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// Jump parses a 1-based player number typed by a user and returns its
// 0-based index. Input is parsed like parseInt ("12abc" is 12).
func Jump(input string, n int) (int, bool) {
	num := model.Scalar(input).Int()
	return IndexOf(num, n)
}

// IndexOf converts a 1-based player number into an index within n cards.
func IndexOf(number, n int) (int, bool) {
	if number < 1 || number > n {
		return 0, false
	}
	return number - 1, true
}

// Neighbors returns the 1-based numbers before and after number, with
// wrap-around.
func Neighbors(number, n int) (prev, next int) {
	i, ok := IndexOf(number, n)
	if !ok {
		return 0, 0
	}
	return Prev(i, n) + 1, Next(i, n) + 1
}
