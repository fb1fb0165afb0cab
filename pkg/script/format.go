package script

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-pzforge/pkg/model"
)

// ErrInvalidNumber reports a float property whose value does not parse.
var ErrInvalidNumber = errors.New("script: invalid number")

// FormatStat applies the sign rule of a stat delta. Increasing a need makes
// the game value negative, decreasing makes it positive and `none` keeps the
// sign as typed. Unparseable input counts as 0.
func FormatStat(raw, direction string) string {
	v, err := parseFloat(raw)
	if err != nil {
		return "0"
	}
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case model.DirectionIncrease:
		v = -math.Abs(v)
	case model.DirectionDecrease:
		v = math.Abs(v)
	}
	return FormatFloat(v)
}

// ParseFloatText parses raw and returns it in float notation.
func ParseFloatText(raw string) (string, error) {
	v, err := parseFloat(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, strings.TrimSpace(raw))
	}
	return FormatFloat(v), nil
}

// FormatFloat prints v with the shortest round-trip digits and always keeps a
// decimal point: 5 becomes `5.0`, 0.25 stays `0.25`. Very large or very small
// magnitudes switch to exponent notation.
func FormatFloat(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	text := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return v, nil
}
