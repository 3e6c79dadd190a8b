package effect

import (
	"fmt"
	"image/color"
	"math/rand"
	"strconv"
	"strings"
)

// ParseWeights parses a weighted categorical table, e.g. "circle:95 star:5".
// Entries are space-separated "name:weight" pairs; weights must be positive
// and sum to a positive total.
func ParseWeights(s string) ([]WeightedChoice, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty weight table")
	}

	fields := strings.Fields(s)
	choices := make([]WeightedChoice, 0, len(fields))
	total := 0.0
	for _, field := range fields {
		idx := strings.LastIndex(field, ":")
		if idx <= 0 || idx == len(field)-1 {
			return nil, fmt.Errorf("invalid weight entry %q (want name:weight)", field)
		}
		weight, err := strconv.ParseFloat(field[idx+1:], 64)
		if err != nil || weight <= 0 {
			return nil, fmt.Errorf("invalid weight in entry %q", field)
		}
		choices = append(choices, WeightedChoice{Value: field[:idx], Weight: weight})
		total += weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("weight table %q sums to zero", s)
	}
	return choices, nil
}

// PickWeighted draws one entry from a weighted table.
// The table must be non-empty with positive weights (enforced by ParseWeights).
func PickWeighted(choices []WeightedChoice) string {
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}
	r := rand.Float64() * total
	for _, c := range choices {
		r -= c.Weight
		if r < 0 {
			return c.Value
		}
	}
	// 浮点累计误差兜底：返回最后一项
	return choices[len(choices)-1].Value
}

// ParseColorWeights parses a weighted color/opacity table, e.g.
// "#ffd27f@0.8:80 #9fd8ff@0.4:20" — 80 parts #ffd27f at opacity 0.8,
// 20 parts #9fd8ff at opacity 0.4.
func ParseColorWeights(s string) ([]ColorChoice, error) {
	weights, err := ParseWeights(s)
	if err != nil {
		return nil, err
	}

	choices := make([]ColorChoice, 0, len(weights))
	for _, w := range weights {
		parts := strings.Split(w.Value, "@")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid color entry %q (want #rrggbb@opacity)", w.Value)
		}
		clr, err := ParseHexColor(parts[0])
		if err != nil {
			return nil, err
		}
		opacity, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || opacity < 0 || opacity > 1 {
			return nil, fmt.Errorf("invalid opacity in color entry %q", w.Value)
		}
		choices = append(choices, ColorChoice{Color: clr, Opacity: opacity, Weight: w.Weight})
	}
	return choices, nil
}

// PickColorWeighted draws one color choice from a weighted color table.
func PickColorWeighted(choices []ColorChoice) ColorChoice {
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}
	r := rand.Float64() * total
	for _, c := range choices {
		r -= c.Weight
		if r < 0 {
			return c
		}
	}
	return choices[len(choices)-1]
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("invalid color %q: missing #", s)
	}
	hex := s[1:]

	parse := func(sub string) (uint8, error) {
		v, err := strconv.ParseUint(sub, 16, 8)
		return uint8(v), err
	}

	switch len(hex) {
	case 3:
		// 短格式 "#fa0" → "#ffaa00"
		r, err1 := parse(strings.Repeat(string(hex[0]), 2))
		g, err2 := parse(strings.Repeat(string(hex[1]), 2))
		b, err3 := parse(strings.Repeat(string(hex[2]), 2))
		if err1 != nil || err2 != nil || err3 != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	case 6:
		r, err1 := parse(hex[0:2])
		g, err2 := parse(hex[2:4])
		b, err3 := parse(hex[4:6])
		if err1 != nil || err2 != nil || err3 != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rgb or #rrggbb", s)
	}
}
