package effect

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Interpolation mode names accepted by the value mini-format.
var interpolationKeywords = []string{"Linear", "EaseIn", "EaseOut", "EaseInOut"}

// ParseValue parses a scalar field of an effect definition.
// Supported formats:
//   - Empty: "" → min=0, max=0, keyframes=nil
//   - Fixed value: "1500" → min=1500, max=1500
//   - Range: "[0.7 0.9]" → min=0.7, max=0.9（每次抽取时随机）
//   - Single bracket value: "[3]" → min=3, max=3
//   - Keyframes: "0,0 0.2,1 1,0" → keyframes over normalized time 0-1
//   - Interpolation prefix: "EaseOut 0,0 1,1" → keyframes with interpolation="EaseOut"
//
// Returns:
//   - min, max: range bounds (min <= max; swapped if given reversed)
//   - keyframes: parsed keyframe array (keyframes format only)
//   - interpolation: interpolation mode ("Linear", "EaseIn", "EaseOut", "EaseInOut")
//   - err: non-nil when the string matches no supported format
func ParseValue(s string) (min, max float64, keyframes []Keyframe, interpolation string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil, "", nil
	}

	// Range format: "[min max]" or "[value]"
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		rangeStr := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		parts := strings.Fields(rangeStr)
		switch len(parts) {
		case 2:
			min, err1 := strconv.ParseFloat(parts[0], 64)
			max, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 != nil || err2 != nil {
				return 0, 0, nil, "", fmt.Errorf("invalid range %q", s)
			}
			if min > max {
				min, max = max, min
			}
			return min, max, nil, "", nil
		case 1:
			val, perr := strconv.ParseFloat(parts[0], 64)
			if perr != nil {
				return 0, 0, nil, "", fmt.Errorf("invalid range %q", s)
			}
			return val, val, nil, "", nil
		default:
			return 0, 0, nil, "", fmt.Errorf("invalid range %q: want 1 or 2 numbers", s)
		}
	}

	// Optional interpolation keyword prefix
	fields := strings.Fields(s)
	for _, keyword := range interpolationKeywords {
		if fields[0] == keyword {
			interpolation = keyword
			fields = fields[1:]
			break
		}
	}
	if len(fields) == 0 {
		return 0, 0, nil, "", fmt.Errorf("interpolation keyword %q without keyframes", s)
	}

	// Keyframes format: "time,value" pairs separated by spaces
	if strings.Contains(fields[0], ",") {
		keyframes = make([]Keyframe, 0, len(fields))
		prevTime := math.Inf(-1)
		for _, part := range fields {
			pair := strings.Split(part, ",")
			if len(pair) != 2 {
				return 0, 0, nil, "", fmt.Errorf("invalid keyframe %q in %q", part, s)
			}
			kt, err1 := strconv.ParseFloat(pair[0], 64)
			kv, err2 := strconv.ParseFloat(pair[1], 64)
			if err1 != nil || err2 != nil {
				return 0, 0, nil, "", fmt.Errorf("invalid keyframe %q in %q", part, s)
			}
			// 关键帧时间必须单调不减
			if kt < prevTime {
				return 0, 0, nil, "", fmt.Errorf("keyframe times not sorted in %q", s)
			}
			prevTime = kt
			keyframes = append(keyframes, Keyframe{Time: kt, Value: kv})
		}
		if interpolation == "" {
			interpolation = "Linear"
		}
		return 0, 0, keyframes, interpolation, nil
	}

	if interpolation != "" {
		return 0, 0, nil, "", fmt.Errorf("interpolation keyword without keyframes in %q", s)
	}

	// Fixed value format
	value, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, 0, nil, "", fmt.Errorf("unrecognized value %q", s)
	}
	return value, value, nil, "", nil
}

// EvaluateKeyframes calculates the interpolated value at normalized time t (0-1)
// using the provided keyframes and interpolation mode.
//
// Keyframes must be sorted by Time. Outside the keyframe span the first/last
// value is returned (clamped, no extrapolation).
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))
	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]
		if t >= k0.Time && t <= k1.Time {
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k0.Value
			}
			ratio := (t - k0.Time) / duration

			switch interpolation {
			case "EaseIn":
				ratio = ratio * ratio // quadratic ease-in
			case "EaseOut":
				ratio = 1 - (1-ratio)*(1-ratio) // quadratic ease-out
			case "EaseInOut":
				ratio = ratio * ratio * (3 - 2*ratio) // smoothstep
			default:
				// Linear（含未知模式）
			}
			return k0.Value + ratio*(k1.Value-k0.Value)
		}
	}

	return keyframes[len(keyframes)-1].Value
}

// RandomInRange returns a random float64 in the range [min, max].
func RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}

// RandomValue parses s and draws one value from it: fixed values return
// themselves, ranges return a fresh uniform draw. Keyframe strings are not
// valid here (they describe curves, not draws).
func RandomValue(s string) (float64, error) {
	min, max, keyframes, _, err := ParseValue(s)
	if err != nil {
		return 0, err
	}
	if keyframes != nil {
		return 0, fmt.Errorf("keyframes not allowed for scalar draw: %q", s)
	}
	return RandomInRange(min, max), nil
}
