package colors

import (
	"math"
	"strconv"
	"strings"
)

// The fixed label set. Name never returns anything outside it.
const (
	NameWhite   = "white"
	NameBlack   = "black"
	NameGray    = "gray"
	NameRed     = "red"
	NameOrange  = "orange"
	NameYellow  = "yellow"
	NameGreen   = "green"
	NameCyan    = "cyan"
	NameBlue    = "blue"
	NamePurple  = "purple"
	NamePink    = "pink"
	NameUnknown = "unknown"
)

const grayscaleSaturation = 0.15

// Name maps a hex color to a spoken label. Low-saturation colors always get
// a grayscale name, never a hue-based one.
func Name(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return NameUnknown
	}

	h, s, l := rgbToHSL(r, g, b)

	if s < grayscaleSaturation {
		switch {
		case l > 0.85:
			return NameWhite
		case l < 0.15:
			return NameBlack
		default:
			return NameGray
		}
	}

	switch {
	case l > 0.95:
		return NameWhite
	case l < 0.08:
		return NameBlack
	}

	switch {
	case h < 15 || h >= 345:
		return NameRed
	case h < 45:
		return NameOrange
	case h < 70:
		return NameYellow
	case h < 160:
		return NameGreen
	case h < 200:
		return NameCyan
	case h < 260:
		return NameBlue
	case h < 300:
		return NamePurple
	default:
		return NamePink
	}
}

func parseHex(hex string) (r, g, b float64, ok bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	r = float64((v>>16)&0xFF) / 255
	g = float64((v>>8)&0xFF) / 255
	b = float64(v&0xFF) / 255
	return r, g, b, true
}

func rgbToHSL(r, g, b float64) (h, s, l float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l
}
