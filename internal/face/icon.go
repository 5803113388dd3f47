package face

import "math"

// IconID identifies one of the weather icons the face can draw.
type IconID string

const (
	IconNone        IconID = ""
	IconStorm       IconID = "storm"
	IconLightRain   IconID = "light_rain"
	IconRain        IconID = "rain"
	IconSnow        IconID = "snow"
	IconFog         IconID = "fog"
	IconClear       IconID = "clear"
	IconLightClouds IconID = "light_clouds"
	IconCloudy      IconID = "cloudy"
)

// IconScale is applied to every icon asset before it is drawn.
const IconScale = 1.2

// Classify maps a weather condition code to an icon. Ranges are inclusive and
// checked in order; the first match wins, so 761 falls in the fog range even
// though it is also listed with the storm codes.
func Classify(code int) IconID {
	switch {
	case code >= 200 && code <= 232:
		return IconStorm
	case code >= 300 && code <= 321:
		return IconLightRain
	case code >= 500 && code <= 504:
		return IconRain
	case code == 511:
		return IconSnow
	case code >= 520 && code <= 531:
		return IconRain
	case code >= 600 && code <= 622:
		return IconSnow
	case code >= 701 && code <= 761:
		return IconFog
	case code == 761 || code == 781:
		return IconStorm
	case code == 800:
		return IconClear
	case code == 801:
		return IconLightClouds
	case code >= 802 && code <= 804:
		return IconCloudy
	default:
		return IconNone
	}
}

// Asset is a resolved, already scaled icon bitmap reference.
type Asset struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AssetResolver looks up the drawable for an icon. Decoding is left to the host.
type AssetResolver interface {
	Resolve(id IconID) (Asset, bool)
}

// StaticAssets resolves icons to drawable names with a fixed source size.
type StaticAssets struct {
	// BaseSize is the unscaled edge length of every icon in pixels.
	BaseSize int
}

var drawables = map[IconID]string{
	IconStorm:       "ic_storm",
	IconLightRain:   "ic_light_rain",
	IconRain:        "ic_rain",
	IconSnow:        "ic_snow",
	IconFog:         "ic_fog",
	IconClear:       "ic_clear",
	IconLightClouds: "ic_light_clouds",
	IconCloudy:      "ic_cloudy",
}

func (s StaticAssets) Resolve(id IconID) (Asset, bool) {
	name, ok := drawables[id]
	if !ok {
		return Asset{}, false
	}
	size := int(math.Round(float64(s.BaseSize) * IconScale))
	return Asset{Name: name, Width: size, Height: size}, true
}
