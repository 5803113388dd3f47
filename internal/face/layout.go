package face

// LayoutMetrics holds the text sizes and offsets for one display shape.
type LayoutMetrics struct {
	Round               bool    `json:"round"`
	XOffset             float64 `json:"xOffset"`
	TimeYOffset         float64 `json:"timeYOffset"`
	TimeTextSize        float64 `json:"timeTextSize"`
	DateTextSize        float64 `json:"dateTextSize"`
	TemperatureTextSize float64 `json:"temperatureTextSize"`
}

// Dimensions carries the two discrete layout configurations.
type Dimensions struct {
	TimeYOffset float64
	Square      LayoutMetrics
	Round       LayoutMetrics
}

// DefaultDimensions mirrors the resource values shipped with the face.
func DefaultDimensions() Dimensions {
	return Dimensions{
		TimeYOffset: 80,
		Square: LayoutMetrics{
			XOffset:             15,
			TimeTextSize:        40,
			DateTextSize:        16,
			TemperatureTextSize: 24,
		},
		Round: LayoutMetrics{
			Round:               true,
			XOffset:             25,
			TimeTextSize:        45,
			DateTextSize:        18,
			TemperatureTextSize: 28,
		},
	}
}

// For returns the metrics for a round or non-round display.
func (d Dimensions) For(round bool) LayoutMetrics {
	m := d.Square
	if round {
		m = d.Round
	}
	m.Round = round
	m.TimeYOffset = d.TimeYOffset
	return m
}
