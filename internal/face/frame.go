package face

// Color is a packed 0xAARRGGBB value.
type Color uint32

const (
	ColorBlack Color = 0xFF000000
	ColorWhite Color = 0xFFFFFFFF
	// ColorBackground is the interactive-mode background (sunshine blue).
	ColorBackground Color = 0xFF03A9F4
	// ColorAmbientText is the dimmed text color used in ambient mode.
	ColorAmbientText Color = 0xFFB0B0B0
)

// Align tells the surface how X relates to the drawn text.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// TextRole names what a text instruction shows.
type TextRole string

const (
	RoleTime        TextRole = "time"
	RoleDate        TextRole = "date"
	RoleTemperature TextRole = "temperature"
)

// Bounds is the drawable area handed over by the host.
type Bounds struct {
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}

// TextOp draws a single line of text with its baseline at Y.
type TextOp struct {
	Role      TextRole `json:"role"`
	Text      string   `json:"text"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Size      float64  `json:"size"`
	Bold      bool     `json:"bold"`
	Color     Color    `json:"color"`
	Align     Align    `json:"align"`
	AntiAlias bool     `json:"antiAlias"`
}

// IconOp draws an icon asset with its top-left corner at (X, Y).
type IconOp struct {
	ID    IconID  `json:"id"`
	Asset Asset   `json:"asset"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Frame is the full list of drawing instructions for one redraw.
type Frame struct {
	Bounds     Bounds   `json:"bounds"`
	Ambient    bool     `json:"ambient"`
	Background Color    `json:"background"`
	Texts      []TextOp `json:"texts"`
	Icon       *IconOp  `json:"icon,omitempty"`
}

// Text returns the instruction for role, if present.
func (f Frame) Text(role TextRole) (TextOp, bool) {
	for _, t := range f.Texts {
		if t.Role == role {
			return t, true
		}
	}
	return TextOp{}, false
}
