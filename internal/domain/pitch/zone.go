package pitch

// Outside is returned for coordinates that fall in no configured zone.
const Outside = "Outside"

const (
	ZoneSixYardBox        = "Six-Yard Box"
	ZoneCentralBox        = "Central Penalty Area"
	ZoneBoxEdge           = "Penalty Area Edge"
	ZoneLeftSixYardFlank  = "Left Six-Yard Flank"
	ZoneRightSixYardFlank = "Right Six-Yard Flank"
	ZoneLeftBoxFlank      = "Left Penalty Area Flank"
	ZoneRightBoxFlank     = "Right Penalty Area Flank"
	ZoneLeftWide          = "Left Wide Corridor"
	ZoneRightWide         = "Right Wide Corridor"
	ZoneFourteen          = "Zone 14"
	ZoneLeftHalfSpace     = "Left Half-Space"
	ZoneRightHalfSpace    = "Right Half-Space"
	ZoneDeep              = "Deep Build-Up"
)

// Zone is a named rectangle on the vertical pitch with inclusive bounds.
type Zone struct {
	Name string  `yaml:"name" json:"name" validate:"required"`
	XMin float64 `yaml:"x_min" json:"x_min" validate:"gte=0,lte=100"`
	XMax float64 `yaml:"x_max" json:"x_max" validate:"gte=0,lte=100,gtefield=XMin"`
	YMin float64 `yaml:"y_min" json:"y_min" validate:"gte=0,lte=100"`
	YMax float64 `yaml:"y_max" json:"y_max" validate:"gte=0,lte=100,gtefield=YMin"`
}

// Contains reports whether (x, y) lies inside z, edges included.
func (z Zone) Contains(x, y float64) bool {
	return x >= z.XMin && x <= z.XMax && y >= z.YMin && y <= z.YMax
}

// Point is an event location in event orientation: X along the pitch length
// toward the attacked goal, Y across the width. Both in [0,100].
type Point struct {
	X float64
	Y float64
}

// InRange reports whether v is a valid pitch coordinate in [0,100].
func InRange(v float64) bool {
	return v >= 0 && v <= 100
}

// Valid reports whether both coordinates are on the pitch.
func (p Point) Valid() bool {
	return InRange(p.X) && InRange(p.Y)
}
