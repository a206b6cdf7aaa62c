package problemgen

// Coefficient range for generated equations.
const (
	MinCoefficient = 2
	MaxCoefficient = 6
)

// Caps on the level-scaled ranges.
const (
	maxConstant = 60
	maxSolution = 40
)

// Band holds the numeric ranges used at one difficulty level.
type Band struct {
	Level int
	MinB  int // smallest |b|
	MaxB  int // largest |b|
	MinX  int
	MaxX  int
}

// BandFor returns the ranges for a level. Levels below 1 are treated as 1.
func BandFor(level int) Band {
	if level < 1 {
		level = 1
	}
	b := Band{
		Level: level,
		MinB:  level,
		MaxB:  min(5+5*level, maxConstant),
		MinX:  1 + level/2,
		MaxX:  min(6+2*level, maxSolution),
	}
	if b.MinB > b.MaxB {
		b.MinB = b.MaxB
	}
	if b.MinX > b.MaxX {
		b.MinX = b.MaxX
	}
	return b
}
