package gcode

// MotionKind classifies a Motion.
type MotionKind int

const (
	MotionRapid  MotionKind = iota // non-cutting positioning on any subset of axes
	MotionLinear                   // cutting move in XY at a controlled feed
	MotionEnd                      // program end marker
)

func (k MotionKind) String() string {
	switch k {
	case MotionRapid:
		return "rapid"
	case MotionLinear:
		return "linear"
	case MotionEnd:
		return "end"
	}
	return "unknown"
}

// Axis is a bit set of the axes a motion targets.
type Axis uint8

const (
	AxisX Axis = 1 << iota
	AxisY
	AxisZ
)

// Motion is one instruction of a toolpath program. Only the coordinates
// named by Axes are meaningful; Feed is set for linear cuts.
type Motion struct {
	Kind    MotionKind
	Axes    Axis
	X       float64
	Y       float64
	Z       float64
	Feed    float64 // in/min
	Comment string
}

// Has reports whether the motion targets axis a.
func (m Motion) Has(a Axis) bool {
	return m.Axes&a != 0
}

// RapidZ positions the Z axis only.
func RapidZ(z float64, comment string) Motion {
	return Motion{Kind: MotionRapid, Axes: AxisZ, Z: z, Comment: comment}
}

// RapidXY positions X and Y at the current height.
func RapidXY(x, y float64, comment string) Motion {
	return Motion{Kind: MotionRapid, Axes: AxisX | AxisY, X: x, Y: y, Comment: comment}
}

// RapidY shifts Y only.
func RapidY(y float64, comment string) Motion {
	return Motion{Kind: MotionRapid, Axes: AxisY, Y: y, Comment: comment}
}

// Linear cuts to (x, y) at the given feed rate.
func Linear(x, y, feed float64, comment string) Motion {
	return Motion{Kind: MotionLinear, Axes: AxisX | AxisY, X: x, Y: y, Feed: feed, Comment: comment}
}

// End terminates the program.
func End() Motion {
	return Motion{Kind: MotionEnd}
}

// Program is an ordered sequence of motions terminated by an End marker.
type Program struct {
	Motions []Motion
}

// Len returns the number of motions including the end marker.
func (p Program) Len() int {
	return len(p.Motions)
}

// SafeZ returns the highest Z any rapid move targets, which is the retract
// height of a facing program. It returns 0 when no rapid sets Z.
func (p Program) SafeZ() float64 {
	safe, found := 0.0, false
	for _, m := range p.Motions {
		if m.Kind == MotionRapid && m.Has(AxisZ) && (!found || m.Z > safe) {
			safe, found = m.Z, true
		}
	}
	return safe
}

// Moves expands the program into absolute from/to segments starting at the
// machine origin, the same representation ParseGCode produces from text.
func (p Program) Moves() []GCodeMove {
	var moves []GCodeMove
	curX, curY, curZ, curFeed := 0.0, 0.0, 0.0, 0.0

	for _, m := range p.Motions {
		if m.Kind == MotionEnd {
			break
		}
		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		if m.Has(AxisX) {
			newX = m.X
		}
		if m.Has(AxisY) {
			newY = m.Y
		}
		if m.Has(AxisZ) {
			newZ = m.Z
		}
		if m.Kind == MotionLinear {
			newFeed = m.Feed
		}

		moves = append(moves, GCodeMove{
			Type:     classifyMove(m.Kind == MotionRapid, curZ, newZ, curX, curY, newX, newY),
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      newX,
			ToY:      newY,
			ToZ:      newZ,
			FeedRate: newFeed,
		})
		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}
	return moves
}
