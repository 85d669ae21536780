package gcode

import (
	"math"
	"time"
)

// Stats summarizes a toolpath.
type Stats struct {
	Passes      int           // descents to a new cutting depth
	Rows        int           // XY cutting moves
	CutLength   float64       // inches travelled at feed
	RapidLength float64       // inches travelled at rapid
	CutTime     time.Duration // time spent at feed, rapids excluded
	MinZ        float64
	MaxZ        float64
}

// Analyze computes statistics over parsed or generated moves.
func Analyze(moves []GCodeMove) Stats {
	var s Stats
	if len(moves) == 0 {
		return s
	}
	s.MinZ, s.MaxZ = math.Inf(1), math.Inf(-1)

	var minutes float64
	for _, m := range moves {
		length := math.Sqrt(sq(m.ToX-m.FromX) + sq(m.ToY-m.FromY) + sq(m.ToZ-m.FromZ))
		s.MinZ = math.Min(s.MinZ, m.ToZ)
		s.MaxZ = math.Max(s.MaxZ, m.ToZ)

		switch m.Type {
		case MoveRapid, MoveRetract:
			s.RapidLength += length
			if m.Type == MoveRapid && m.ToZ < m.FromZ && m.ToX == m.FromX && m.ToY == m.FromY {
				s.Passes++
			}
		case MovePlunge:
			s.Passes++
			s.CutLength += length
			minutes += feedMinutes(length, m.FeedRate)
		case MoveFeed:
			s.Rows++
			s.CutLength += length
			minutes += feedMinutes(length, m.FeedRate)
		}
	}
	s.CutTime = time.Duration(minutes * float64(time.Minute))
	return s
}

func feedMinutes(length, feed float64) float64 {
	if feed <= 0 {
		return 0
	}
	return length / feed
}

func sq(v float64) float64 {
	return v * v
}
