package gcode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/facer/internal/model"
)

// Renderer serializes a Program in the dialect of a G-code profile.
type Renderer struct {
	Profile    model.GCodeProfile
	SpindleRPM float64  // substituted into the profile's spindle start, 0 to omit
	Header     []string // comment lines written when the profile enables header comments
}

// NewRenderer returns a renderer for the named built-in profile.
func NewRenderer(profileName string) *Renderer {
	return &Renderer{Profile: model.GetProfile(profileName)}
}

// RenderGCode renders prog in the classic facing dialect.
func RenderGCode(prog Program) (string, error) {
	return NewRenderer(model.DefaultProfileName).Render(prog)
}

// Validate checks that the program can be serialized.
func (p Program) Validate() error {
	ended := false
	for i, m := range p.Motions {
		if ended {
			return fmt.Errorf("%w: motion %d after program end", model.ErrSerialization, i)
		}
		for _, v := range []float64{m.X, m.Y, m.Z, m.Feed} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: motion %d has a non-finite value", model.ErrSerialization, i)
			}
		}
		switch m.Kind {
		case MotionRapid:
			if m.Axes&(AxisX|AxisY|AxisZ) == 0 {
				return fmt.Errorf("%w: rapid %d targets no axis", model.ErrSerialization, i)
			}
		case MotionLinear:
			if !(m.Feed > 0) {
				return fmt.Errorf("%w: linear %d has no feed rate", model.ErrSerialization, i)
			}
		case MotionEnd:
			ended = true
		default:
			return fmt.Errorf("%w: motion %d has unknown kind %d", model.ErrSerialization, i, m.Kind)
		}
	}
	if !ended {
		return fmt.Errorf("%w: missing program end", model.ErrSerialization)
	}
	return nil
}

// Render returns the complete G-code text for prog.
func (r *Renderer) Render(prog Program) (string, error) {
	if err := prog.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	r.writeHeader(&b)
	for _, m := range prog.Motions {
		switch m.Kind {
		case MotionRapid:
			r.writeRapid(&b, m)
		case MotionLinear:
			r.writeLinear(&b, m)
		case MotionEnd:
			r.writeFooter(&b, prog.SafeZ())
		}
	}
	return b.String(), nil
}

func (r *Renderer) writeHeader(b *strings.Builder) {
	p := r.Profile

	if p.HeaderComments && len(r.Header) > 0 {
		for _, line := range r.Header {
			b.WriteString(r.comment(line) + "\n")
		}
		b.WriteString(r.comment("Profile: "+p.Name) + "\n")
		b.WriteString("\n")
	}

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	if r.spindleOn() {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", int(math.Round(r.SpindleRPM))))
	}
}

func (r *Renderer) writeFooter(b *strings.Builder, safeZ float64) {
	p := r.Profile

	if r.spindleOn() && p.SpindleStop != "" && !containsCode(p.EndCode, p.SpindleStop) {
		b.WriteString(p.SpindleStop + "\n")
	}
	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", r.format(safeZ))
		b.WriteString(code + "\n")
	}
}

func (r *Renderer) writeRapid(b *strings.Builder, m Motion) {
	b.WriteString(r.Profile.RapidMove)
	if m.Has(AxisX) {
		b.WriteString(" X" + r.format(m.X))
	}
	if m.Has(AxisY) {
		b.WriteString(" Y" + r.format(m.Y))
	}
	if m.Has(AxisZ) {
		b.WriteString(" Z" + r.format(m.Z))
	}
	r.writeTrailer(b, m.Comment)
}

func (r *Renderer) writeLinear(b *strings.Builder, m Motion) {
	fmt.Fprintf(b, "%s X%s Y%s F%s", r.Profile.FeedMove, r.format(m.X), r.format(m.Y), r.format(m.Feed))
	r.writeTrailer(b, m.Comment)
}

func (r *Renderer) writeTrailer(b *strings.Builder, comment string) {
	if r.Profile.MotionComments && comment != "" {
		b.WriteString(" " + r.comment(comment))
	}
	b.WriteString("\n")
}

func (r *Renderer) spindleOn() bool {
	return r.Profile.SpindleStart != "" && r.SpindleRPM > 0
}

// comment wraps text in the profile's comment syntax.
func (r *Renderer) comment(text string) string {
	return r.Profile.CommentPrefix + text + r.Profile.CommentSuffix
}

// format formats a number according to the profile's precision settings.
func (r *Renderer) format(v float64) string {
	if r.Profile.SignificantDigits > 0 {
		return strconv.FormatFloat(v, 'g', r.Profile.SignificantDigits, 64)
	}
	return strconv.FormatFloat(v, 'f', r.Profile.DecimalPlaces, 64)
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if strings.EqualFold(strings.TrimSpace(c), code) {
			return true
		}
	}
	return false
}
