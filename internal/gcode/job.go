package gcode

import (
	"fmt"

	"github.com/piwi3910/facer/internal/model"
)

// JobOutput is everything produced by running a facing job.
type JobOutput struct {
	Derived    model.DerivedResult
	Parameters model.CuttingParameters // the job's parameters with the feed rate resolved
	Program    Program
	Code       string
	Stats      Stats
}

// RunJob computes the feeds and speeds of a job, generates its toolpath and
// renders it in the job's profile. Custom profiles are searched after the
// built-in ones; an unknown profile name selects the facing dialect.
func RunJob(job model.Job, catalog *model.Catalog, custom []model.GCodeProfile) (JobOutput, error) {
	var out JobOutput

	derived, err := job.Parameters.Derive(catalog, job.Material)
	if err != nil {
		return out, err
	}
	out.Derived = derived

	params := job.Parameters
	params.FeedRate = params.ResolveFeedRate(derived)
	out.Parameters = params

	prog, err := GenerateFacingProgram(params)
	if err != nil {
		return out, err
	}
	out.Program = prog
	out.Stats = Analyze(prog.Moves())

	profile, ok := model.FindProfile(job.Profile, custom)
	if !ok {
		profile = model.GetProfile(model.DefaultProfileName)
	}
	r := &Renderer{
		Profile:    profile,
		SpindleRPM: derived.SpindleRPM,
		Header:     JobHeader(job, out),
	}
	code, err := r.Render(prog)
	if err != nil {
		return out, err
	}
	out.Code = code
	return out, nil
}

// JobHeader returns the summary comment lines written by profiles with
// header comments enabled.
func JobHeader(job model.Job, out JobOutput) []string {
	p := out.Parameters
	b := p.Boundary.Normalized()
	top, bottom := p.ZRange()
	return []string{
		fmt.Sprintf("Job: %s", job.Name),
		fmt.Sprintf("Material: %s", job.Material),
		fmt.Sprintf("Tool: %g in, %d flutes, %d RPM", p.ToolDiameter, p.Flutes, int(out.Derived.SpindleRPM+0.5)),
		fmt.Sprintf("Area: X%g..%g Y%g..%g", b.X1, b.X2, b.Y1, b.Y2),
		fmt.Sprintf("Depth: Z%g..%g step %g", top, bottom, p.AxialDepth),
		fmt.Sprintf("Feed: %g in/min, step-over %g", p.FeedRate, p.RadialDepth),
	}
}
