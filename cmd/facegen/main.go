// Command facegen computes feeds and speeds for a facing job and writes its
// GCode without the desktop UI.
//
//	facegen --material "Mild Steel" --x1 0 --x2 4 --y1 0 --y2 3 --z1 0 --z2 -0.05 --safe-z 0.25 > face.nc
//	facegen --job plate.facer.yaml --profile Grbl --out plate.nc --setup-sheet plate.pdf
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/piwi3910/facer/internal/export"
	"github.com/piwi3910/facer/internal/gcode"
	"github.com/piwi3910/facer/internal/importer"
	"github.com/piwi3910/facer/internal/model"
	"github.com/piwi3910/facer/internal/project"
)

type mainOptions struct {
	JobPath       string
	Name          string
	Material      string
	Profile       string
	CatalogPath   string
	ProfilesPath  string
	OutPath       string
	SetupSheet    string
	Labels        string
	Chart         string
	DXF           string
	SaveJob       string
	ListMaterials bool
	ListProfiles  bool
	Verbose       bool

	X1, X2, Y1, Y2       float64
	ZTop, ZBottom, SafeZ float64
	ToolDiameter         float64
	Flutes               int
	RadialDepth          float64
	AxialDepth           string
	FeedRate             float64
	RowStep              string
}

func newFlagSet(opts *mainOptions, stderr io.Writer) *flag.FlagSet {
	d := model.DefaultParameters()
	fs := flag.NewFlagSet("facegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&opts.JobPath, "job", "j", "", "YAML job file; flags given explicitly override its values")
	fs.StringVar(&opts.Name, "name", "Untitled", "job name")
	fs.StringVarP(&opts.Material, "material", "m", model.DefaultMaterialName, "catalog material")
	fs.StringVarP(&opts.Profile, "profile", "p", model.DefaultProfileName, "GCode profile")
	fs.StringVar(&opts.CatalogPath, "catalog", "", "CSV or Excel material table (default: built-in)")
	fs.StringVar(&opts.ProfilesPath, "profiles", project.DefaultProfilesPath(), "custom GCode profiles JSON")
	fs.StringVarP(&opts.OutPath, "out", "o", "-", "GCode output file, - for stdout")
	fs.StringVar(&opts.SetupSheet, "setup-sheet", "", "write a PDF setup sheet")
	fs.StringVar(&opts.Labels, "labels", "", "write a PDF job label")
	fs.StringVar(&opts.Chart, "chart", "", "write an Excel feeds chart for every catalog material")
	fs.StringVar(&opts.DXF, "dxf", "", "write the toolpath as DXF")
	fs.StringVar(&opts.SaveJob, "save-job", "", "write the effective job as YAML")
	fs.BoolVar(&opts.ListMaterials, "list-materials", false, "list catalog materials and exit")
	fs.BoolVar(&opts.ListProfiles, "list-profiles", false, "list GCode profiles and exit")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	fs.Float64Var(&opts.X1, "x1", d.Boundary.X1, "first X edge (in)")
	fs.Float64Var(&opts.X2, "x2", d.Boundary.X2, "second X edge, where cutting starts (in)")
	fs.Float64Var(&opts.Y1, "y1", d.Boundary.Y1, "first Y edge (in)")
	fs.Float64Var(&opts.Y2, "y2", d.Boundary.Y2, "second Y edge (in)")
	fs.Float64Var(&opts.ZTop, "z1", d.ZTop, "top Z level (in)")
	fs.Float64Var(&opts.ZBottom, "z2", d.ZBottom, "bottom Z level (in)")
	fs.Float64Var(&opts.SafeZ, "safe-z", d.SafeZ, "safe retract height (in)")
	fs.Float64VarP(&opts.ToolDiameter, "tool-diameter", "d", d.ToolDiameter, "cutter diameter (in)")
	fs.IntVarP(&opts.Flutes, "flutes", "f", d.Flutes, "number of flutes or inserts")
	fs.Float64Var(&opts.RadialDepth, "radial-doc", d.RadialDepth, "radial depth of cut / row step (in)")
	fs.StringVar(&opts.AxialDepth, "axial-doc", "1/16", "axial depth of cut: a preset like 1/16 or inches")
	fs.Float64Var(&opts.FeedRate, "feed", d.FeedRate, "feed rate (in/min), 0 for the computed minimum")
	fs.StringVar(&opts.RowStep, "row-step", string(d.RowStep), "last row policy: stop or clamp")
	return fs
}

// buildJob starts from the job file, or the defaults, and applies the
// flags that were set explicitly.
func buildJob(fs *flag.FlagSet, opts *mainOptions) (model.Job, error) {
	job := model.NewJob()
	if opts.JobPath != "" {
		loaded, err := project.LoadJob(opts.JobPath)
		if err != nil {
			return job, err
		}
		job = loaded
	}

	// Without a job file every flag applies, defaults included.
	set := func(name string) bool { return opts.JobPath == "" || fs.Changed(name) }
	p := &job.Parameters

	if set("name") {
		job.Name = opts.Name
	}
	if set("material") {
		job.Material = opts.Material
	}
	if set("profile") {
		job.Profile = opts.Profile
	}
	floats := []struct {
		flag string
		dst  *float64
		val  float64
	}{
		{"x1", &p.Boundary.X1, opts.X1},
		{"x2", &p.Boundary.X2, opts.X2},
		{"y1", &p.Boundary.Y1, opts.Y1},
		{"y2", &p.Boundary.Y2, opts.Y2},
		{"z1", &p.ZTop, opts.ZTop},
		{"z2", &p.ZBottom, opts.ZBottom},
		{"safe-z", &p.SafeZ, opts.SafeZ},
		{"tool-diameter", &p.ToolDiameter, opts.ToolDiameter},
		{"radial-doc", &p.RadialDepth, opts.RadialDepth},
		{"feed", &p.FeedRate, opts.FeedRate},
	}
	for _, f := range floats {
		if set(f.flag) {
			*f.dst = f.val
		}
	}
	if set("flutes") {
		p.Flutes = opts.Flutes
	}
	if set("axial-doc") {
		v, err := model.ParseAxialDepth(opts.AxialDepth)
		if err != nil {
			return job, err
		}
		p.AxialDepth = v
	}
	if set("row-step") {
		step, err := model.ParseStepPolicy(opts.RowStep)
		if err != nil {
			return job, err
		}
		p.RowStep = step
	}
	return job, nil
}

func loadCatalog(path string, log zerolog.Logger) (*model.Catalog, error) {
	if path == "" {
		return model.DefaultCatalog(), nil
	}
	result := importer.Import(path)
	for _, w := range result.Warnings {
		log.Warn().Str("catalog", path).Msg(w)
	}
	for _, e := range result.Errors {
		log.Error().Str("catalog", path).Msg(e)
	}
	return result.Catalog()
}

func run(args []string, stdout, stderr io.Writer) error {
	opts := &mainOptions{}
	fs := newFlagSet(opts, stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	catalog, err := loadCatalog(opts.CatalogPath, log)
	if err != nil {
		return err
	}
	custom, err := project.LoadCustomProfiles(opts.ProfilesPath)
	if err != nil {
		log.Warn().Err(err).Str("path", opts.ProfilesPath).Msg("ignoring custom profiles")
		custom = nil
	}

	if opts.ListMaterials {
		for _, m := range catalog.Materials() {
			fmt.Fprintf(stdout, "%-32s SFM %-6g UHP %-5g IPT %g-%g\n",
				m.Name, m.SurfaceFeetPerMinute, m.UnitHorsepower, m.FeedPerTooth.Min, m.FeedPerTooth.Max)
		}
		return nil
	}
	if opts.ListProfiles {
		for _, name := range model.GetProfileNames(custom) {
			p, _ := model.FindProfile(name, custom)
			fmt.Fprintf(stdout, "%-16s %s\n", name, p.Description)
		}
		return nil
	}

	job, err := buildJob(fs, opts)
	if err != nil {
		return err
	}
	log.Debug().Str("job", job.Name).Str("material", job.Material).Str("profile", job.Profile).Msg("job")

	out, err := gcode.RunJob(job, catalog, custom)
	if out.Derived.Material != "" {
		ev := log.Info()
		for _, line := range out.Derived.Summary() {
			ev = ev.Str(line.Label, line.Value)
		}
		ev.Msg("feeds and speeds")
	}
	if err != nil {
		return err
	}
	s := out.Stats
	log.Info().Int("passes", s.Passes).Int("rows", s.Rows).
		Str("cut", fmt.Sprintf("%.2f in", s.CutLength)).
		Dur("time", s.CutTime.Round(time.Second)).
		Float64("feed", out.Parameters.FeedRate).
		Msg("toolpath")

	if opts.OutPath == "-" || opts.OutPath == "" {
		if err := project.WriteGCode(stdout, out.Code); err != nil {
			return err
		}
	} else {
		if err := project.ExportGCode(opts.OutPath, out.Code); err != nil {
			return err
		}
		log.Info().Str("path", opts.OutPath).Msg("gcode written")
	}

	resolved := job
	resolved.Parameters = out.Parameters
	return writeExtras(opts, resolved, out, catalog, log)
}

// writeExtras produces the optional documents. Every requested document is
// attempted; failures are returned together.
func writeExtras(opts *mainOptions, job model.Job, out gcode.JobOutput, catalog *model.Catalog, log zerolog.Logger) error {
	var errs []error
	step := func(path, what string, write func() error) {
		if path == "" {
			return
		}
		if err := write(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
			return
		}
		log.Info().Str("path", path).Msg(what + " written")
	}

	step(opts.SetupSheet, "setup sheet", func() error {
		return export.ExportSetupSheet(opts.SetupSheet, export.SetupSheet{
			Job: job, Derived: out.Derived, Program: out.Program, GeneratedAt: time.Now(),
		})
	})
	step(opts.Labels, "label", func() error {
		return export.ExportLabels(opts.Labels, []model.Job{job})
	})
	step(opts.Chart, "feeds chart", func() error {
		return export.ExportFeedsChart(opts.Chart, catalog, job.Parameters)
	})
	step(opts.DXF, "toolpath DXF", func() error {
		_, err := export.ExportToolpathDXF(opts.DXF, out.Program)
		return err
	})
	step(opts.SaveJob, "job", func() error {
		return project.SaveJob(opts.SaveJob, job)
	})
	return errors.Join(errs...)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "facegen:", err)
		os.Exit(1)
	}
}
