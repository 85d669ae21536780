package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/piwi3910/facer/internal/export"
	"github.com/piwi3910/facer/internal/importer"
	"github.com/piwi3910/facer/internal/model"
	"github.com/piwi3910/facer/internal/project"
)

// ─── Job Files ─────────────────────────────────────────────

func (a *App) newJob() {
	a.history.Push(MakeSnapshot(a.job, "New Job"))
	a.jobPath = ""
	a.loadJobIntoForm(a.config.NewJob())
	a.updateHistoryButtons()
	a.window.SetTitle("Facer")
}

func (a *App) openJob() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openJobPath(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
	d.Show()
}

func (a *App) openJobPath(path string) {
	job, err := project.LoadJob(path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to open job: %w", err), a.window)
		return
	}
	if _, err := a.catalog.Lookup(job.Material); err != nil {
		a.log.Warn().Str("material", job.Material).Msg("job material is not in the loaded catalog")
	}
	a.history.Push(MakeSnapshot(a.job, "Open Job"))
	a.jobPath = path
	a.loadJobIntoForm(job)
	a.updateHistoryButtons()
	a.rememberJob(path)
	a.log.Info().Str("path", path).Msg("job opened")
}

func (a *App) saveJob() {
	if a.jobPath == "" {
		a.saveJobAs()
		return
	}
	a.saveJobTo(a.jobPath)
}

func (a *App) saveJobAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		a.saveJobTo(path)
	}, a.window)
	d.SetFileName(jobFileName(a.job.Name, project.JobExtension))
	d.Show()
}

func (a *App) saveJobTo(path string) {
	if err := project.SaveJob(path, a.job); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save job: %w", err), a.window)
		return
	}
	a.jobPath = path
	a.rememberJob(path)
	a.setStatus(nil, "Saved %s", filepath.Base(path))
}

// rememberJob records path in the recent list and updates the window title.
func (a *App) rememberJob(path string) {
	a.config.AddRecentJob(path)
	if err := a.saveConfig(); err != nil {
		a.log.Warn().Err(err).Msg("failed to save recent jobs")
	}
	a.refreshRecentMenu()
	a.window.SetTitle("Facer - " + filepath.Base(path))
}

func (a *App) refreshRecentMenu() {
	if a.recentMenu == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentJobs {
		p := path
		items = append(items, fyne.NewMenuItem(filepath.Base(p), func() { a.openJobPath(p) }))
	}
	if len(items) == 0 {
		disabled := fyne.NewMenuItem("(none)", nil)
		disabled.Disabled = true
		items = append(items, disabled)
	}
	a.recentMenu.ChildMenu = fyne.NewMenu("", items...)
	if menu := a.window.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

// jobFileName turns a job name into a file name with ext.
func jobFileName(name, ext string) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = "facing"
	}
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>| `, r) {
			return '_'
		}
		return r
	}, base)
	return base + ext
}

// ─── Imports ───────────────────────────────────────────────

func (a *App) importCatalog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()

		result := importer.Import(path)
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("catalog import failed:\n%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		if err := a.switchCatalog(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config.CatalogPath = path
		if err := a.saveConfig(); err != nil {
			a.log.Warn().Err(err).Msg("failed to remember catalog path")
		}
		msg := fmt.Sprintf("Imported %d materials.", len(result.Materials))
		if len(result.Warnings) > 0 {
			msg += "\n\nWarnings:\n" + strings.Join(result.Warnings, "\n")
		}
		dialog.ShowInformation("Catalog Imported", msg, a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".txt", ".xlsx", ".xlsm"}))
	d.Show()
}

// importBoundaryDXF sets the facing rectangle to the extents of a stock outline drawing.
func (a *App) importBoundaryDXF() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportBoundaryDXF(reader.URI().Path())
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		for _, w := range result.Warnings {
			a.log.Warn().Str("path", reader.URI().Path()).Msg(w)
		}
		p := a.job.Parameters
		p.Boundary = result.Boundary
		a.setParameters("Import Boundary", p)
		b := result.Boundary
		a.setStatus(nil, "Boundary X%g..%g Y%g..%g from %d entities", b.X1, b.X2, b.Y1, b.Y2, result.Entities)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".dxf"}))
	d.Show()
}

// ─── Exports ───────────────────────────────────────────────

// writeGCode saves the generated program, generating it first when stale.
func (a *App) writeGCode() {
	if !a.ensureOutput() {
		return
	}
	code := a.output.Code
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.WriteGCode(writer, code); err != nil {
			dialog.ShowError(fmt.Errorf("failed to write GCode: %w", err), a.window)
			return
		}
		a.log.Info().Str("path", writer.URI().Path()).Msg("gcode written")
		a.setStatus(nil, "GCode written to %s", writer.URI().Name())
	}, a.window)
	d.SetFileName(jobFileName(a.job.Name, ".nc"))
	d.Show()
}

// exportTo asks for a destination and runs write with its path.
func (a *App) exportTo(fileName, what string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export %s: %w", what, err), a.window)
			return
		}
		a.log.Info().Str("path", path).Msg(what + " exported")
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s exported to:\n%s", what, path), a.window)
	}, a.window)
	d.SetFileName(fileName)
	d.Show()
}

func (a *App) exportSetupSheet() {
	if !a.ensureOutput() {
		return
	}
	sheet := export.SetupSheet{
		Job:         a.job,
		Derived:     a.output.Derived,
		Program:     a.output.Program,
		GeneratedAt: time.Now(),
	}
	sheet.Job.Parameters = a.output.Parameters
	a.exportTo(jobFileName(a.job.Name, "-setup.pdf"), "Setup sheet", func(path string) error {
		return export.ExportSetupSheet(path, sheet)
	})
}

func (a *App) exportLabel() {
	jobs := []model.Job{a.job}
	a.exportTo(jobFileName(a.job.Name, "-label.pdf"), "Job label", func(path string) error {
		return export.ExportLabels(path, jobs)
	})
}

func (a *App) exportFeedsChart() {
	catalog, params := a.catalog, a.job.Parameters
	a.exportTo("feeds-and-speeds.xlsx", "Feeds chart", func(path string) error {
		return export.ExportFeedsChart(path, catalog, params)
	})
}

func (a *App) exportToolpathDXF() {
	if !a.ensureOutput() {
		return
	}
	prog := a.output.Program
	a.exportTo(jobFileName(a.job.Name, "-toolpath.dxf"), "Toolpath", func(path string) error {
		lines, err := export.ExportToolpathDXF(path, prog)
		a.log.Debug().Int("lines", lines).Msg("dxf toolpath")
		return err
	})
}
