package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/facer/internal/gcode"
	"github.com/piwi3910/facer/internal/model"
)

// facingForm groups the input widgets of the main window.
type facingForm struct {
	name     *widget.Entry
	material *widget.Select
	profile  *widget.Select
	tool     *widget.Select

	x1, x2, y1, y2        *widget.Entry
	zTop, zBottom, safeZ  *widget.Entry
	toolDiameter, flutes  *widget.Entry
	radialDepth, feedRate *widget.Entry
	axialDepth            *widget.SelectEntry
	rowStep               *widget.Select
}

// rowStepLabels maps select labels to step policies.
func rowStepLabels() []string {
	labels := make([]string, len(model.StepPolicies))
	for i, p := range model.StepPolicies {
		labels[i] = p.String()
	}
	return labels
}

func rowStepFromLabel(label string) string {
	for _, p := range model.StepPolicies {
		if p.String() == label {
			return string(p)
		}
	}
	return label
}

func (a *App) newFacingForm() *facingForm {
	f := &facingForm{}

	numEntry := func(field string) *widget.Entry {
		e := widget.NewEntry()
		e.OnChanged = func(string) { a.onFormEdited(field) }
		return e
	}

	f.name = numEntry("Job Name")
	f.name.SetPlaceHolder("Job name")

	f.material = widget.NewSelect(a.catalog.Names(), func(string) { a.onFormEdited("Material") })
	f.profile = widget.NewSelect(model.GetProfileNames(a.customProfiles), func(string) { a.onFormEdited("Profile") })
	f.tool = widget.NewSelect(a.inventory.ToolNames(), a.applyInventoryTool)
	f.tool.PlaceHolder = "(apply a saved tool)"

	f.x1, f.x2 = numEntry("X1"), numEntry("X2")
	f.y1, f.y2 = numEntry("Y1"), numEntry("Y2")
	f.zTop, f.zBottom = numEntry("Z1"), numEntry("Z2")
	f.safeZ = numEntry("Safe Z")
	f.toolDiameter = numEntry("Tool Diameter")
	f.flutes = numEntry("Flutes")
	f.radialDepth = numEntry("Radial DOC")
	f.feedRate = numEntry("Feed")

	f.axialDepth = widget.NewSelectEntry(AxialDepthLabels())
	f.axialDepth.OnChanged = func(string) { a.onFormEdited("Axial DOC") }
	f.rowStep = widget.NewSelect(rowStepLabels(), func(string) { a.onFormEdited("Row Stepping") })
	return f
}

func (f *facingForm) container() fyne.CanvasObject {
	job := widget.NewForm(
		widget.NewFormItem("Name", f.name),
		widget.NewFormItem("Material", f.material),
		widget.NewFormItem("Profile", f.profile),
	)

	area := widget.NewForm(
		widget.NewFormItem("X1", f.x1),
		widget.NewFormItem("X2", f.x2),
		widget.NewFormItem("Y1", f.y1),
		widget.NewFormItem("Y2", f.y2),
		widget.NewFormItem("Z1 (top)", f.zTop),
		widget.NewFormItem("Z2 (bottom)", f.zBottom),
		widget.NewFormItem("Safe Z", f.safeZ),
	)

	tool := widget.NewForm(
		widget.NewFormItem("Saved tool", f.tool),
		widget.NewFormItem("Diameter (in)", f.toolDiameter),
		widget.NewFormItem("Flutes", f.flutes),
		widget.NewFormItem("Radial DOC (in)", f.radialDepth),
		widget.NewFormItem("Axial DOC (in)", f.axialDepth),
		widget.NewFormItem("Feed (in/min)", f.feedRate),
		widget.NewFormItem("Row stepping", f.rowStep),
	)

	return container.NewVBox(
		widget.NewCard("Job", "", job),
		widget.NewCard("Area", "Rectangle and depth to face", area),
		widget.NewCard("Tool", "", tool),
	)
}

// values reads the numeric part of the form.
func (f *facingForm) values() FormValues {
	return FormValues{
		X1:           f.x1.Text,
		X2:           f.x2.Text,
		Y1:           f.y1.Text,
		Y2:           f.y2.Text,
		ZTop:         f.zTop.Text,
		ZBottom:      f.zBottom.Text,
		SafeZ:        f.safeZ.Text,
		ToolDiameter: f.toolDiameter.Text,
		Flutes:       f.flutes.Text,
		RadialDepth:  f.radialDepth.Text,
		AxialDepth:   f.axialDepth.Text,
		FeedRate:     f.feedRate.Text,
		RowStep:      rowStepFromLabel(f.rowStep.Selected),
	}
}

func (f *facingForm) set(job model.Job) {
	v := FormatForm(job.Parameters)
	f.name.SetText(job.Name)
	f.material.SetSelected(job.Material)
	f.profile.SetSelected(job.Profile)
	f.x1.SetText(v.X1)
	f.x2.SetText(v.X2)
	f.y1.SetText(v.Y1)
	f.y2.SetText(v.Y2)
	f.zTop.SetText(v.ZTop)
	f.zBottom.SetText(v.ZBottom)
	f.safeZ.SetText(v.SafeZ)
	f.toolDiameter.SetText(v.ToolDiameter)
	f.flutes.SetText(v.Flutes)
	f.radialDepth.SetText(v.RadialDepth)
	f.axialDepth.SetText(v.AxialDepth)
	f.feedRate.SetText(v.FeedRate)
	f.rowStep.SetSelected(job.Parameters.RowStep.String())
}

// loadJobIntoForm replaces the form contents without recording history.
func (a *App) loadJobIntoForm(job model.Job) {
	a.filling = true
	a.form.set(job)
	a.filling = false
	a.job = job
	a.lastEdit = ""
	a.recompute()
}

// onFormEdited rebuilds the job from the form. Consecutive edits of the
// same field collapse into one undo step.
func (a *App) onFormEdited(field string) {
	if a.filling || a.form == nil {
		return
	}
	params, err := ParseForm(a.form.values())
	if err != nil {
		a.setStatus(err, "")
		a.clearOutput()
		return
	}

	next := model.Job{
		Name:       strings.TrimSpace(a.form.name.Text),
		Material:   a.form.material.Selected,
		Profile:    a.form.profile.Selected,
		Parameters: params,
	}
	if next == a.job {
		return
	}
	if field != a.lastEdit {
		a.history.Push(MakeSnapshot(a.job, field))
	}
	a.lastEdit = field
	a.job = next
	a.recompute()
	a.updateHistoryButtons()
}

// recompute refreshes the indicators for the current job and marks any
// generated program as stale.
func (a *App) recompute() {
	a.clearOutput()
	derived, err := a.job.Parameters.Derive(a.catalog, a.job.Material)
	if err != nil {
		for _, l := range a.indicators {
			l.SetText("-")
		}
		a.setStatus(err, "")
		return
	}
	for i, line := range derived.Summary() {
		if i < len(a.indicators) {
			a.indicators[i].SetText(line.Value)
		}
	}
	a.setStatus(nil, "%s: %.0f RPM", a.job.Material, derived.SpindleRPM)
}

func (a *App) clearOutput() {
	a.output = gcode.JobOutput{}
	if a.gcodeText != nil {
		a.gcodeText.SetText("")
	}
	if a.preview != nil {
		a.preview.Clear()
	}
	if a.statsLabel != nil {
		a.statsLabel.SetText("")
	}
}

// generate runs the current job and shows its program.
func (a *App) generate() {
	out, err := gcode.RunJob(a.job, a.catalog, a.customProfiles)
	if err != nil {
		a.clearOutput()
		a.setStatus(err, "")
		return
	}
	a.output = out
	a.gcodeText.SetText(out.Code)
	a.preview.SetProgram(out.Program, out.Parameters.Boundary)
	s := out.Stats
	a.statsLabel.SetText(fmt.Sprintf("%d passes, %d rows, cut %.2f in, rapid %.2f in, est. %s",
		s.Passes, s.Rows, s.CutLength, s.RapidLength, s.CutTime.Round(time.Second)))
	a.log.Info().Str("job", a.job.Name).Int("motions", out.Program.Len()).Msg("generated facing program")
	a.setStatus(nil, "Generated %d lines at %g in/min", strings.Count(out.Code, "\n"), out.Parameters.FeedRate)
}

// ensureOutput generates the program when the last one is stale.
func (a *App) ensureOutput() bool {
	if a.output.Code == "" {
		a.generate()
	}
	return a.output.Code != ""
}

func (a *App) undo() {
	prev, ok := a.history.Undo(MakeSnapshot(a.job, a.history.UndoLabel()))
	if !ok {
		return
	}
	a.loadJobIntoForm(prev.Job)
	a.updateHistoryButtons()
	a.setStatus(nil, "Undid %s", prev.Label)
}

func (a *App) redo() {
	next, ok := a.history.Redo(MakeSnapshot(a.job, "redo"))
	if !ok {
		return
	}
	a.loadJobIntoForm(next.Job)
	a.updateHistoryButtons()
}

func (a *App) updateHistoryButtons() {
	if a.undoBtn == nil {
		return
	}
	if a.history.CanUndo() {
		a.undoBtn.Enable()
	} else {
		a.undoBtn.Disable()
	}
	if a.history.CanRedo() {
		a.redoBtn.Enable()
	} else {
		a.redoBtn.Disable()
	}
}

// setParameters records an edit made outside the form and reloads it.
func (a *App) setParameters(label string, p model.CuttingParameters) {
	a.history.Push(MakeSnapshot(a.job, label))
	job := a.job
	job.Parameters = p
	a.loadJobIntoForm(job)
	a.updateHistoryButtons()
}

// useComputedFeed sets the feed entry to the low end of the computed range.
func (a *App) useComputedFeed() {
	derived, err := a.job.Parameters.Derive(a.catalog, a.job.Material)
	if err != nil {
		a.setStatus(err, "")
		return
	}
	p := a.job.Parameters
	p.FeedRate = derived.FeedRate.Min
	a.setParameters("Use Computed Feed", p)
}

// resetRadialDepth restores the radial step-over suggested for the tool.
func (a *App) resetRadialDepth() {
	p := a.job.Parameters
	p.RadialDepth = model.DefaultRadialDepth(p.ToolDiameter)
	a.setParameters("Reset Radial DOC", p)
}

// applyInventoryTool copies a saved tool into the form.
func (a *App) applyInventoryTool(name string) {
	if a.filling || name == "" {
		return
	}
	tool := a.inventory.FindToolByName(name)
	if tool == nil {
		return
	}
	a.setParameters("Apply Tool", tool.ApplyToParameters(a.job.Parameters))
	a.log.Info().Str("tool", tool.Name).Msg("applied inventory tool")
	a.filling = true
	a.form.tool.ClearSelected()
	a.filling = false
}
