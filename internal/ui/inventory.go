package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/facer/internal/model"
	"github.com/piwi3910/facer/internal/project"
)

// ─── Tool Inventory Dialog ─────────────────────────────────

func (a *App) showToolInventoryDialog() {
	toolList := container.NewVBox()
	var refreshList func()
	var d dialog.Dialog

	refreshList = func() {
		toolList.RemoveAll()

		if len(a.inventory.Tools) == 0 {
			toolList.Add(widget.NewLabel("No tool profiles defined."))
			return
		}

		header := container.NewGridWithColumns(8,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Diameter", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Flutes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Radial DOC", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Axial DOC", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(), layout.NewSpacer(), layout.NewSpacer(),
		)
		toolList.Add(header)
		toolList.Add(widget.NewSeparator())

		for i := range a.inventory.Tools {
			t := a.inventory.Tools[i]
			radial := "auto"
			if t.RadialDepth > 0 {
				radial = fmt.Sprintf("%g in", t.RadialDepth)
			}
			row := container.NewGridWithColumns(8,
				widget.NewLabel(t.Name),
				widget.NewLabel(fmt.Sprintf("%g in", t.ToolDiameter)),
				widget.NewLabel(strconv.Itoa(t.Flutes)),
				widget.NewLabel(radial),
				widget.NewLabel(fmt.Sprintf("%g in", t.AxialDepth)),
				newIconButtonWithTooltip(theme.ConfirmIcon(), "Use this tool", func() {
					a.applyInventoryTool(t.Name)
					d.Hide()
				}),
				newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit", func() {
					a.showToolDialog(t.ID, refreshList)
				}),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete", func() {
					a.inventory.RemoveTool(t.ID)
					a.saveInventory()
					refreshList()
				}),
			)
			toolList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Tool", theme.ContentAddIcon(), func() {
		a.showToolDialog("", refreshList)
	})

	saveCurrentBtn := widget.NewButtonWithIcon("Save Current Tool", theme.DocumentSaveIcon(), func() {
		p := a.job.Parameters
		name := fmt.Sprintf("%g\" %dFL", p.ToolDiameter, p.Flutes)
		a.inventory.Tools = append(a.inventory.Tools,
			model.NewToolProfile(name, p.ToolDiameter, p.Flutes, p.RadialDepth, p.AxialDepth))
		a.saveInventory()
		refreshList()
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})

	toolbar := container.NewHBox(addBtn, saveCurrentBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(toolList),
	)

	d = dialog.NewCustom("Tool Inventory", "Close", content, a.window)
	d.Resize(fyne.NewSize(760, 500))
	d.Show()
}

// showToolDialog edits the tool with the given ID, or adds a new tool when id is empty.
func (a *App) showToolDialog(id string, onDone func()) {
	tool := model.NewToolProfile("New End Mill", 0.25, 2, 0, 1.0/16.0)
	title, confirm := "Add Tool", "Add"
	if existing := a.inventory.FindToolByID(id); existing != nil {
		tool = *existing
		title, confirm = "Edit Tool", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(tool.Name)
	diameterEntry := widget.NewEntry()
	diameterEntry.SetText(formatNumber(tool.ToolDiameter))
	flutesEntry := widget.NewEntry()
	flutesEntry.SetText(strconv.Itoa(tool.Flutes))
	radialEntry := widget.NewEntry()
	radialEntry.SetText(formatNumber(tool.RadialDepth))
	axialEntry := widget.NewSelectEntry(AxialDepthLabels())
	axialEntry.SetText(FormatForm(model.CuttingParameters{AxialDepth: tool.AxialDepth}).AxialDepth)

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Tool Diameter (in)", diameterEntry),
			widget.NewFormItem("Flutes", flutesEntry),
			widget.NewFormItem("Radial DOC (in, 0=auto)", radialEntry),
			widget.NewFormItem("Axial DOC (in)", axialEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			updated, err := parseToolForm(tool, nameEntry.Text, diameterEntry.Text, flutesEntry.Text,
				radialEntry.Text, axialEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if existing := a.inventory.FindToolByID(updated.ID); existing != nil {
				*existing = updated
			} else {
				a.inventory.Tools = append(a.inventory.Tools, updated)
			}
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 320))
	form.Show()
}

// parseToolForm validates the tool dialog entries into tool.
func parseToolForm(tool model.ToolProfile, name, diameter, flutes, radial, axial string) (model.ToolProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return tool, fmt.Errorf("%w: tool name is required", model.ErrInvalidParameter)
	}
	p, err := ParseForm(FormValues{
		X1: "0", X2: "0", Y1: "0", Y2: "0", ZTop: "0", ZBottom: "0", SafeZ: "0", FeedRate: "0",
		ToolDiameter: diameter,
		Flutes:       flutes,
		RadialDepth:  radial,
		AxialDepth:   axial,
	})
	if err != nil {
		return tool, err
	}
	var errs []error
	if !(p.ToolDiameter > 0) {
		errs = append(errs, fmt.Errorf("%w: got %g", model.ErrToolDiameter, p.ToolDiameter))
	}
	if p.Flutes < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", model.ErrFluteCount, p.Flutes))
	}
	if p.RadialDepth < 0 {
		errs = append(errs, fmt.Errorf("%w: got %g", model.ErrRadialDepth, p.RadialDepth))
	}
	if !(p.AxialDepth > 0) {
		errs = append(errs, fmt.Errorf("%w: got %g", model.ErrAxialDepth, p.AxialDepth))
	}
	if err := errors.Join(errs...); err != nil {
		return tool, err
	}
	tool.Name = name
	tool.ToolDiameter = p.ToolDiameter
	tool.Flutes = p.Flutes
	tool.RadialDepth = p.RadialDepth
	tool.AxialDepth = p.AxialDepth
	return tool, nil
}

// ─── Inventory Persistence ─────────────────────────────────

func (a *App) saveInventory() {
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save inventory: %w", err), a.window)
	}
	a.refreshToolSelect()
}

// refreshToolSelect updates the saved tool select of the main form.
func (a *App) refreshToolSelect() {
	if a.form == nil {
		return
	}
	a.form.tool.Options = a.inventory.ToolNames()
	a.form.tool.Refresh()
}

func (a *App) importInventory(onDone func()) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		inv, added, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.inventory = inv
		a.saveInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Imported %d tool(s).", added), a.window)
	}, a.window)
	d.Show()
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.ExportInventory(path, a.inventory); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Tool inventory exported to:\n%s", path), a.window)
	}, a.window)
	d.SetFileName("facer-tools.json")
	d.Show()
}
