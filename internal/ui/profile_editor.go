package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/facer/internal/gcode"
	"github.com/piwi3910/facer/internal/model"
	"github.com/piwi3910/facer/internal/project"
)

// allProfiles returns the built-in profiles followed by the custom ones.
func (a *App) allProfiles() []model.GCodeProfile {
	all := append([]model.GCodeProfile{}, model.GCodeProfiles...)
	return append(all, a.customProfiles...)
}

// removeCustomProfile deletes a custom profile by name.
func (a *App) removeCustomProfile(name string) bool {
	for i, p := range a.customProfiles {
		if p.Name == name {
			a.customProfiles = append(a.customProfiles[:i], a.customProfiles[i+1:]...)
			return true
		}
	}
	return false
}

// addCustomProfile stores p, replacing a custom profile of the same name.
// Built-in names are reserved.
func (a *App) addCustomProfile(p model.GCodeProfile) error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile name cannot be empty", model.ErrInvalidParameter)
	}
	for _, b := range model.GCodeProfiles {
		if b.Name == p.Name {
			return fmt.Errorf("%w: %q is a built-in profile", model.ErrInvalidParameter, p.Name)
		}
	}
	p.IsBuiltIn = false
	a.customProfiles = project.AddCustomProfile(a.customProfiles, p)
	return nil
}

// showProfileManager opens the profile management window where users can
// view, create, edit, duplicate, delete, import, and export GCode profiles.
func (a *App) showProfileManager() {
	w := a.app.NewWindow("GCode Profile Manager")
	w.Resize(fyne.NewSize(720, 520))

	var listWidget *widget.List
	selectedIdx := -1
	profiles := a.allProfiles()

	detailContainer := container.NewVBox(
		widget.NewLabel("Select a profile to view details."),
	)
	resetDetail := func() {
		detailContainer.RemoveAll()
		detailContainer.Add(widget.NewLabel("Select a profile to view details."))
		detailContainer.Refresh()
	}
	reload := func() {
		profiles = a.allProfiles()
		selectedIdx = -1
		listWidget.UnselectAll()
		listWidget.Refresh()
		resetDetail()
		a.refreshProfileSelect()
	}

	listWidget = widget.NewList(
		func() int {
			return len(profiles)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Profile Name"),
				layout.NewSpacer(),
				widget.NewLabel("(built-in)"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			nameLabel := box.Objects[1].(*widget.Label)
			tagLabel := box.Objects[3].(*widget.Label)
			p := profiles[id]
			nameLabel.SetText(p.Name)
			if p.IsBuiltIn {
				tagLabel.SetText("(built-in)")
			} else {
				tagLabel.SetText("(custom)")
			}
		},
	)

	listWidget.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
		a.showProfileDetail(detailContainer, profiles[id], w, reload)
	}

	selected := func(action string) (model.GCodeProfile, bool) {
		if selectedIdx < 0 || selectedIdx >= len(profiles) {
			dialog.ShowInformation("No Selection", "Select a profile to "+action+".", w)
			return model.GCodeProfile{}, false
		}
		return profiles[selectedIdx], true
	}

	newBtn := widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() {
		a.showNameProfileDialog("New Custom Profile", "", model.GetProfile(model.DefaultProfileName), w, reload)
	})

	duplicateBtn := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), func() {
		if p, ok := selected("duplicate"); ok {
			a.showNameProfileDialog("Duplicate Profile", p.Name+" (Copy)", p, w, reload)
		}
	})

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		a.importProfileDialog(w, reload)
	})

	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		if p, ok := selected("export"); ok {
			a.exportProfileDialog(p, w)
		}
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		p, ok := selected("delete")
		if !ok {
			return
		}
		if p.IsBuiltIn {
			dialog.ShowInformation("Cannot Delete", "Built-in profiles cannot be deleted.", w)
			return
		}
		dialog.ShowConfirm("Delete Profile",
			fmt.Sprintf("Delete custom profile %q?", p.Name),
			func(ok bool) {
				if !ok {
					return
				}
				a.removeCustomProfile(p.Name)
				a.persistCustomProfiles(w)
				reload()
			},
			w,
		)
	})

	toolbar := container.NewHBox(newBtn, duplicateBtn, importBtn, exportBtn, deleteBtn)

	listPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		toolbar,
		nil, nil,
		listWidget,
	)

	detailPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profile Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(detailContainer),
	)

	split := container.NewHSplit(listPanel, detailPanel)
	split.SetOffset(0.35)

	w.SetContent(split)
	w.Show()
}

// numberFormat describes how a profile prints coordinates.
func numberFormat(p model.GCodeProfile) string {
	if p.SignificantDigits > 0 {
		return fmt.Sprintf("%d significant digits", p.SignificantDigits)
	}
	return fmt.Sprintf("%d decimal places", p.DecimalPlaces)
}

// showProfileDetail populates the detail pane with profile information and an edit button.
func (a *App) showProfileDetail(c *fyne.Container, p model.GCodeProfile, w fyne.Window, onChanged func()) {
	c.RemoveAll()

	bold := fyne.TextStyle{Bold: true}
	info := container.NewVBox(
		widget.NewLabelWithStyle(p.Name, fyne.TextAlignLeading, bold),
		widget.NewLabel(p.Description),
		widget.NewSeparator(),

		container.NewGridWithColumns(2,
			widget.NewLabelWithStyle("Units:", fyne.TextAlignLeading, bold),
			widget.NewLabel(p.Units),
			widget.NewLabelWithStyle("Numbers:", fyne.TextAlignLeading, bold),
			widget.NewLabel(numberFormat(p)),
		),

		widget.NewSeparator(),
		widget.NewLabelWithStyle("Commands", fyne.TextAlignLeading, bold),
		container.NewGridWithColumns(2,
			widget.NewLabel("Rapid Move:"), widget.NewLabel(p.RapidMove),
			widget.NewLabel("Feed Move:"), widget.NewLabel(p.FeedMove),
			widget.NewLabel("Spindle Start:"), widget.NewLabel(p.SpindleStart),
			widget.NewLabel("Spindle Stop:"), widget.NewLabel(p.SpindleStop),
		),

		widget.NewSeparator(),
		widget.NewLabelWithStyle("Comments", fyne.TextAlignLeading, bold),
		container.NewGridWithColumns(2,
			widget.NewLabel("Prefix:"), widget.NewLabel(fmt.Sprintf("%q", p.CommentPrefix)),
			widget.NewLabel("Suffix:"), widget.NewLabel(fmt.Sprintf("%q", p.CommentSuffix)),
			widget.NewLabel("Per motion:"), widget.NewLabel(strconv.FormatBool(p.MotionComments)),
			widget.NewLabel("Job header:"), widget.NewLabel(strconv.FormatBool(p.HeaderComments)),
		),

		widget.NewSeparator(),
		widget.NewLabelWithStyle("Start Code", fyne.TextAlignLeading, bold),
		widget.NewLabel(strings.Join(p.StartCode, "\n")),
		widget.NewLabelWithStyle("End Code", fyne.TextAlignLeading, bold),
		widget.NewLabel(strings.Join(p.EndCode, "\n")),
	)

	if !p.IsBuiltIn {
		editBtn := widget.NewButtonWithIcon("Edit Profile", theme.DocumentCreateIcon(), func() {
			a.showEditProfileDialog(p, onChanged)
		})
		c.Add(editBtn)
	} else {
		c.Add(widget.NewLabel("Built-in profiles are read-only. Duplicate to customize."))
	}

	c.Add(info)
	c.Refresh()
}

// showNameProfileDialog creates a custom profile named by the user from a copy of source.
func (a *App) showNameProfileDialog(title, name string, source model.GCodeProfile, w fyne.Window, onCreated func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(name)
	nameEntry.SetPlaceHolder("My Custom Profile")

	form := dialog.NewForm(title, "Create", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Profile Name", nameEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			dup := source
			dup.Name = strings.TrimSpace(nameEntry.Text)
			dup.Description = "Copy of " + source.Name
			dup.StartCode = append([]string(nil), source.StartCode...)
			dup.EndCode = append([]string(nil), source.EndCode...)

			if err := a.addCustomProfile(dup); err != nil {
				dialog.ShowError(err, w)
				return
			}
			a.persistCustomProfiles(w)
			onCreated()
		},
		w,
	)
	form.Resize(fyne.NewSize(400, 150))
	form.Show()
}

// profilePreview renders a one-row facing program with p.
func profilePreview(p model.GCodeProfile) string {
	params := model.DefaultParameters()
	params.ZBottom = params.ZTop - params.AxialDepth
	params.Boundary.Y2 = params.Boundary.Y1 + params.RadialDepth/2
	prog, err := gcode.GenerateFacingProgram(params)
	if err != nil {
		return err.Error()
	}
	r := &gcode.Renderer{Profile: p, SpindleRPM: 1375, Header: []string{"Sample facing pass"}}
	code, err := r.Render(prog)
	if err != nil {
		return err.Error()
	}
	return code
}

// showEditProfileDialog shows a tabbed editor for a custom profile.
func (a *App) showEditProfileDialog(p model.GCodeProfile, onSaved func()) {
	editWindow := a.app.NewWindow("Edit Profile: " + p.Name)

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)
	descEntry := widget.NewEntry()
	descEntry.SetText(p.Description)
	unitsSelect := widget.NewSelect([]string{"inches", "mm"}, nil)
	unitsSelect.SetSelected(p.Units)
	decimalEntry := widget.NewEntry()
	decimalEntry.SetText(strconv.Itoa(p.DecimalPlaces))
	digitsEntry := widget.NewEntry()
	digitsEntry.SetText(strconv.Itoa(p.SignificantDigits))

	rapidEntry := widget.NewEntry()
	rapidEntry.SetText(p.RapidMove)
	feedEntry := widget.NewEntry()
	feedEntry.SetText(p.FeedMove)
	spindleStartEntry := widget.NewEntry()
	spindleStartEntry.SetText(p.SpindleStart)
	spindleStopEntry := widget.NewEntry()
	spindleStopEntry.SetText(p.SpindleStop)

	commentPrefixEntry := widget.NewEntry()
	commentPrefixEntry.SetText(p.CommentPrefix)
	commentSuffixEntry := widget.NewEntry()
	commentSuffixEntry.SetText(p.CommentSuffix)
	motionCommentsCheck := widget.NewCheck("Comment on every motion", nil)
	motionCommentsCheck.SetChecked(p.MotionComments)
	headerCommentsCheck := widget.NewCheck("Job summary at the top", nil)
	headerCommentsCheck.SetChecked(p.HeaderComments)

	startCodeEntry := widget.NewMultiLineEntry()
	startCodeEntry.SetText(strings.Join(p.StartCode, "\n"))
	startCodeEntry.SetMinRowsVisible(4)
	endCodeEntry := widget.NewMultiLineEntry()
	endCodeEntry.SetText(strings.Join(p.EndCode, "\n"))
	endCodeEntry.SetMinRowsVisible(4)

	build := func() (model.GCodeProfile, error) {
		name := strings.TrimSpace(nameEntry.Text)
		if name == "" {
			return model.GCodeProfile{}, fmt.Errorf("profile name cannot be empty")
		}
		decimals, err := strconv.Atoi(strings.TrimSpace(decimalEntry.Text))
		if err != nil || decimals < 0 || decimals > 10 {
			return model.GCodeProfile{}, fmt.Errorf("decimal places must be a number between 0 and 10")
		}
		digits, err := strconv.Atoi(strings.TrimSpace(digitsEntry.Text))
		if err != nil || digits < 0 || digits > 15 {
			return model.GCodeProfile{}, fmt.Errorf("significant digits must be a number between 0 and 15")
		}
		return model.GCodeProfile{
			Name:              name,
			Description:       descEntry.Text,
			Units:             unitsSelect.Selected,
			StartCode:         splitLines(startCodeEntry.Text),
			SpindleStart:      strings.TrimSpace(spindleStartEntry.Text),
			SpindleStop:       strings.TrimSpace(spindleStopEntry.Text),
			RapidMove:         strings.TrimSpace(rapidEntry.Text),
			FeedMove:          strings.TrimSpace(feedEntry.Text),
			EndCode:           splitLines(endCodeEntry.Text),
			CommentPrefix:     commentPrefixEntry.Text,
			CommentSuffix:     commentSuffixEntry.Text,
			MotionComments:    motionCommentsCheck.Checked,
			HeaderComments:    headerCommentsCheck.Checked,
			DecimalPlaces:     decimals,
			SignificantDigits: digits,
		}, nil
	}

	previewText := widget.NewMultiLineEntry()
	previewText.TextStyle = fyne.TextStyle{Monospace: true}
	previewText.SetMinRowsVisible(12)
	updatePreview := func() {
		updated, err := build()
		if err != nil {
			previewText.SetText(err.Error())
			return
		}
		previewText.SetText(profilePreview(updated))
	}
	updatePreview()

	generalTab := container.NewTabItem("General", container.NewGridWithColumns(2,
		widget.NewLabel("Name"), nameEntry,
		widget.NewLabel("Description"), descEntry,
		widget.NewLabel("Units"), unitsSelect,
		widget.NewLabel("Decimal Places"), decimalEntry,
		widget.NewLabel("Significant Digits (0=fixed)"), digitsEntry,
	))

	motionTab := container.NewTabItem("Commands", container.NewGridWithColumns(2,
		widget.NewLabel("Rapid Move Command"), rapidEntry,
		widget.NewLabel("Feed Move Command"), feedEntry,
		widget.NewLabel("Spindle Start (use %d for RPM)"), spindleStartEntry,
		widget.NewLabel("Spindle Stop"), spindleStopEntry,
	))

	commentsTab := container.NewTabItem("Comments", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Comment Prefix"), commentPrefixEntry,
			widget.NewLabel("Comment Suffix"), commentSuffixEntry,
		),
		motionCommentsCheck,
		headerCommentsCheck,
	))

	codeTab := container.NewTabItem("Start/End Code", container.NewVBox(
		widget.NewLabelWithStyle("Start Code (one command per line)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		startCodeEntry,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("End Code (one command per line, [SafeZ] is replaced)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		endCodeEntry,
	))

	previewTab := container.NewTabItem("Preview", container.NewBorder(
		widget.NewButtonWithIcon("Refresh Preview", theme.ViewRefreshIcon(), updatePreview),
		nil, nil, nil,
		previewText,
	))

	tabs := container.NewAppTabs(generalTab, motionTab, commentsTab, codeTab, previewTab)
	tabs.OnSelected = func(item *container.TabItem) {
		if item == previewTab {
			updatePreview()
		}
	}

	saveBtn := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		updated, err := build()
		if err != nil {
			dialog.ShowError(err, editWindow)
			return
		}
		if updated.Name != p.Name {
			a.removeCustomProfile(p.Name)
		}
		if err := a.addCustomProfile(updated); err != nil {
			dialog.ShowError(err, editWindow)
			return
		}
		a.persistCustomProfiles(editWindow)
		onSaved()
		editWindow.Close()
	})
	saveBtn.Importance = widget.HighImportance

	content := container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), saveBtn),
		nil, nil,
		tabs,
	)

	editWindow.SetContent(content)
	editWindow.Resize(fyne.NewSize(620, 520))
	editWindow.Show()
}

// importProfileDialog opens a file dialog to import a profile from JSON.
func (a *App) importProfileDialog(w fyne.Window, onImported func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		profile, err := project.ImportProfile(reader.URI().Path())
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to import profile: %w", err), w)
			return
		}
		if err := a.addCustomProfile(profile); err != nil {
			dialog.ShowError(err, w)
			return
		}
		a.persistCustomProfiles(w)
		onImported()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Profile %q imported successfully.", profile.Name), w)
	}, w)
}

// exportProfileDialog opens a file save dialog to export a profile to JSON.
func (a *App) exportProfileDialog(p model.GCodeProfile, w fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.ExportProfile(writer.URI().Path(), p); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export profile: %w", err), w)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Profile %q exported successfully.", p.Name), w)
	}, w)
	d.SetFileName(strings.ReplaceAll(strings.ToLower(p.Name), " ", "_") + "_profile.json")
	d.Show()
}

// persistCustomProfiles saves the current custom profiles to disk.
func (a *App) persistCustomProfiles(w fyne.Window) {
	if err := project.SaveCustomProfiles(a.profilesPath, a.customProfiles); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save profiles: %w", err), w)
	}
}

// refreshProfileSelect updates the profile select of the main form.
func (a *App) refreshProfileSelect() {
	if a.form == nil {
		return
	}
	a.form.profile.Options = model.GetProfileNames(a.customProfiles)
	a.form.profile.Refresh()
}

// splitLines splits a multiline string into non-empty lines.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	var lines []string
	for _, line := range raw {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
