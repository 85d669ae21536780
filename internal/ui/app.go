// Package ui provides the facing calculator desktop UI.
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/piwi3910/facer/internal/gcode"
	"github.com/piwi3910/facer/internal/importer"
	"github.com/piwi3910/facer/internal/model"
	"github.com/piwi3910/facer/internal/project"
	"github.com/piwi3910/facer/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	log    zerolog.Logger
	theme  *FacerTheme

	config         model.AppConfig
	configPath     string
	catalog        *model.Catalog
	inventory      model.Inventory
	inventoryPath  string
	customProfiles []model.GCodeProfile
	profilesPath   string

	job     model.Job
	jobPath string
	output  gcode.JobOutput // last generated program, empty when stale
	history *History

	// filling suppresses change handlers while the form is populated programmatically
	filling  bool
	lastEdit string // field of the previous form edit

	form       *facingForm
	indicators []*widget.Label
	gcodeText  *widget.Entry
	statsLabel *widget.Label
	status     *widget.Label
	preview    *widgets.ToolpathPreview
	undoBtn    fyne.Disableable
	redoBtn    fyne.Disableable
	recentMenu *fyne.MenuItem
}

// NewApp loads the persisted configuration, material catalog, tool
// inventory and custom profiles. Load failures fall back to defaults and
// are logged.
func NewApp(application fyne.App, window fyne.Window, log zerolog.Logger) *App {
	a := &App{
		app:          application,
		window:       window,
		log:          log,
		configPath:   project.DefaultConfigPath(),
		profilesPath: project.DefaultProfilesPath(),
		history:      NewHistory(),
	}

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		a.log.Warn().Err(err).Str("path", a.configPath).Msg("config unreadable, using defaults")
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg

	a.catalog = model.DefaultCatalog()
	if cfg.CatalogPath != "" {
		if c, err := loadCatalog(cfg.CatalogPath); err != nil {
			a.log.Warn().Err(err).Str("path", cfg.CatalogPath).Msg("custom catalog unavailable, using built-in")
		} else {
			a.catalog = c
		}
	}

	inv, invPath, err := project.LoadOrCreateInventory()
	if err != nil {
		a.log.Warn().Err(err).Msg("inventory unavailable")
	}
	a.inventory, a.inventoryPath = inv, invPath

	profiles, err := project.LoadCustomProfiles(a.profilesPath)
	if err != nil {
		a.log.Warn().Err(err).Str("path", a.profilesPath).Msg("custom profiles unreadable")
	}
	a.customProfiles = profiles

	a.job = cfg.NewJob()
	if _, err := a.catalog.Lookup(a.job.Material); err != nil {
		a.job.Material = a.catalog.Names()[0]
	}

	a.theme = NewFacerTheme(cfg.Theme)
	application.Settings().SetTheme(a.theme)
	return a
}

// loadCatalog imports a CSV or Excel material table.
func loadCatalog(path string) (*model.Catalog, error) {
	result := importer.Import(path)
	if len(result.Errors) > 0 && len(result.Materials) == 0 {
		return nil, fmt.Errorf("%s", result.Errors[0])
	}
	return result.Catalog()
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	a.recentMenu = fyne.NewMenuItem("Open Recent", nil)
	a.refreshRecentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Job", a.newJob),
		fyne.NewMenuItem("Open Job...", a.openJob),
		a.recentMenu,
		fyne.NewMenuItem("Save Job", a.saveJob),
		fyne.NewMenuItem("Save Job As...", a.saveJobAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Material Catalog...", a.importCatalog),
		fyne.NewMenuItem("Import Boundary from DXF...", a.importBoundaryDXF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Write GCode...", a.writeGCode),
		fyne.NewMenuItem("Export Setup Sheet (PDF)...", a.exportSetupSheet),
		fyne.NewMenuItem("Export Job Label (PDF)...", a.exportLabel),
		fyne.NewMenuItem("Export Feeds Chart (Excel)...", a.exportFeedsChart),
		fyne.NewMenuItem("Export Toolpath (DXF)...", a.exportToolpathDXF),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Use Computed Feed", a.useComputedFeed),
		fyne.NewMenuItem("Reset Radial DOC", a.resetRadialDepth),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", a.showSettingsDialog),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Generate GCode", a.generate),
		fyne.NewMenuItem("Feeds Table...", a.showFeedsTable),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Tool Inventory...", a.showToolInventoryDialog),
		fyne.NewMenuItem("GCode Profiles...", a.showProfileManager),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
	a.setupShortcuts()
}

func (a *App) setupShortcuts() {
	c := a.window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { a.redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.saveJob() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyG, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.generate() })
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About Facer",
		"Facer: Face Milling Feeds, Speeds and GCode\n\n"+
			"Computes spindle speed, feed, removal rate and power for a\n"+
			"material and tool, and writes a zig-zag facing program.\n\n"+
			fmt.Sprintf("Materials loaded: %d", a.catalog.Len()),
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.form = a.newFacingForm()
	a.status = widget.NewLabel("")
	a.status.Wrapping = fyne.TextWrapWord

	generateBtn := widget.NewButtonWithIcon("Generate GCode", theme.MediaPlayIcon(), a.generate)
	generateBtn.Importance = widget.HighImportance
	writeBtn := newButtonWithTooltip("Write GCode", theme.DocumentSaveIcon(), "Save the program to a file", a.writeGCode)

	undoBtn := newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo (Ctrl+Z)", a.undo)
	redoBtn := newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo (Ctrl+Shift+Z)", a.redo)
	a.undoBtn, a.redoBtn = undoBtn, redoBtn
	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open job", a.openJob),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save job", a.saveJob),
		undoBtn, redoBtn,
		newIconButtonWithTooltip(theme.StorageIcon(), "Tool inventory", a.showToolInventoryDialog),
		newIconButtonWithTooltip(theme.GridIcon(), "Feeds table", a.showFeedsTable),
	)

	left := container.NewBorder(
		toolbar,
		container.NewVBox(container.NewGridWithColumns(2, generateBtn, writeBtn), a.status),
		nil, nil,
		container.NewVScroll(a.form.container()),
	)

	right := container.NewVSplit(a.buildIndicatorPanel(), a.buildOutputPanel())
	right.SetOffset(0.3)

	split := container.NewHSplit(left, right)
	split.SetOffset(0.38)

	a.loadJobIntoForm(a.job)
	a.updateHistoryButtons()
	return split
}

// buildIndicatorPanel shows the read-only calculator results.
func (a *App) buildIndicatorPanel() fyne.CanvasObject {
	grid := container.NewGridWithColumns(2)
	a.indicators = nil
	for _, line := range (model.DerivedResult{}).Summary() {
		value := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
		a.indicators = append(a.indicators, value)
		grid.Add(widget.NewLabel(line.Label))
		grid.Add(value)
	}
	return widget.NewCard("Feeds and Speeds", "", grid)
}

// buildOutputPanel holds the toolpath preview and the generated G-code.
func (a *App) buildOutputPanel() fyne.CanvasObject {
	a.preview = widgets.NewToolpathPreview(520, 320)
	a.statsLabel = widget.NewLabel("")

	a.gcodeText = widget.NewMultiLineEntry()
	a.gcodeText.TextStyle = fyne.TextStyle{Monospace: true}
	a.gcodeText.Wrapping = fyne.TextWrapOff
	a.gcodeText.SetPlaceHolder("Press Generate GCode")

	previewTab := container.NewTabItem("Toolpath", container.NewBorder(nil, a.statsLabel, nil, nil,
		container.NewCenter(a.preview)))
	codeTab := container.NewTabItem("GCode", a.gcodeText)
	return container.NewAppTabs(previewTab, codeTab)
}

// setStatus shows a message under the form. Errors are also logged.
func (a *App) setStatus(err error, format string, args ...interface{}) {
	if err != nil {
		a.log.Warn().Err(err).Msg("invalid input")
		a.status.SetText("⚠ " + err.Error())
		a.status.Importance = widget.DangerImportance
	} else {
		a.status.SetText(fmt.Sprintf(format, args...))
		a.status.Importance = widget.MediumImportance
	}
	a.status.Refresh()
}

// applyTheme switches the theme mode from a config name.
func (a *App) applyTheme(name string) {
	a.theme.SetMode(name)
	a.app.Settings().SetTheme(a.theme)
}
