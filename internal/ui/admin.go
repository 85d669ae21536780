package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/facer/internal/model"
	"github.com/piwi3910/facer/internal/project"
)

// showSettingsDialog displays the application preferences editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	themeSelect := widget.NewSelect(ThemeNames, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	materialSelect := widget.NewSelect(a.catalog.Names(), func(selected string) {
		cfg.DefaultMaterial = selected
	})
	materialSelect.SetSelected(cfg.DefaultMaterial)

	profileSelect := widget.NewSelect(model.GetProfileNames(a.customProfiles), func(selected string) {
		cfg.DefaultProfile = selected
	})
	profileSelect.SetSelected(cfg.DefaultProfile)

	catalogEntry := widget.NewEntry()
	catalogEntry.SetText(cfg.CatalogPath)
	catalogEntry.SetPlaceHolder("(built-in materials)")
	browseBtn := newIconButtonWithTooltip(theme.FolderOpenIcon(), "Choose a CSV or Excel material table", func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			catalogEntry.SetText(reader.URI().Path())
		}, a.window)
		d.Show()
	})

	useCurrent := widget.NewCheck("Use the current form values as defaults for new jobs", nil)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Default Material", materialSelect),
		widget.NewFormItem("Default GCode Profile", profileSelect),
		widget.NewFormItem("Material Catalog", container.NewBorder(nil, nil, nil, browseBtn, catalogEntry)),
		widget.NewFormItem("", useCurrent),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			cfg.CatalogPath = catalogEntry.Text
			if useCurrent.Checked {
				cfg.DefaultParameters = a.job.Parameters
			}
			if cfg.CatalogPath != a.config.CatalogPath {
				if err := a.switchCatalog(cfg.CatalogPath); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
			}
			a.config = cfg
			a.applyTheme(cfg.Theme)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save preferences: %w", err), a.window)
			} else {
				a.setStatus(nil, "Preferences saved")
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(520, 360))
	d.Show()
}

// switchCatalog loads the material table at path, or the built-in table
// when path is empty, and refreshes the material select.
func (a *App) switchCatalog(path string) error {
	catalog := model.DefaultCatalog()
	if path != "" {
		c, err := loadCatalog(path)
		if err != nil {
			return fmt.Errorf("failed to load catalog %s: %w", path, err)
		}
		catalog = c
	}
	a.catalog = catalog
	a.form.material.Options = catalog.Names()
	if _, err := catalog.Lookup(a.job.Material); err != nil {
		a.form.material.SetSelected(catalog.Names()[0])
	} else {
		a.form.material.Refresh()
	}
	a.recompute()
	a.log.Info().Str("path", path).Int("materials", catalog.Len()).Msg("material catalog loaded")
	return nil
}

// showImportExportDialog displays the backup import/export dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.inventory, a.customProfiles); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("facer-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your preferences, tool inventory and custom profiles.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					a.restoreBackup(reader.URI().Path())
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export preferences, tool inventory and custom GCode profiles to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

func (a *App) restoreBackup(path string) {
	backup, err := project.ImportAllData(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.config = backup.Config
	a.inventory = backup.Inventory
	a.customProfiles = backup.Profiles
	a.applyTheme(a.config.Theme)

	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
		return
	}
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported inventory: %w", err), a.window)
		return
	}
	if err := project.SaveCustomProfiles(a.profilesPath, a.customProfiles); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported profiles: %w", err), a.window)
		return
	}
	a.refreshToolSelect()
	a.refreshProfileSelect()
	a.refreshRecentMenu()
	a.log.Info().Str("path", path).Str("created", backup.CreatedAt).Msg("backup restored")
	dialog.ShowInformation("Import Complete",
		fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}
