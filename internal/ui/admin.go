package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PriceWheel/internal/model"
	"github.com/piwi3910/PriceWheel/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	policySelect := widget.NewSelect([]string{string(model.RestoreFallback), string(model.RestoreClamp)}, func(selected string) {
		cfg.RestorePolicy = model.RestorePolicy(selected)
	})
	policySelect.SetSelected(string(cfg.RestorePolicy))

	levelSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	levelSelect.SetSelected(cfg.LogLevel)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Out-of-range saved margin", policySelect),
		widget.NewFormItem("Log Level", levelSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Keypad Pulse (ms)", intEntry(&cfg.KeypadPulseMS)),
		widget.NewFormItem("Wheel Pulse (ms)", intEntry(&cfg.WheelPulseMS)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := a.ApplyConfig(cfg); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(460, 380))
	d.Show()
}

// ApplyConfig validates cfg, saves it and applies what can change while
// running. Storage settings take effect on the next start.
func (a *App) ApplyConfig(cfg model.AppConfig) error {
	prev := a.config
	a.config = cfg.Validate()

	if a.config.Theme != prev.Theme && a.app != nil {
		a.ApplyTheme()
	}
	if wheelChanged(prev, a.config) {
		a.rebuildWheel()
	}
	if a.config.StorageKey != prev.StorageKey || a.config.RestorePolicy != prev.RestorePolicy {
		a.logger.Info("storage settings change applies after restart",
			zap.String("key", a.config.StorageKey),
			zap.String("policy", string(a.config.RestorePolicy)))
	}
	return a.saveConfig()
}

// Config returns the active configuration.
func (a *App) Config() model.AppConfig { return a.config }

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := a.ExportBackup(path); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("pricewheel-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings and margin.\nSaved quotes are merged.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, added, err := a.ImportBackup(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported from backup created at %s.\n%d new quotes added.", backup.CreatedAt, added), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings, the current margin and saved quotes to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// ExportBackup writes settings, margin and quotes to path.
func (a *App) ExportBackup(path string) error {
	return project.ExportAllData(path, a.config, a.calc.Margin(), a.quotes)
}

// ImportBackup applies a backup file: its config replaces the current one,
// its margin (when present) is selected and its quotes are merged.
func (a *App) ImportBackup(path string) (project.BackupData, int, error) {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return project.BackupData{}, 0, err
	}
	a.pushHistory("Import Data")
	if err := a.ApplyConfig(backup.Config); err != nil {
		return backup, 0, fmt.Errorf("failed to save imported settings: %w", err)
	}
	if backup.Margin != 0 {
		a.calc.SetMargin(backup.Margin)
	}
	added := project.MergeQuotes(&a.quotes, backup.Quotes)
	if added > 0 {
		a.saveQuotes()
		a.refreshQuotesList()
	}
	a.logger.Info("backup imported", zap.String("path", path), zap.Int("quotes_added", added))
	return backup, added, nil
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}
