package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/PriceWheel/internal/model"
	"github.com/piwi3910/PriceWheel/internal/project"
	"github.com/piwi3910/PriceWheel/internal/ui/widgets"
	"github.com/piwi3910/PriceWheel/internal/wheel"
)

const priceTextSize = 44

// App holds all application state and UI references.
type App struct {
	app        fyne.App
	window     fyne.Window
	config     model.AppConfig
	configPath string
	quotesPath string
	logger     *zap.Logger
	animated   bool

	calc     *model.Calculator
	storage  model.Storage
	selector *wheel.Selector
	wheel    *widgets.Wheel
	haptics  wheel.Haptics
	flash    *flashFeedback
	history  *History
	quotes   model.QuoteBook

	tabs *container.AppTabs

	// UI references for dynamic updates
	costBox         *widget.Label
	marginBox       *widget.Label
	formulaPrice    *widget.Label
	priceText       *canvas.Text
	wheelSlot       *fyne.Container
	quotesContainer *fyne.Container
	quotesTotal     *widget.Label
	tableContainer  *fyne.Container
}

// Option configures an App.
type Option func(*App)

// WithStorage replaces the preferences-backed margin store.
func WithStorage(s model.Storage) Option {
	return func(a *App) { a.storage = s }
}

// WithQuotesPath sets where the quote book is kept.
func WithQuotesPath(path string) Option {
	return func(a *App) { a.quotesPath = path }
}

// WithConfigPath sets where settings are saved.
func WithConfigPath(path string) Option {
	return func(a *App) { a.configPath = path }
}

// WithHaptics replaces the on-screen flash feedback.
func WithHaptics(h wheel.Haptics) Option {
	return func(a *App) { a.haptics = h }
}

// WithAnimations turns wheel easing and feedback flashes on or off.
func WithAnimations(on bool) Option {
	return func(a *App) { a.animated = on }
}

// NewApp wires the calculator, restores the persisted margin and loads the
// saved quotes.
func NewApp(application fyne.App, window fyne.Window, cfg model.AppConfig, logger *zap.Logger, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		app:        application,
		window:     window,
		config:     cfg.Validate(),
		configPath: project.DefaultConfigPath(),
		quotesPath: project.DefaultQuotesPath(),
		logger:     logger,
		animated:   true,
		history:    NewHistory(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.storage == nil {
		a.storage = NewPreferencesStorage(application.Preferences())
	}
	a.flash = newFlashFeedback(logger.Named("feedback"), a.animated)
	if a.haptics == nil {
		a.haptics = a.flash
	}

	a.calc = model.NewCalculator(
		model.WithStorage(a.storage, a.config.StorageKey),
		model.WithRestorePolicy(a.config.RestorePolicy),
		model.WithLogger(logger.Named("calculator")),
	)
	a.calc.Restore()
	a.calc.OnChange(a.onViewChange)

	book, err := project.LoadQuotes(a.quotesPath)
	if err != nil {
		logger.Warn("failed to load quotes", zap.String("path", a.quotesPath), zap.Error(err))
		book = model.QuoteBook{Quotes: []model.Quote{}}
	}
	a.quotes = book

	a.newSelector()
	return a
}

// newSelector builds the wheel for the current config, replacing any
// previous one.
func (a *App) newSelector() {
	if a.selector != nil {
		a.selector.Close()
	}
	a.selector = wheel.NewSelector(wheel.ConfigFromApp(a.config), a.calc.Margin(),
		wheel.WithChangeHandler(a.onWheelChange),
		wheel.WithHaptics(a.haptics),
		wheel.WithDispatcher(fyne.Do),
		wheel.WithSelectorLogger(a.logger.Named("wheel")),
	)
	a.wheel = widgets.NewWheel(a.selector)
	a.wheel.SetAnimated(a.animated)
}

// Calculator exposes the pricing state.
func (a *App) Calculator() *model.Calculator { return a.calc }

// Selector exposes the margin wheel state.
func (a *App) Selector() *wheel.Selector { return a.selector }

// Quotes returns the saved quotes.
func (a *App) Quotes() []model.Quote { return a.quotes.Quotes }

// Close stops wheel timers.
func (a *App) Close() {
	a.selector.Close()
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Quote...", a.showSaveQuoteDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Cost List...", a.importCostList),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Quotes as PDF...", a.exportQuotesPDF),
		fyne.NewMenuItem("Export Quotes as Excel...", a.exportQuotesExcel),
		fyne.NewMenuItem("Print Price Tags...", a.exportLabels),
		fyne.NewMenuItem("Export Price Table...", a.exportPriceTable),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	undoItem := fyne.NewMenuItem("Undo", a.undo)
	undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redoItem := fyne.NewMenuItem("Redo", a.redo)
	redoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}

	editMenu := fyne.NewMenu("Edit",
		undoItem,
		redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Cost", a.resetCost),
		fyne.NewMenuItem("Clear All Quotes", a.confirmClearQuotes),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Wheel Settings...", a.showWheelSettingsDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))

	c := a.window.Canvas()
	c.AddShortcut(undoItem.Shortcut, func(fyne.Shortcut) { a.undo() })
	c.AddShortcut(redoItem.Shortcut, func(fyne.Shortcut) { a.redo() })
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PriceWheel",
		"PriceWheel - Selling Price Calculator\n\n"+
			"Type a cost, spin the margin wheel and read the\n"+
			"selling price: cost / (1 - margin).\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	calcTab := container.NewTabItemWithIcon("Calculator", theme.ContentAddIcon(), a.buildCalculatorPanel())
	quotesTab := container.NewTabItemWithIcon("Quotes", theme.ListIcon(), a.buildQuotesPanel())
	tableTab := container.NewTabItemWithIcon("Price Table", theme.GridIcon(), a.buildPriceTablePanel())

	a.tabs = container.NewAppTabs(calcTab, quotesTab, tableTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.bindKeyboard()
	a.onViewChange(a.calc.View())
	a.selector.Mount()

	root := container.NewStack(a.tabs, a.flash.overlay)
	return fynetooltip.AddWindowToolTipLayer(root, a.window.Canvas())
}

// ─── Calculator Panel ──────────────────────────────────────

func (a *App) buildCalculatorPanel() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("PriceWheel", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	title.SizeName = theme.SizeNameHeadingText

	bold := fyne.TextStyle{Bold: true}
	a.costBox = widget.NewLabelWithStyle("", fyne.TextAlignCenter, bold)
	a.marginBox = widget.NewLabelWithStyle("", fyne.TextAlignCenter, bold)
	a.formulaPrice = widget.NewLabelWithStyle("", fyne.TextAlignCenter, bold)
	op := func(s string) fyne.CanvasObject {
		l := widget.NewLabel(s)
		l.Importance = widget.LowImportance
		return l
	}
	formula := container.NewHBox(layout.NewSpacer(),
		a.costBox, op("÷"), op("("), widget.NewLabel("1"), op("-"), a.marginBox, op(")"), op("="), a.formulaPrice,
		layout.NewSpacer())

	a.priceText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	a.priceText.TextSize = priceTextSize
	a.priceText.TextStyle = bold
	a.priceText.Alignment = fyne.TextAlignTrailing
	priceRow := container.NewBorder(nil, nil, fieldLabel("Selling Price:"), nil, a.priceText)

	keypadRow := container.NewBorder(nil, nil, container.NewVBox(fieldLabel("Cost:")), nil, a.buildKeypad())

	a.wheelSlot = container.NewStack(a.wheel)
	prev := newIconButtonWithTooltip(theme.NavigateBackIcon(), "Lower margin", func() { a.selector.Nudge(-1) })
	next := newIconButtonWithTooltip(theme.NavigateNextIcon(), "Higher margin", func() { a.selector.Nudge(1) })
	percent := widget.NewLabelWithStyle("%", fyne.TextAlignCenter, bold)
	wheelRow := container.NewBorder(nil, nil,
		fieldLabel("Margin:"),
		container.NewHBox(percent, prev, next),
		a.wheelSlot)

	saveBtn := widget.NewButtonWithIcon("Save Quote", theme.DocumentSaveIcon(), a.showSaveQuoteDialog)
	saveBtn.Importance = widget.HighImportance

	return container.NewPadded(container.NewBorder(
		container.NewVBox(title, formula, priceRow, widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), wheelRow, saveBtn),
		nil, nil,
		keypadRow,
	))
}

func fieldLabel(s string) *widget.Label {
	l := widget.NewLabelWithStyle(s, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	l.Importance = widget.LowImportance
	return l
}

// keypadLayout is the on-screen key order, three per row.
var keypadLayout = []rune{'7', '8', '9', '4', '5', '6', '1', '2', '3', 'R', '0', '.'}

func (a *App) buildKeypad() fyne.CanvasObject {
	keys := make([]fyne.CanvasObject, 0, len(keypadLayout))
	for _, r := range keypadLayout {
		r := r
		if r == 'R' {
			b := widget.NewButton("Reset", func() {
				a.tapFeedback()
				a.resetCost()
			})
			b.Importance = widget.WarningImportance
			keys = append(keys, b)
			continue
		}
		keys = append(keys, widget.NewButton(string(r), func() {
			a.tapFeedback()
			a.typeRune(r)
		}))
	}
	return container.NewGridWithColumns(3, keys...)
}

func (a *App) tapFeedback() {
	if a.haptics != nil {
		a.haptics.Vibrate(a.config.KeypadPulse())
	}
}

// typeRune appends a digit or point to the cost, recording an undo step
// when the text changes.
func (a *App) typeRune(r rune) {
	cost := a.calc.Cost()
	if cost.Append(r) == cost {
		return
	}
	a.pushHistory("Type")
	a.calc.AppendDigit(r)
}

func (a *App) resetCost() {
	if a.calc.Cost() == "" {
		return
	}
	a.pushHistory("Reset")
	a.calc.Reset()
}

func (a *App) onWheelChange(margin int) {
	if margin == a.calc.Margin() {
		return
	}
	a.pushHistory("Margin")
	a.calc.SetMargin(margin)
}

// onViewChange re-renders every value derived from the calculator.
func (a *App) onViewChange(v model.View) {
	if a.costBox != nil {
		a.costBox.SetText(v.Cost.Display())
		a.marginBox.SetText(fmt.Sprintf("%d%%", v.Margin))
		a.formulaPrice.SetText(v.Price)
		a.priceText.Text = v.Price
		a.priceText.Refresh()
	}
	a.selector.SetValue(v.Margin)
	a.refreshPriceTable()
}

func (a *App) bindKeyboard() {
	c := a.window.Canvas()
	c.SetOnTypedRune(func(r rune) {
		if (r >= '0' && r <= '9') || r == '.' {
			a.typeRune(r)
		}
	})
	c.SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyEscape, fyne.KeyDelete, fyne.KeyBackspace:
			a.resetCost()
		case fyne.KeyLeft, fyne.KeyDown:
			a.selector.Nudge(-1)
		case fyne.KeyRight, fyne.KeyUp:
			a.selector.Nudge(1)
		case fyne.KeyReturn, fyne.KeyEnter:
			a.showSaveQuoteDialog()
		}
	})
}

// ─── Undo / Redo ───────────────────────────────────────────

func (a *App) snapshot(label string) Snapshot {
	return MakeSnapshot(a.calc.View(), a.quotes.Quotes, label)
}

func (a *App) pushHistory(label string) {
	a.history.Push(a.snapshot(label))
}

func (a *App) undo() {
	s, ok := a.history.Undo(a.snapshot("Undo"))
	if ok {
		a.restore(s)
	}
}

func (a *App) redo() {
	s, ok := a.history.Redo(a.snapshot("Redo"))
	if ok {
		a.restore(s)
	}
}

func (a *App) restore(s Snapshot) {
	a.logger.Debug("restoring snapshot", zap.String("label", s.Label))
	quotes := make([]model.Quote, len(s.Quotes))
	copy(quotes, s.Quotes)
	a.quotes.Quotes = quotes
	a.saveQuotes()
	a.calc.Load(s.Cost, s.Margin)
	a.refreshQuotesList()
}

// ─── Quotes ────────────────────────────────────────────────

func (a *App) showSaveQuoteDialog() {
	if a.calc.Cost().IsZero() {
		dialog.ShowInformation("Nothing to save", "Enter a cost first.", a.window)
		return
	}
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Item name")
	dialog.ShowForm("Save Quote", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Label", entry)},
		func(ok bool) {
			if ok {
				a.SaveQuote(entry.Text)
			}
		}, a.window)
}

// SaveQuote stores the current cost and margin as a quote.
func (a *App) SaveQuote(label string) (model.Quote, bool) {
	cost := a.calc.Cost()
	if cost.IsZero() {
		return model.Quote{}, false
	}
	if label == "" {
		label = fmt.Sprintf("Quote %d", len(a.quotes.Quotes)+1)
	}
	a.pushHistory("Save Quote")
	q := model.NewQuote(label, cost, a.calc.Margin())
	a.quotes.Add(q)
	a.saveQuotes()
	a.refreshQuotesList()
	a.logger.Info("quote saved", zap.String("id", q.ID), zap.String("price", q.Price.StringFixed(2)))
	return q, true
}

// DeleteQuote removes a quote by ID.
func (a *App) DeleteQuote(id string) bool {
	if _, ok := a.quotes.Find(id); !ok {
		return false
	}
	a.pushHistory("Delete Quote")
	a.quotes.Remove(id)
	a.saveQuotes()
	a.refreshQuotesList()
	return true
}

func (a *App) confirmClearQuotes() {
	if len(a.quotes.Quotes) == 0 {
		return
	}
	dialog.ShowConfirm("Clear Quotes", "Remove every saved quote?", func(ok bool) {
		if !ok {
			return
		}
		a.pushHistory("Clear Quotes")
		a.quotes.Clear()
		a.saveQuotes()
		a.refreshQuotesList()
	}, a.window)
}

func (a *App) saveQuotes() {
	if err := project.SaveQuotes(a.quotesPath, a.quotes); err != nil {
		a.logger.Error("failed to save quotes", zap.String("path", a.quotesPath), zap.Error(err))
		if a.window != nil {
			dialog.ShowError(err, a.window)
		}
	}
}

// ─── Theme ─────────────────────────────────────────────────

// ApplyTheme installs the theme named in the config.
func (a *App) ApplyTheme() {
	a.app.Settings().SetTheme(NewPriceWheelTheme(a.config.Theme))
}

