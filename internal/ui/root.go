package ui

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/coverflow/internal/config"
	"github.com/ytget/coverflow/internal/loader"
	"github.com/ytget/coverflow/internal/model"
	"github.com/ytget/coverflow/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	loaderSvc    *loader.Service
	playlists    *platform.PlaylistSource
	mobile       *MobileUI

	coverFlow  *CoverFlow
	collection *model.Collection

	sourceEntry *widget.Entry
	openBtn     *widget.Button
	loadBtn     *widget.Button
	demoBtn     *widget.Button
	caption     *widget.Label
	position    *widget.Label
	statusLabel *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// Demo mode
	demoCancel context.CancelFunc

	// Status update debouncing
	lastStatusUpdate time.Time
	statusMutex      sync.Mutex
}

// NewRootUI creates and initializes the main UI. Images are delivered on
// the Fyne goroutine through fyne.Do.
func NewRootUI(window fyne.Window, app fyne.App, loaderSvc *loader.Service, playlists *platform.PlaylistSource) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		loaderSvc:    loaderSvc,
		playlists:    playlists,
		mobile:       NewMobileUI(),
	}

	ui.coverFlow = NewCoverFlow(loaderSvc, settings.Params())
	engine := ui.coverFlow.Flow()
	engine.OnSelectionChanged = ui.onSelectionChanged
	engine.OnDoubleTap = ui.openItem
	engine.Logf = log.Printf
	ui.coverFlow.OnActivated = ui.openItem

	loaderSvc.SetDispatcher(fyne.Do)
	loaderSvc.SetConsumer(engine)
	loaderSvc.SetUpdateCallback(ui.onFetchUpdate)

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// CoverFlow returns the carousel widget
func (ui *RootUI) CoverFlow() *CoverFlow {
	return ui.coverFlow
}

// Settings returns the settings the UI was built with
func (ui *RootUI) Settings() *config.Settings {
	return ui.settings
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.sourceEntry = widget.NewEntry()
	ui.sourceEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterPlaylistURL))
	ui.sourceEntry.Validator = ui.validateSource
	ui.sourceEntry.OnSubmitted = func(string) {
		ui.onLoadClick()
	}

	ui.loadBtn = widget.NewButton(ui.localization.GetText(KeyLoadPlaylist), ui.onLoadClick)
	ui.openBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyOpenFolder), ui.onOpenFolder)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.demoBtn = widget.NewButton(IconPlay+" "+ui.localization.GetText(KeyDemo), ui.onToggleDemo)
	ui.demoBtn.Importance = widget.LowImportance

	topPanel := ui.mobile.ArrangeToolbar(
		container.NewHBox(ui.mobile.CreateTouchButton(settingsBtn), ui.openBtn),
		container.NewHBox(ui.loadBtn, ui.demoBtn),
		ui.sourceEntry,
	)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	ui.caption = widget.NewLabel(DashPlaceholder)
	ui.caption.Alignment = fyne.TextAlignCenter
	ui.caption.TextStyle = fyne.TextStyle{Bold: true}
	ui.caption.Truncation = fyne.TextTruncateEllipsis

	ui.position = widget.NewLabel("")
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Alignment = fyne.TextAlignTrailing

	prevBtn := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { ui.coverFlow.Flow().Advance(-1) })
	nextBtn := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { ui.coverFlow.Flow().Advance(1) })

	bottomPanel := container.NewBorder(nil, nil,
		container.NewHBox(ui.mobile.CreateTouchButton(prevBtn), ui.position),
		container.NewHBox(ui.statusLabel, ui.mobile.CreateTouchButton(nextBtn)),
		ui.caption,
	)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.notificationContainer),
		bottomPanel,
		nil, nil,
		ui.coverFlow,
	)
	ui.window.SetContent(content)
	ui.window.Canvas().Focus(ui.coverFlow)
}

// createMenu builds the main menu
func (ui *RootUI) createMenu() {
	openItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenFolder), ui.onOpenFolder)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyAppTitle), openItem, settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.sourceEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterPlaylistURL))
	ui.loadBtn.SetText(ui.localization.GetText(KeyLoadPlaylist))
	ui.openBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyOpenFolder))
	ui.updateDemoButton()
	ui.refreshStatus()
}

// validateSource accepts empty input, http(s) URLs and local paths
func (ui *RootUI) validateSource(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if platform.DetectSource(input) != platform.SourceURL && platform.DetectSource(input) != platform.SourcePlaylist {
		return nil
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

func (ui *RootUI) onLoadClick() {
	input := strings.TrimSpace(ui.sourceEntry.Text)
	if input == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}
	if err := ui.validateSource(input); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
		return
	}
	ui.LoadSource(input)
}

func (ui *RootUI) onOpenFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.settings.SetImageDirectory(uri.Path())
		ui.LoadSource(uri.Path())
	}, ui.window)
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings).Show()
}

// applySettings pushes stored settings into the carousel and the loader
func (ui *RootUI) applySettings() {
	if err := ui.coverFlow.SetParams(ui.settings.Params()); err != nil {
		log.Printf("Rejected carousel settings: %v", err)
		ui.showNotification(ui.localization.GetText(KeyInvalidSettingsMsg)+": "+err.Error(), false)
	}
	ui.loaderSvc.SetMaxParallel(ui.settings.GetMaxParallelFetches())

	prev := ui.localization.GetCurrentLanguage()
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	if ui.localization.GetCurrentLanguage() != prev {
		ui.refreshUITexts()
		ui.createMenu()
	}
	if ui.demoCancel != nil {
		// restart with the new interval
		ui.SetDemo(false)
		ui.SetDemo(true)
	}
}

// Restore reopens the last source, or the configured image directory
func (ui *RootUI) Restore() {
	source := ui.settings.GetLastSource()
	if source == "" {
		source = ui.settings.GetImageDirectory()
	}
	ui.LoadSource(source)
}

// LoadSource opens a directory, playlist, playlist dump or URL list in the
// background and shows it when ready
func (ui *RootUI) LoadSource(source string) {
	log.Printf("Loading source: %s (%s)", source, platform.DetectSource(source))
	ui.showNotification(ui.localization.GetText(KeyLoadingCollection), true)

	go func() {
		c, err := platform.OpenSource(context.Background(), source, ui.playlists)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to load %s: %v", source, err)
				ui.showNotification(ui.localization.GetText(KeyErrorLoading)+": "+err.Error(), false)
				return
			}
			ui.LoadCollection(c)
			ui.showNotification(fmt.Sprintf("%s: %s (%d)", ui.localization.GetText(KeyCollectionLoaded), c.Title, c.Len()), false)
			time.AfterFunc(ToastAutoHide, func() { fyne.Do(ui.hideNotification) })
		})
	}()
}

// LoadCollection replaces the shown collection. The last selection is
// restored when the collection comes from the same source as last time.
// Must be called on the Fyne goroutine.
func (ui *RootUI) LoadCollection(c *model.Collection) {
	restore := -1
	if c.Source != "" && c.Source == ui.settings.GetLastSource() {
		restore = ui.settings.GetLastSelected()
	}
	ui.settings.SetLastSource(c.Source)

	ui.collection = c
	ui.loaderSvc.SetCollection(c)

	engine := ui.coverFlow.Flow()
	engine.Reset(c.Len())
	if restore > 0 && restore < c.Len() {
		engine.SetSelected(restore)
		engine.CenterOnSelected(false)
	}

	ui.updateCaption()
	ui.refreshStatus()
	ui.window.Canvas().Focus(ui.coverFlow)
}

func (ui *RootUI) onSelectionChanged(selected int) {
	ui.settings.SetLastSelected(selected)
	ui.updateCaption()
}

func (ui *RootUI) updateCaption() {
	engine := ui.coverFlow.Flow()
	sel := engine.Selected()
	if sel < 0 || ui.collection == nil {
		ui.caption.SetText(ui.localization.GetText(KeyEmptyCollection))
		ui.position.SetText("")
		return
	}
	ui.caption.SetText(ui.collection.TitleAt(sel))
	ui.position.SetText(fmt.Sprintf(PositionFormat, sel+1, engine.Count()))
}

// openItem opens the file behind a panel, or its URL in the browser
func (ui *RootUI) openItem(index int) {
	item := ui.collection.Item(index)
	if item == nil {
		return
	}
	log.Printf("Opening item %d: %s", index, item.Location)

	switch item.Kind {
	case model.ItemKindFile:
		if err := platform.OpenFileWithDefaultApp(item.Location); err != nil {
			log.Printf("Error opening file %s: %v", item.Location, err)
			ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
		}
	case model.ItemKindURL:
		u, err := url.Parse(item.Location)
		if err != nil {
			ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
			return
		}
		if err := fyne.CurrentApp().OpenURL(u); err != nil {
			log.Printf("Error opening URL %s: %v", item.Location, err)
		}
	}
}

// onFetchUpdate runs on loader workers
func (ui *RootUI) onFetchUpdate(job *model.FetchJob) {
	if job.Status == model.FetchStatusError {
		log.Printf("Fetch %s for index %d failed: %s", job.ID, job.Index, job.LastError)
	}
	if !ui.shouldRefreshStatus(job.Status.IsFinished()) {
		return
	}
	fyne.Do(ui.refreshStatus)
}

// shouldRefreshStatus debounces status refreshes; finished jobs always pass
// so the final counts are shown.
func (ui *RootUI) shouldRefreshStatus(force bool) bool {
	ui.statusMutex.Lock()
	defer ui.statusMutex.Unlock()

	now := time.Now()
	if !force && now.Sub(ui.lastStatusUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastStatusUpdate = now
	return true
}

func (ui *RootUI) refreshStatus() {
	pending, active, _, failed := ui.loaderSvc.Stats()
	if pending+active+failed == 0 {
		ui.statusLabel.SetText("")
		return
	}
	ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyFetchStatus), pending+active, failed))
}

func (ui *RootUI) onToggleDemo() {
	ui.SetDemo(ui.demoCancel == nil)
}

// SetDemo starts or stops stepping through the collection on a timer.
// The demo wraps around at the end.
func (ui *RootUI) SetDemo(on bool) {
	if ui.demoCancel != nil {
		ui.demoCancel()
		ui.demoCancel = nil
	}
	if on {
		ctx, cancel := context.WithCancel(context.Background())
		ui.demoCancel = cancel
		interval := time.Duration(ui.settings.GetDemoIntervalMS()) * time.Millisecond
		go ui.runDemo(ctx, interval)
	}
	ui.updateDemoButton()
}

// DemoRunning reports whether demo mode is on
func (ui *RootUI) DemoRunning() bool {
	return ui.demoCancel != nil
}

func (ui *RootUI) runDemo(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(ui.demoStep)
		}
	}
}

func (ui *RootUI) demoStep() {
	engine := ui.coverFlow.Flow()
	if engine.Count() == 0 {
		return
	}
	if engine.Selected() >= engine.Count()-1 {
		engine.Select(0)
		return
	}
	engine.Advance(1)
}

func (ui *RootUI) updateDemoButton() {
	if ui.demoBtn == nil {
		return
	}
	icon := IconPlay
	if ui.demoCancel != nil {
		icon = IconPause
	}
	ui.demoBtn.SetText(icon + " " + ui.localization.GetText(KeyDemo))
}

func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}
