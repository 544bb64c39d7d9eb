package ui

import (
	"fmt"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/coverflow/internal/config"
)

// Slider steps
const (
	SpacingStep      = 1
	CenterOffsetStep = 5
	SideAngleStep    = 0.01
	SideDepthStep    = 5
	ReflectionStep   = 0.05
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	imageDirEntry     *widget.Entry
	maxParallelEntry  *widget.Entry
	bufferEntry       *widget.Entry
	maxCachedEntry    *widget.Entry
	demoIntervalEntry *widget.Entry
	spacingSlider     *widget.Slider
	centerSlider      *widget.Slider
	angleSlider       *widget.Slider
	depthSlider       *widget.Slider
	reflectionSlider  *widget.Slider
	languageSelect    *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values have been written to the settings.
func NewSettingsDialog(settings *config.Settings, l *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: l,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.imageDirEntry = widget.NewEntry()
	sd.imageDirEntry.SetPlaceHolder(t(KeyImageDirectory))
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	imageDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.imageDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(fmt.Sprintf("1-%d", config.MaxParallel))

	sd.bufferEntry = widget.NewEntry()
	sd.bufferEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinBuffer, config.MaxBuffer))

	sd.maxCachedEntry = widget.NewEntry()
	sd.maxCachedEntry.SetPlaceHolder("0")

	sd.demoIntervalEntry = widget.NewEntry()
	sd.demoIntervalEntry.SetPlaceHolder(strconv.Itoa(config.DefaultDemoIntervalMS))

	sd.spacingSlider = newStepSlider(config.MinSpacing, config.MaxSpacing, SpacingStep)
	sd.centerSlider = newStepSlider(0, config.MaxCenterOffset, CenterOffsetStep)
	sd.angleSlider = newStepSlider(0, config.MaxSideAngle, SideAngleStep)
	sd.depthSlider = newStepSlider(config.MinSideDepth, 0, SideDepthStep)
	sd.reflectionSlider = newStepSlider(0, 1, ReflectionStep)

	languageLabels := sd.settings.GetLanguageOptions()
	languageOptions := make([]string, 0, len(languageLabels))
	for code := range languageLabels {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = t(KeyLanguage)

	form := container.NewVBox(
		widget.NewLabel(t(KeyCarouselSettings)),
		widget.NewSeparator(),

		widget.NewLabel(t(KeyImageDirectory)+":"),
		imageDirRow,

		widget.NewLabel(t(KeyMaxParallel)+":"),
		sd.maxParallelEntry,

		widget.NewLabel(t(KeyBuffer)+":"),
		sd.bufferEntry,

		widget.NewLabel(t(KeySpacing)+":"),
		sd.spacingSlider,

		widget.NewLabel(t(KeyCenterOffset)+":"),
		sd.centerSlider,

		widget.NewLabel(t(KeySideAngle)+":"),
		sd.angleSlider,

		widget.NewLabel(t(KeySideDepth)+":"),
		sd.depthSlider,

		widget.NewLabel(t(KeyReflection)+":"),
		sd.reflectionSlider,

		widget.NewLabel(t(KeyMaxCached)+":"),
		sd.maxCachedEntry,

		widget.NewSeparator(),
		widget.NewLabel(t(KeyInterfaceSettings)),
		widget.NewSeparator(),

		widget.NewLabel(t(KeyDemoInterval)+":"),
		sd.demoIntervalEntry,

		widget.NewLabel(t(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 560))
}

func newStepSlider(lo, hi, step float64) *widget.Slider {
	s := widget.NewSlider(lo, hi)
	s.Step = step
	return s
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.imageDirEntry.SetText(sd.settings.GetImageDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelFetches()))
	sd.bufferEntry.SetText(strconv.Itoa(sd.settings.GetBuffer()))
	sd.maxCachedEntry.SetText(strconv.Itoa(sd.settings.GetMaxCachedImages()))
	sd.demoIntervalEntry.SetText(strconv.Itoa(sd.settings.GetDemoIntervalMS()))
	sd.spacingSlider.SetValue(sd.settings.GetSpacing())
	sd.centerSlider.SetValue(sd.settings.GetCenterOffset())
	sd.angleSlider.SetValue(sd.settings.GetSideAngle())
	sd.depthSlider.SetValue(sd.settings.GetSideDepth())
	sd.reflectionSlider.SetValue(sd.settings.GetReflection())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.imageDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply writes the form into the settings. Unparsable numbers keep the
// stored value; the setters clamp the rest.
func (sd *SettingsDialog) apply() {
	if dir := sd.imageDirEntry.Text; dir != "" {
		sd.settings.SetImageDirectory(dir)
	}
	if n, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelFetches(n)
	}
	if n, err := strconv.Atoi(sd.bufferEntry.Text); err == nil {
		sd.settings.SetBuffer(n)
	}
	if n, err := strconv.Atoi(sd.maxCachedEntry.Text); err == nil {
		sd.settings.SetMaxCachedImages(n)
	}
	if n, err := strconv.Atoi(sd.demoIntervalEntry.Text); err == nil {
		sd.settings.SetDemoIntervalMS(n)
	}

	sd.settings.SetSpacing(sd.spacingSlider.Value)
	sd.settings.SetCenterOffset(sd.centerSlider.Value)
	sd.settings.SetSideAngle(sd.angleSlider.Value)
	sd.settings.SetSideDepth(sd.depthSlider.Value)
	sd.settings.SetReflection(sd.reflectionSlider.Value)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
}
