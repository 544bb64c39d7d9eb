package ui

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/coverflow/internal/loader"
	"github.com/ytget/coverflow/internal/model"
	"github.com/ytget/coverflow/internal/platform"
)

func newTestRootUI(t *testing.T) (*RootUI, *loader.Service) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	w := test.NewWindow(nil)
	svc := loader.NewService(loader.NewDefaultFetcher(), 2)
	ui := NewRootUI(w, app, svc, platform.NewPlaylistSource())
	ui.CoverFlow().SetAnimated(false)
	ui.CoverFlow().Resize(fyne.NewSize(320, 240))
	return ui, svc
}

func fileCollection(source string, n int) *model.Collection {
	c := model.NewCollection(source)
	for i := 0; i < n; i++ {
		c.AddItem(&model.CoverItem{
			ID:       fmt.Sprintf("%d", i),
			Location: fmt.Sprintf("/covers/cover-%02d.jpg", i),
			Kind:     model.ItemKindFile,
		})
	}
	c.UpdateStatus(model.CollectionStatusReady)
	return c
}

func TestRootUI_LoadCollection(t *testing.T) {
	ui, svc := newTestRootUI(t)

	ui.LoadCollection(fileCollection("/covers", 12))

	assert.Equal(t, 0, ui.CoverFlow().Flow().Selected())
	assert.Equal(t, "cover-00", ui.caption.Text)
	assert.Equal(t, "1 / 12", ui.position.Text)
	assert.Equal(t, "/covers", ui.Settings().GetLastSource())

	pending, _, _, _ := svc.Stats()
	assert.Equal(t, 7, pending, "the initial window is queued")
	assert.Equal(t, "7 loading · 0 failed", ui.statusLabel.Text)
}

func TestRootUI_SelectionIsPersistedAndRestored(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.LoadCollection(fileCollection("/covers", 12))

	ui.CoverFlow().Flow().Advance(4)
	assert.Equal(t, 4, ui.Settings().GetLastSelected())
	assert.Equal(t, "cover-04", ui.caption.Text)

	ui.LoadCollection(fileCollection("/covers", 12))
	assert.Equal(t, 4, ui.CoverFlow().Flow().Selected(), "same source restores the selection")

	ui.LoadCollection(fileCollection("/other", 12))
	assert.Equal(t, 0, ui.CoverFlow().Flow().Selected())
	assert.Equal(t, 0, ui.Settings().GetLastSelected(), "a new source resets the selection")
}

func TestRootUI_RestoreIgnoresOutOfRangeSelection(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.Settings().SetLastSource("/covers")
	ui.Settings().SetLastSelected(30)

	ui.LoadCollection(fileCollection("/covers", 5))

	assert.Equal(t, 0, ui.CoverFlow().Flow().Selected())
}

func TestRootUI_EmptyCollection(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.LoadCollection(fileCollection("/empty", 0))

	assert.Equal(t, -1, ui.CoverFlow().Flow().Selected())
	assert.Equal(t, ui.localization.GetText(KeyEmptyCollection), ui.caption.Text)
	assert.Empty(t, ui.position.Text)
}

func TestRootUI_DemoStepWrapsAround(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.LoadCollection(fileCollection("/covers", 3))
	engine := ui.CoverFlow().Flow()

	ui.demoStep()
	ui.demoStep()
	assert.Equal(t, 2, engine.Selected())

	ui.demoStep()
	assert.Equal(t, 0, engine.Selected())
}

func TestRootUI_SetDemo(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.SetDemo(true)
	assert.True(t, ui.DemoRunning())
	assert.Contains(t, ui.demoBtn.Text, IconPause)

	ui.onToggleDemo()
	assert.False(t, ui.DemoRunning())
	assert.Contains(t, ui.demoBtn.Text, IconPlay)
}

func TestRootUI_ValidateSource(t *testing.T) {
	ui, _ := newTestRootUI(t)

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"/home/user/Pictures", false},
		{"covers.txt", false},
		{"https://www.youtube.com/playlist?list=PL123", false},
		{"https://example.com/a.jpg", false},
		{"ftp://example.com/playlist?list=PL123", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ui.validateSource(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRootUI_ApplySettings(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.LoadCollection(fileCollection("/covers", 30))

	ui.Settings().SetBuffer(2)
	ui.Settings().SetSpacing(60)
	ui.applySettings()

	engine := ui.CoverFlow().Flow()
	require.Equal(t, 2, engine.Params().Buffer)
	assert.Equal(t, float32(60), engine.Params().Spacing)
	assert.Equal(t, []int{0, 1, 2}, engine.Materialized())
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.onLanguageChange("ru")

	assert.Equal(t, "ru", ui.Settings().GetLanguage())
	assert.Equal(t, "Загрузить", ui.loadBtn.Text)
}

func TestRootUI_OpenItemOutOfRange(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.LoadCollection(fileCollection("/covers", 2))

	assert.NotPanics(t, func() { ui.openItem(7) })
}
