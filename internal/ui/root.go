package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/ffmpeg"
	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// RootUI is the main download window
type RootUI struct {
	window       fyne.Window
	state        *AppState
	downloader   download.Downloader
	store        *config.Store
	settings     *config.Settings
	localization *Localization

	urlLabel     *widget.Label
	urlEntry     *widget.Entry
	dirLabel     *widget.Label
	dirEntry     *widget.Entry
	browseBtn    *widget.Button
	videoLabel   *widget.Label
	videoSelect  *widget.Select
	audioLabel   *widget.Label
	audioSelect  *widget.Select
	downloadBtn  *widget.Button
	stopBtn      *widget.Button
	progressBar  *widget.ProgressBar
	percentLabel *widget.Label
	progressRow  *fyne.Container
	statusLabel  *widget.Label

	// touched only on the UI thread
	running   bool
	cancel    context.CancelFunc
	hideTimer *time.Timer

	loadedDirectory string
	directoryEdited bool

	reveal       func(path string) error
	locateFFmpeg func(configured string) (string, error)
}

// NewRootUI builds the window content. The initial directory comes from the
// config store; later changes to it are written back through the store.
func NewRootUI(window fyne.Window, app fyne.App, downloader download.Downloader, store *config.Store) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	directory, err := store.Load()
	if err != nil {
		log.Warn().Str("op", "ui/init").Str("config", store.Path()).Err(err).Msg("config unreadable, using default directory")
	}

	ui := &RootUI{
		window:          window,
		state:           NewAppState(directory),
		loadedDirectory: directory,
		downloader:      downloader,
		store:           store,
		settings:        settings,
		localization:    localization,
		reveal:          platform.OpenFileInManager,
		locateFFmpeg:    ffmpeg.Locate,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	ui.state.Directory.AddListener(binding.NewDataListener(ui.onDirectoryChanged))

	log.Debug().Str("op", "ui/init").Str("directory", directory).Msg("window ready")
	return ui
}

// State exposes the view-model bound to the form
func (ui *RootUI) State() *AppState {
	return ui.state
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel(ui.localization.GetText(KeyURL))
	ui.urlEntry = widget.NewEntryWithData(ui.state.URL)
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }

	ui.dirLabel = widget.NewLabel(ui.localization.GetText(KeyDownloadDirectory))
	ui.dirEntry = widget.NewEntryWithData(ui.state.Directory)
	ui.browseBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyBrowse), ui.onBrowseDirectory)
	dirRow := container.NewBorder(nil, nil, nil, ui.browseBtn, ui.dirEntry)

	ui.videoLabel = widget.NewLabel(ui.localization.GetText(KeyVideoQuality))
	ui.videoSelect = widget.NewSelect(model.VideoQualityOptions(), ui.onVideoSelected)
	ui.audioLabel = widget.NewLabel(ui.localization.GetText(KeyAudioQuality))
	ui.audioSelect = widget.NewSelect(model.AudioQualityOptions(), ui.onAudioSelected)
	// both selects must exist before either callback fires
	ui.videoSelect.SetSelected(get(ui.state.Video))
	ui.audioSelect.SetSelected(get(ui.state.Audio))

	form := container.New(layout.NewFormLayout(),
		ui.urlLabel, ui.urlEntry,
		ui.dirLabel, dirRow,
		ui.videoLabel, ui.videoSelect,
		ui.audioLabel, ui.audioSelect,
	)

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton(ui.localization.GetText(KeyStop), ui.onStopClick)
	ui.stopBtn.Hide()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	actions := container.NewHBox(settingsBtn, layout.NewSpacer(), ui.stopBtn, ui.downloadBtn)

	ui.progressBar = widget.NewProgressBarWithData(ui.state.Progress)
	ui.progressBar.Max = download.MaxPercent
	ui.progressBar.TextFormatter = func() string { return "" }
	ui.percentLabel = widget.NewLabelWithData(binding.FloatToStringWithFormat(ui.state.Progress, PercentLabelFormat))
	percentBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(PercentLabelWidth, ui.percentLabel.MinSize().Height)), ui.percentLabel)
	ui.progressRow = container.NewBorder(nil, nil, nil, percentBox, ui.progressBar)
	ui.progressRow.Hide()

	_ = ui.state.Status.Set(ui.localization.GetText(KeyStatusReady))
	ui.statusLabel = widget.NewLabelWithData(ui.state.Status)
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	ui.window.SetContent(container.NewVBox(form, actions, ui.progressRow, ui.statusLabel))
}

func (ui *RootUI) createMenu() {
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

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlLabel.SetText(ui.localization.GetText(KeyURL))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.dirLabel.SetText(ui.localization.GetText(KeyDownloadDirectory))
	ui.browseBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyBrowse))
	ui.videoLabel.SetText(ui.localization.GetText(KeyVideoQuality))
	ui.audioLabel.SetText(ui.localization.GetText(KeyAudioQuality))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.stopBtn.SetText(ui.localization.GetText(KeyStop))
	if !ui.running {
		_ = ui.state.Status.Set(ui.localization.GetText(KeyStatusReady))
	}
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}

func (ui *RootUI) onBrowseDirectory() {
	folder := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		_ = ui.state.Directory.Set(uri.Path())
	}, ui.window)

	if current := get(ui.state.Directory); platform.IsDirectory(current) {
		if lister, err := storage.ListerForURI(storage.NewFileURI(current)); err == nil {
			folder.SetLocation(lister)
		}
	}
	folder.Show()
}

// onDirectoryChanged writes the field back to the config store. The listener
// also fires on registration; the value loaded at startup is not written
// until the user has moved away from it.
func (ui *RootUI) onDirectoryChanged() {
	dir := get(ui.state.Directory)
	if !ui.directoryEdited {
		if dir == ui.loadedDirectory {
			return
		}
		ui.directoryEdited = true
	}
	saved, err := ui.store.SaveDefaultDirectory(dir)
	if err != nil {
		log.Error().Str("op", "ui/directory").Str("dir", dir).Err(err).Msg("failed to save default directory")
		return
	}
	if saved {
		log.Info().Str("op", "ui/directory").Str("dir", dir).Msg("default directory updated")
	}
}

// onVideoSelected and onAudioSelected keep at most one quality active by
// disabling the opposite control while a concrete value is chosen.
func (ui *RootUI) onVideoSelected(value string) {
	_ = ui.state.Video.Set(value)
	if model.VideoQuality(value).IsSelected() {
		ui.audioSelect.Disable()
	} else if !ui.running {
		ui.audioSelect.Enable()
	}
}

func (ui *RootUI) onAudioSelected(value string) {
	_ = ui.state.Audio.Set(value)
	if model.AudioQuality(value).IsSelected() {
		ui.videoSelect.Disable()
	} else if !ui.running {
		ui.videoSelect.Enable()
	}
}

func (ui *RootUI) onDownloadClick() {
	if ui.running {
		return
	}

	req := ui.state.Request()
	f, err := ui.downloader.Validate(req)
	if err != nil {
		ui.showError(err)
		return
	}
	if f.AudioOnly {
		if _, err := ui.locateFFmpeg(ui.settings.GetFFmpegLocation()); err != nil {
			ui.showError(err)
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	task, events, err := ui.downloader.Start(ctx, req)
	if err != nil {
		cancel()
		ui.showError(err)
		return
	}

	log.Info().Str("op", "ui/download").Str("task", task.ID).Str("url", task.URL).Msg("download requested")
	ui.cancel = cancel
	ui.setRunning(true)
	ui.showProgress()
	go ui.consume(events)
}

func (ui *RootUI) onStopClick() {
	if ui.cancel != nil {
		ui.cancel()
	}
}

func (ui *RootUI) consume(events <-chan download.Event) {
	for ev := range events {
		ev := ev
		fyne.Do(func() { ui.applyEvent(ev) })
	}
}

func (ui *RootUI) applyEvent(ev download.Event) {
	switch ev.Kind {
	case download.EventStatus:
		ui.onStatus(ev.Task)
	case download.EventProgress:
		_ = ui.state.Progress.Set(ev.Progress.Percent)
	case download.EventCompleted:
		ui.onCompleted(ev)
	case download.EventFailed:
		ui.onFailed(ev)
	}
}

func (ui *RootUI) onStatus(task model.DownloadTask) {
	switch task.Status {
	case model.TaskStatusResolving:
		_ = ui.state.Status.Set(ui.localization.GetText(KeyStatusResolving))
	case model.TaskStatusDownloading:
		text := ui.localization.GetText(KeyStatusDownloading)
		if task.Title != "" {
			text += MiddleDotSeparator + task.Title
		}
		_ = ui.state.Status.Set(text)
	}
}

func (ui *RootUI) onCompleted(ev download.Event) {
	ui.finishTask()
	_ = ui.state.Progress.Set(download.MaxPercent)
	_ = ui.state.URL.Set("")

	title := ev.Task.GetDisplayTitle()
	if ev.Result != nil && ev.Result.Title != "" {
		title = ev.Result.Title
	}
	done := ui.localization.GetText(KeyDownloadCompleted)
	_ = ui.state.Status.Set(fmt.Sprintf(CompletedStatusFormat, done, title) + MiddleDotSeparator + ev.Task.GetSizeString())
	ui.scheduleProgressHide()

	fyne.CurrentApp().SendNotification(&fyne.Notification{Title: done, Content: title})

	if ev.Result != nil && ui.settings.GetAutoRevealOnComplete() {
		if err := ui.reveal(ev.Result.Path); err != nil {
			log.Error().Str("op", "ui/reveal").Str("path", ev.Result.Path).Err(err).Msg("failed to reveal file")
			ui.showError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err))
		}
	}
}

func (ui *RootUI) onFailed(ev download.Event) {
	ui.finishTask()
	ui.progressRow.Hide()

	if errors.Is(ev.Err, context.Canceled) {
		_ = ui.state.Status.Set(ui.localization.GetText(KeyStatusStopped))
		return
	}
	_ = ui.state.Status.Set(ui.localization.GetText(KeyStatusFailed))
	ui.showError(ev.Err)
}

func (ui *RootUI) finishTask() {
	if ui.cancel != nil {
		ui.cancel()
		ui.cancel = nil
	}
	ui.setRunning(false)
}

func (ui *RootUI) setRunning(running bool) {
	ui.running = running
	if running {
		ui.downloadBtn.Disable()
		ui.stopBtn.Show()
		ui.videoSelect.Disable()
		ui.audioSelect.Disable()
		return
	}

	ui.downloadBtn.Enable()
	ui.stopBtn.Hide()
	// restore the mutual exclusion of the quality selectors
	ui.onVideoSelected(get(ui.state.Video))
	ui.onAudioSelected(get(ui.state.Audio))
}

func (ui *RootUI) showProgress() {
	if ui.hideTimer != nil {
		ui.hideTimer.Stop()
	}
	_ = ui.state.Progress.Set(0)
	ui.progressRow.Show()
}

func (ui *RootUI) scheduleProgressHide() {
	if ui.hideTimer != nil {
		ui.hideTimer.Stop()
	}
	ui.hideTimer = time.AfterFunc(ProgressHideDelay, func() {
		fyne.Do(func() {
			if !ui.running {
				ui.progressRow.Hide()
			}
		})
	})
}

// showError opens a dialog titled in the current language
func (ui *RootUI) showError(err error) {
	dialog.ShowInformation(ui.localization.GetText(KeyErrorTitle), ui.errorText(err), ui.window)
}

// errorText localizes validation errors; other errors keep their own text
func (ui *RootUI) errorText(err error) string {
	switch {
	case errors.Is(err, download.ErrInvalidURL):
		return ui.localization.GetText(KeyInvalidURL)
	case errors.Is(err, download.ErrInvalidDirectory):
		return ui.localization.GetText(KeyInvalidDirectory)
	case errors.Is(err, download.ErrNoFormat):
		return ui.localization.GetText(KeyNoFormat)
	default:
		return err.Error()
	}
}
