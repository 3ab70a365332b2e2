package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/config"
)

// SettingsDialog edits the preferences kept outside the config file
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	languageSelect  *widget.Select
	autoRevealCheck *widget.Check
	ffmpegEntry     *widget.Entry

	// display name -> language code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved may be nil.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		onSaved:       onSaved,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	var names []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		names = append(names, name)
	}
	sort.Strings(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	sd.autoRevealCheck = widget.NewCheck(sd.localization.GetText(KeyAutoReveal), nil)

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder("/usr/local/bin/ffmpeg")
	browseBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseFFmpeg)
	ffmpegRow := container.NewBorder(nil, nil, nil, browseBtn, sd.ffmpegEntry)

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
		widget.NewSeparator(),
		sd.autoRevealCheck,
		widget.NewSeparator(),
		widget.NewLabel(sd.localization.GetText(KeyFFmpegLocation)+":"),
		ffmpegRow,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegLocation())
}

func (sd *SettingsDialog) onBrowseFFmpeg() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		sd.ffmpegEntry.SetText(reader.URI().Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)
	sd.settings.SetFFmpegLocation(sd.ffmpegEntry.Text)

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
