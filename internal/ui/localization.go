package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyDownload          = "download"
	KeyStop              = "stop"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyURL               = "url"
	KeyEnterURL          = "enter_url"
	KeyDownloadDirectory = "download_directory"
	KeyBrowse            = "browse"
	KeyVideoQuality      = "video_quality"
	KeyAudioQuality      = "audio_quality"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeyAutoReveal        = "auto_reveal"
	KeyFFmpegLocation    = "ffmpeg_location"
	KeyStatusReady       = "status_ready"
	KeyStatusResolving   = "status_resolving"
	KeyStatusDownloading = "status_downloading"
	KeyStatusStopped     = "status_stopped"
	KeyStatusFailed      = "status_failed"
	KeyDownloadCompleted = "download_completed"
	KeyErrorTitle        = "error_title"
	KeyInvalidURL        = "invalid_url"
	KeyInvalidDirectory  = "invalid_directory"
	KeyNoFormat          = "no_format"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes are ignored and
// "system" maps to English.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key, falling back to English
// and then to the key itself.
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Grabber",
		KeyDownload:          "Download",
		KeyStop:              "Stop",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyURL:               "URL",
		KeyEnterURL:          "Paste a YouTube link (https://youtube.com/watch?v=...)",
		KeyDownloadDirectory: "Save to",
		KeyBrowse:            "Browse",
		KeyVideoQuality:      "Video",
		KeyAudioQuality:      "Audio",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyAutoReveal:        "Show file in folder when done",
		KeyFFmpegLocation:    "ffmpeg location (empty uses PATH)",
		KeyStatusReady:       "Ready",
		KeyStatusResolving:   "Fetching video information...",
		KeyStatusDownloading: "Downloading...",
		KeyStatusStopped:     "Download stopped",
		KeyStatusFailed:      "Download failed",
		KeyDownloadCompleted: "Download completed",
		KeyErrorTitle:        "Error",
		KeyInvalidURL:        "Inform a valid link",
		KeyInvalidDirectory:  "Choose an existing download folder",
		KeyNoFormat:          "Select a video or audio option",
		KeyErrorOpeningFile:  "Error opening file",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Grabber",
		KeyDownload:          "Скачать",
		KeyStop:              "Стоп",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyURL:               "Ссылка",
		KeyEnterURL:          "Вставьте ссылку YouTube (https://youtube.com/watch?v=...)",
		KeyDownloadDirectory: "Сохранить в",
		KeyBrowse:            "Обзор",
		KeyVideoQuality:      "Видео",
		KeyAudioQuality:      "Аудио",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyAutoReveal:        "Показать файл в папке после загрузки",
		KeyFFmpegLocation:    "Путь к ffmpeg (пусто = PATH)",
		KeyStatusReady:       "Готово",
		KeyStatusResolving:   "Получение информации о видео...",
		KeyStatusDownloading: "Загрузка...",
		KeyStatusStopped:     "Загрузка остановлена",
		KeyStatusFailed:      "Ошибка загрузки",
		KeyDownloadCompleted: "Загрузка завершена",
		KeyErrorTitle:        "Ошибка",
		KeyInvalidURL:        "Укажите корректную ссылку",
		KeyInvalidDirectory:  "Выберите существующую папку",
		KeyNoFormat:          "Выберите видео или аудио",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Grabber",
		KeyDownload:          "Baixar",
		KeyStop:              "Parar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyURL:               "Link",
		KeyEnterURL:          "Cole um link do YouTube (https://youtube.com/watch?v=...)",
		KeyDownloadDirectory: "Salvar em",
		KeyBrowse:            "Navegar",
		KeyVideoQuality:      "Vídeo",
		KeyAudioQuality:      "Áudio",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyAutoReveal:        "Mostrar arquivo na pasta ao terminar",
		KeyFFmpegLocation:    "Local do ffmpeg (vazio usa o PATH)",
		KeyStatusReady:       "Pronto",
		KeyStatusResolving:   "Buscando informações do vídeo...",
		KeyStatusDownloading: "Baixando...",
		KeyStatusStopped:     "Download interrompido",
		KeyStatusFailed:      "Falha no download",
		KeyDownloadCompleted: "Download concluído",
		KeyErrorTitle:        "Erro",
		KeyInvalidURL:        "Informe um link válido",
		KeyInvalidDirectory:  "Escolha uma pasta existente",
		KeyNoFormat:          "Selecione uma opção de vídeo ou áudio",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
	}
}
