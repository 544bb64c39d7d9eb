package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyOpenFolder         = "open_folder"
	KeyLoadPlaylist       = "load_playlist"
	KeySettings           = "settings"
	KeyLanguage           = "language"
	KeyImageDirectory     = "image_directory"
	KeyMaxParallel        = "max_parallel"
	KeyBuffer             = "buffer"
	KeySpacing            = "spacing"
	KeyCenterOffset       = "center_offset"
	KeySideAngle          = "side_angle"
	KeySideDepth          = "side_depth"
	KeyReflection         = "reflection"
	KeyMaxCached          = "max_cached"
	KeyDemoInterval       = "demo_interval"
	KeyDemo               = "demo"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeyEnterPlaylistURL   = "enter_playlist_url"
	KeySettingsSaved      = "settings_saved"
	KeyLoadingCollection  = "loading_collection"
	KeyCollectionLoaded   = "collection_loaded"
	KeyEmptyCollection    = "empty_collection"
	KeyErrorLoading       = "error_loading"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyInvalidURL         = "invalid_url"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyFetchStatus        = "fetch_status"
	KeyCarouselSettings   = "carousel_settings"
	KeyInterfaceSettings  = "interface_settings"
	KeyInvalidSettingsMsg = "invalid_settings"
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

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
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

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Cover Flow",
		KeyOpenFolder:         "Open Folder",
		KeyLoadPlaylist:       "Load",
		KeySettings:           "Settings",
		KeyLanguage:           "Language",
		KeyImageDirectory:     "Image Directory",
		KeyMaxParallel:        "Max Parallel Fetches",
		KeyBuffer:             "Panels Each Side",
		KeySpacing:            "Spacing",
		KeyCenterOffset:       "Center Offset",
		KeySideAngle:          "Side Angle",
		KeySideDepth:          "Side Depth",
		KeyReflection:         "Reflection",
		KeyMaxCached:          "Cached Images (0 = unlimited)",
		KeyDemoInterval:       "Demo Interval (ms)",
		KeyDemo:               "Demo",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeyEnterPlaylistURL:   "Playlist URL or .jsonl file",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyLoadingCollection:  "Loading covers...",
		KeyCollectionLoaded:   "Collection loaded",
		KeyEmptyCollection:    "Nothing to show",
		KeyErrorLoading:       "Error loading collection",
		KeyErrorOpeningFile:   "Error opening file",
		KeyInvalidURL:         "Invalid URL",
		KeyPleaseEnterURL:     "Please enter a URL",
		KeyFetchStatus:        "%d loading · %d failed",
		KeyCarouselSettings:   "Carousel",
		KeyInterfaceSettings:  "Interface",
		KeyInvalidSettingsMsg: "Invalid carousel settings",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Обложки",
		KeyOpenFolder:         "Открыть папку",
		KeyLoadPlaylist:       "Загрузить",
		KeySettings:           "Настройки",
		KeyLanguage:           "Язык",
		KeyImageDirectory:     "Папка изображений",
		KeyMaxParallel:        "Макс. параллельных загрузок",
		KeyBuffer:             "Панелей с каждой стороны",
		KeySpacing:            "Шаг",
		KeyCenterOffset:       "Отступ от центра",
		KeySideAngle:          "Угол поворота",
		KeySideDepth:          "Глубина",
		KeyReflection:         "Отражение",
		KeyMaxCached:          "Кэш изображений (0 = без ограничений)",
		KeyDemoInterval:       "Интервал демо (мс)",
		KeyDemo:               "Демо",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeyEnterPlaylistURL:   "URL плейлиста или файл .jsonl",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyLoadingCollection:  "Загрузка обложек...",
		KeyCollectionLoaded:   "Коллекция загружена",
		KeyEmptyCollection:    "Нечего показать",
		KeyErrorLoading:       "Ошибка загрузки коллекции",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyInvalidURL:         "Неверный URL",
		KeyPleaseEnterURL:     "Пожалуйста, введите URL",
		KeyFetchStatus:        "загружается %d · ошибок %d",
		KeyCarouselSettings:   "Карусель",
		KeyInterfaceSettings:  "Интерфейс",
		KeyInvalidSettingsMsg: "Неверные настройки карусели",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Cover Flow",
		KeyOpenFolder:         "Abrir Pasta",
		KeyLoadPlaylist:       "Carregar",
		KeySettings:           "Configurações",
		KeyLanguage:           "Idioma",
		KeyImageDirectory:     "Diretório de Imagens",
		KeyMaxParallel:        "Max Downloads Paralelos",
		KeyBuffer:             "Painéis de Cada Lado",
		KeySpacing:            "Espaçamento",
		KeyCenterOffset:       "Deslocamento Central",
		KeySideAngle:          "Ângulo Lateral",
		KeySideDepth:          "Profundidade Lateral",
		KeyReflection:         "Reflexo",
		KeyMaxCached:          "Imagens em Cache (0 = ilimitado)",
		KeyDemoInterval:       "Intervalo do Demo (ms)",
		KeyDemo:               "Demo",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Navegar",
		KeyEnterPlaylistURL:   "URL da playlist ou arquivo .jsonl",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyLoadingCollection:  "Carregando capas...",
		KeyCollectionLoaded:   "Coleção carregada",
		KeyEmptyCollection:    "Nada para mostrar",
		KeyErrorLoading:       "Erro ao carregar coleção",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyInvalidURL:         "URL inválida",
		KeyPleaseEnterURL:     "Por favor, digite uma URL",
		KeyFetchStatus:        "%d carregando · %d com erro",
		KeyCarouselSettings:   "Carrossel",
		KeyInterfaceSettings:  "Interface",
		KeyInvalidSettingsMsg: "Configurações do carrossel inválidas",
	}
}
