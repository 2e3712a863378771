package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle             = "app_title"
	KeyNoImage              = "no_image"
	KeyPrevious             = "previous"
	KeyNext                 = "next"
	KeyOpenImage            = "open_image"
	KeyRevealImage          = "reveal_image"
	KeyAboutImage           = "about_image"
	KeyCopyLink             = "copy_link"
	KeyRefresh              = "refresh"
	KeySettings             = "settings"
	KeyCheckUpdates         = "check_updates"
	KeyQuit                 = "quit"
	KeyStatusUpdating       = "status_updating"
	KeyStatusNextUpdate     = "status_next_update"
	KeyStatusWaitingNetwork = "status_waiting_network"
	KeyStatusIdle           = "status_idle"
	KeyMarket               = "market"
	KeyIntervalHours        = "interval_hours"
	KeyScheduledUpdate      = "scheduled_update"
	KeyScheduledTime        = "scheduled_time"
	KeyKeepImages           = "keep_images"
	KeyShowNotification     = "show_notification"
	KeyAutoSetNewest        = "auto_set_newest"
	KeyHideMenuBarIcon      = "hide_menu_bar_icon"
	KeyImageDirectory       = "image_directory"
	KeyBrowse               = "browse"
	KeySave                 = "save"
	KeyResetDatabase        = "reset_database"
	KeyResetConfirm         = "reset_confirm"
	KeySettingsSaved        = "settings_saved"
	KeyUpToDate             = "up_to_date"
	KeyUpdateAvailable      = "update_available"
	KeyUpdateCheckFailed    = "update_check_failed"
	KeyApplyFailed          = "apply_failed"
	KeyInvalidInterval      = "invalid_interval"
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
		lang = SystemLanguage()
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

// SystemLanguage returns the two letter language code from LC_ALL, LC_MESSAGES or LANG
func SystemLanguage() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(name)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if i := strings.IndexAny(value, "_.@-"); i > 0 {
			value = value[:i]
		}
		return strings.ToLower(value)
	}
	return "en"
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:             "Bing Wallpaper",
		KeyNoImage:              "No wallpaper downloaded yet",
		KeyPrevious:             "Previous",
		KeyNext:                 "Next",
		KeyOpenImage:            "Open Image",
		KeyRevealImage:          "Show in Finder",
		KeyAboutImage:           "About This Image…",
		KeyCopyLink:             "Copy Image Link",
		KeyRefresh:              "Refresh Now",
		KeySettings:             "Settings…",
		KeyCheckUpdates:         "Check for Updates…",
		KeyQuit:                 "Quit",
		KeyStatusUpdating:       "Updating…",
		KeyStatusNextUpdate:     "Next update: %s",
		KeyStatusWaitingNetwork: "Waiting for network",
		KeyStatusIdle:           "No update scheduled",
		KeyMarket:               "Market",
		KeyIntervalHours:        "Update every (hours)",
		KeyScheduledUpdate:      "Update daily at a fixed time",
		KeyScheduledTime:        "Time of day",
		KeyKeepImages:           "Keep images for",
		KeyShowNotification:     "Notify when new wallpapers arrive",
		KeyAutoSetNewest:        "Set the newest wallpaper automatically",
		KeyHideMenuBarIcon:      "Hide menu bar icon",
		KeyImageDirectory:       "Image folder",
		KeyBrowse:               "Browse",
		KeySave:                 "Save",
		KeyResetDatabase:        "Reset Database",
		KeyResetConfirm:         "Delete all stored wallpapers except today's and download them again?",
		KeySettingsSaved:        "Settings saved",
		KeyUpToDate:             "You are running the latest version (%s).",
		KeyUpdateAvailable:      "Version %s is available.",
		KeyUpdateCheckFailed:    "Could not check for updates",
		KeyApplyFailed:          "Could not set the wallpaper",
		KeyInvalidInterval:      "Update interval must be between 0.1 and 8760 hours",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:             "Bing Wallpaper",
		KeyNoImage:              "Обои ещё не загружены",
		KeyPrevious:             "Предыдущие",
		KeyNext:                 "Следующие",
		KeyOpenImage:            "Открыть изображение",
		KeyRevealImage:          "Показать в Finder",
		KeyAboutImage:           "Об изображении…",
		KeyCopyLink:             "Скопировать ссылку",
		KeyRefresh:              "Обновить сейчас",
		KeySettings:             "Настройки…",
		KeyCheckUpdates:         "Проверить обновления…",
		KeyQuit:                 "Выход",
		KeyStatusUpdating:       "Обновление…",
		KeyStatusNextUpdate:     "Следующее обновление: %s",
		KeyStatusWaitingNetwork: "Ожидание сети",
		KeyStatusIdle:           "Обновление не запланировано",
		KeyMarket:               "Регион",
		KeyIntervalHours:        "Обновлять каждые (часы)",
		KeyScheduledUpdate:      "Обновлять ежедневно в заданное время",
		KeyScheduledTime:        "Время",
		KeyKeepImages:           "Хранить изображения",
		KeyShowNotification:     "Уведомлять о новых обоях",
		KeyAutoSetNewest:        "Автоматически ставить новые обои",
		KeyHideMenuBarIcon:      "Скрыть значок в строке меню",
		KeyImageDirectory:       "Папка изображений",
		KeyBrowse:               "Обзор",
		KeySave:                 "Сохранить",
		KeyResetDatabase:        "Сбросить базу",
		KeyResetConfirm:         "Удалить все сохранённые обои, кроме сегодняшних, и загрузить их заново?",
		KeySettingsSaved:        "Настройки сохранены",
		KeyUpToDate:             "У вас последняя версия (%s).",
		KeyUpdateAvailable:      "Доступна версия %s.",
		KeyUpdateCheckFailed:    "Не удалось проверить обновления",
		KeyApplyFailed:          "Не удалось установить обои",
		KeyInvalidInterval:      "Интервал должен быть от 0,1 до 8760 часов",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:             "Bing Wallpaper",
		KeyNoImage:              "Nenhum papel de parede baixado ainda",
		KeyPrevious:             "Anterior",
		KeyNext:                 "Próximo",
		KeyOpenImage:            "Abrir Imagem",
		KeyRevealImage:          "Mostrar no Finder",
		KeyAboutImage:           "Sobre Esta Imagem…",
		KeyCopyLink:             "Copiar Link da Imagem",
		KeyRefresh:              "Atualizar Agora",
		KeySettings:             "Configurações…",
		KeyCheckUpdates:         "Verificar Atualizações…",
		KeyQuit:                 "Sair",
		KeyStatusUpdating:       "Atualizando…",
		KeyStatusNextUpdate:     "Próxima atualização: %s",
		KeyStatusWaitingNetwork: "Aguardando rede",
		KeyStatusIdle:           "Nenhuma atualização agendada",
		KeyMarket:               "Mercado",
		KeyIntervalHours:        "Atualizar a cada (horas)",
		KeyScheduledUpdate:      "Atualizar diariamente em horário fixo",
		KeyScheduledTime:        "Horário",
		KeyKeepImages:           "Manter imagens por",
		KeyShowNotification:     "Notificar quando chegarem novos papéis de parede",
		KeyAutoSetNewest:        "Definir o mais recente automaticamente",
		KeyHideMenuBarIcon:      "Ocultar ícone da barra de menus",
		KeyImageDirectory:       "Pasta de imagens",
		KeyBrowse:               "Navegar",
		KeySave:                 "Salvar",
		KeyResetDatabase:        "Redefinir Banco de Dados",
		KeyResetConfirm:         "Excluir todos os papéis de parede salvos, exceto o de hoje, e baixá-los novamente?",
		KeySettingsSaved:        "Configurações salvas",
		KeyUpToDate:             "Você está usando a versão mais recente (%s).",
		KeyUpdateAvailable:      "A versão %s está disponível.",
		KeyUpdateCheckFailed:    "Não foi possível verificar atualizações",
		KeyApplyFailed:          "Não foi possível definir o papel de parede",
		KeyInvalidInterval:      "O intervalo deve estar entre 0,1 e 8760 horas",
	}
}
