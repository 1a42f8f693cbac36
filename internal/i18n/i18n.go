// Package i18n provides internationalization support for the kitchen receipt service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once

	// supportedLocales is ordered to match supportedTags; the first entry is the fallback.
	supportedLocales = []string{"en", "pt", "nl"}
	supportedTags    = []language.Tag{language.English, language.Portuguese, language.Dutch}
	localeMatcher    = language.NewMatcher(supportedTags)
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale or the key is not found, and to
// the key itself when English has no entry either.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the best supported locale for the request's
// Accept-Language header, honouring quality values.
func GetLocale(c *gin.Context) string {
	return MatchLocale(c.GetHeader(AcceptLanguageHeader))
}

// MatchLocale resolves an Accept-Language value to a supported locale.
func MatchLocale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}

	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supportedLocales) {
		return DefaultLocale
	}
	return supportedLocales[idx]
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":            "Invalid request",
			"error.invalid_request_body":       "Invalid request body",
			"error.internal_error":             "An unexpected error occurred",
			"error.unauthorized":               "Unauthorized",
			"error.api_key_required":           "API key is required",
			"error.invalid_api_key":            "Invalid API key",
			"error.forbidden":                  "Forbidden",
			"error.not_found":                  "Not found",
			"error.rate_limit_exceeded":        "Too many requests, please try again later",
			"error.invalid_token":              "Invalid or expired token",
			"error.timeout":                    "The request timed out",
			"error.validation.receipt_request": "Receipt request is invalid",
			"error.validation.menu_item":       "Menu item is invalid",
			"error.menu_item_not_found":        "Menu item not found",
			"error.catalog_unavailable":        "Menu catalog is temporarily unavailable",
			"error.database_not_configured":    "This feature requires a database",
			"error.idempotency_in_flight":      "A request with this Idempotency-Key is still being processed",

			"success.receipt_generated": "Kitchen receipt generated",
			"success.menu_refreshed":    "Menu refreshed",
		},
		"pt": {
			"error.invalid_request":            "Requisição inválida",
			"error.invalid_request_body":       "Corpo da requisição inválido",
			"error.internal_error":             "Ocorreu um erro inesperado",
			"error.unauthorized":               "Não autorizado",
			"error.api_key_required":           "Chave de API é obrigatória",
			"error.invalid_api_key":            "Chave de API inválida",
			"error.forbidden":                  "Proibido",
			"error.not_found":                  "Não encontrado",
			"error.rate_limit_exceeded":        "Muitas requisições, tente novamente mais tarde",
			"error.invalid_token":              "Token inválido ou expirado",
			"error.timeout":                    "A requisição expirou",
			"error.validation.receipt_request": "Pedido de recibo inválido",
			"error.validation.menu_item":       "Item do cardápio inválido",
			"error.menu_item_not_found":        "Item do cardápio não encontrado",
			"error.catalog_unavailable":        "Cardápio temporariamente indisponível",
			"error.database_not_configured":    "Este recurso requer um banco de dados",
			"error.idempotency_in_flight":      "Uma requisição com esta Idempotency-Key ainda está em processamento",

			"success.receipt_generated": "Recibo da cozinha gerado",
			"success.menu_refreshed":    "Cardápio atualizado",
		},
		"nl": {
			"error.invalid_request":            "Ongeldig verzoek",
			"error.invalid_request_body":       "Ongeldige aanvraag body",
			"error.internal_error":             "Er is een onverwachte fout opgetreden",
			"error.unauthorized":               "Niet geautoriseerd",
			"error.api_key_required":           "API-sleutel is vereist",
			"error.invalid_api_key":            "Ongeldige API-sleutel",
			"error.forbidden":                  "Verboden",
			"error.not_found":                  "Niet gevonden",
			"error.rate_limit_exceeded":        "Te veel verzoeken, probeer het later opnieuw",
			"error.invalid_token":              "Ongeldig of verlopen token",
			"error.timeout":                    "Het verzoek is verlopen",
			"error.validation.receipt_request": "Ongeldig bonverzoek",
			"error.validation.menu_item":       "Ongeldig menu-item",
			"error.menu_item_not_found":        "Menu-item niet gevonden",
			"error.catalog_unavailable":        "Menukaart tijdelijk niet beschikbaar",
			"error.database_not_configured":    "Deze functie vereist een database",
			"error.idempotency_in_flight":      "Een verzoek met deze Idempotency-Key wordt nog verwerkt",

			"success.receipt_generated": "Keukenbon aangemaakt",
			"success.menu_refreshed":    "Menukaart bijgewerkt",
		},
	}
}
