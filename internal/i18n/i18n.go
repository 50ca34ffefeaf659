// Package i18n translates user-facing messages for the count service.
// Scanner operators get messages in English, Spanish or Portuguese.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has its own message table.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale extracts the locale from the Accept-Language header of the request.
// Only the first preference is considered.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// e.g. "es-CL,es;q=0.9,en;q=0.8"
	lang := strings.TrimSpace(strings.Split(strings.Split(acceptLang, ",")[0], ";")[0])
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)
	if GetTranslator().Supports(lang) {
		return lang
	}
	return DefaultLocale
}

// T translates key for the locale of the current request.
func T(c *gin.Context, key string) string {
	return GetTranslator().Translate(key, GetLocale(c))
}

func defaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			ErrKeyInvalidRequest:     "Invalid request",
			ErrKeyInvalidRequestBody: "Invalid request body",
			ErrKeyInternalError:      "An unexpected error occurred",
			ErrKeyUnauthorized:       "Unauthorized",
			ErrKeyNotFound:           "Not found",
			ErrKeyConflict:           "Conflict",
			ErrKeyInvalidToken:       "Invalid or expired token",
			ErrKeyTokenRequired:      "Authentication token is required",

			ErrKeyEmptyCode:          "Scan or type a product code",
			ErrKeyNoActiveSession:    "Log in with operator, warehouse and location first",
			ErrKeyLoginFields:        "Operator PIN, warehouse and location are required",
			ErrKeyResolutionRequired: "This product was already counted: choose sum, replace or cancel",
			ErrKeyIndexOutOfRange:    "That row no longer exists",
			ErrKeyStaleScan:          "The list changed while you were answering, scan the product again",
			ErrKeyOffline:            "No connection. The count is safely stored on this device",
			ErrKeyEmptySync:          "Count at least one product before sending to the ERP",
			ErrKeySyncFailed:         "Synchronization failed",
			ErrKeyERPUnavailable:     "The ERP is temporarily unavailable, try again later",
			ErrKeyStoreFailure:       "The count could not be saved, try again",
			ErrKeyDeviceInUse:        "This device has an open session, log in again with its token",
			ErrKeyQuantityTooLarge:   "The quantity is too large",

			SuccessKeySessionStarted:  "Session started",
			SuccessKeyScanRecorded:    "Count updated",
			SuccessKeyScanCancelled:   "Nothing changed",
			SuccessKeyQuantityUpdated: "Quantity updated",
			SuccessKeyRowDeleted:      "Row deleted",
			SuccessKeySynced:          "Count records were created in the ERP",
			SuccessKeyLabelQueued:     "Label sent to the warehouse printer",
		},
		"es": {
			ErrKeyInvalidRequest:     "Solicitud inválida",
			ErrKeyInvalidRequestBody: "Cuerpo de la solicitud inválido",
			ErrKeyInternalError:      "Ocurrió un error inesperado",
			ErrKeyUnauthorized:       "No autorizado",
			ErrKeyNotFound:           "No encontrado",
			ErrKeyConflict:           "Conflicto",
			ErrKeyInvalidToken:       "Token inválido o expirado",
			ErrKeyTokenRequired:      "Se requiere un token de autenticación",

			ErrKeyEmptyCode:          "Escanee o ingrese un código de producto",
			ErrKeyNoActiveSession:    "Primero ingrese operario, bodega y ubicación",
			ErrKeyLoginFields:        "Debe ingresar PIN, bodega y ubicación",
			ErrKeyResolutionRequired: "Producto ya contado: elija sumar, reemplazar o cancelar",
			ErrKeyIndexOutOfRange:    "Esa fila ya no existe",
			ErrKeyStaleScan:          "La lista cambió mientras respondía, escanee el producto de nuevo",
			ErrKeyOffline:            "Sin conexión. Los datos están guardados en el equipo de forma segura",
			ErrKeyEmptySync:          "Debe contar al menos un producto para enviar al ERP",
			ErrKeySyncFailed:         "Error de sincronización",
			ErrKeyERPUnavailable:     "El ERP no está disponible, intente más tarde",
			ErrKeyStoreFailure:       "No se pudo guardar el conteo, intente de nuevo",
			ErrKeyDeviceInUse:        "Este equipo tiene una sesión abierta, ingrese de nuevo con su token",
			ErrKeyQuantityTooLarge:   "La cantidad es demasiado grande",

			SuccessKeySessionStarted:  "Sesión iniciada",
			SuccessKeyScanRecorded:    "Conteo actualizado",
			SuccessKeyScanCancelled:   "Sin cambios",
			SuccessKeyQuantityUpdated: "Cantidad actualizada",
			SuccessKeyRowDeleted:      "Fila eliminada",
			SuccessKeySynced:          "Los registros de conteo fueron creados en el ERP",
			SuccessKeyLabelQueued:     "Etiqueta enviada a la impresora de la bodega",
		},
		"pt": {
			ErrKeyInvalidRequest:     "Requisição inválida",
			ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
			ErrKeyInternalError:      "Ocorreu um erro inesperado",
			ErrKeyUnauthorized:       "Não autorizado",
			ErrKeyNotFound:           "Não encontrado",
			ErrKeyConflict:           "Conflito",
			ErrKeyInvalidToken:       "Token inválido ou expirado",
			ErrKeyTokenRequired:      "Token de autenticação é obrigatório",

			ErrKeyEmptyCode:          "Escaneie ou digite um código de produto",
			ErrKeyNoActiveSession:    "Entre com operador, depósito e localização primeiro",
			ErrKeyLoginFields:        "PIN, depósito e localização são obrigatórios",
			ErrKeyResolutionRequired: "Produto já contado: escolha somar, substituir ou cancelar",
			ErrKeyIndexOutOfRange:    "Essa linha não existe mais",
			ErrKeyStaleScan:          "A lista mudou enquanto você respondia, escaneie o produto novamente",
			ErrKeyOffline:            "Sem conexão. A contagem está salva neste dispositivo",
			ErrKeyEmptySync:          "Conte pelo menos um produto antes de enviar ao ERP",
			ErrKeySyncFailed:         "Falha na sincronização",
			ErrKeyERPUnavailable:     "O ERP está temporariamente indisponível, tente mais tarde",
			ErrKeyStoreFailure:       "Não foi possível salvar a contagem, tente novamente",
			ErrKeyDeviceInUse:        "Este dispositivo tem uma sessão aberta, entre novamente com o token dele",
			ErrKeyQuantityTooLarge:   "A quantidade é grande demais",

			SuccessKeySessionStarted:  "Sessão iniciada",
			SuccessKeyScanRecorded:    "Contagem atualizada",
			SuccessKeyScanCancelled:   "Nada foi alterado",
			SuccessKeyQuantityUpdated: "Quantidade atualizada",
			SuccessKeyRowDeleted:      "Linha removida",
			SuccessKeySynced:          "Os registros de contagem foram criados no ERP",
			SuccessKeyLabelQueued:     "Etiqueta enviada para a impressora do depósito",
		},
	}
}
