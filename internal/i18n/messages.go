package i18n

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:       "Invalid request",
		ErrKeyInvalidRequestBody:   "Invalid request body",
		ErrKeyInternalError:        "An unexpected error occurred",
		ErrKeyUnauthorized:         "Unauthorized",
		ErrKeyAPIKeyRequired:       "API key is required",
		ErrKeyInvalidAPIKey:        "Invalid API key",
		ErrKeyForbidden:            "Forbidden",
		ErrKeyNotFound:             "Not found",
		ErrKeyRateLimitExceeded:    "Too many requests, please try again later",
		ErrKeyConflict:             "Conflict",
		ErrKeyInvalidToken:         "Invalid or expired token",
		ErrKeyTokenRequired:        "Authentication token is required",
		ErrKeyTimeout:              "Request timed out",
		ErrKeySessionRequired:      "A storefront session is required",
		ErrKeyInvalidQuantity:      "Quantity must be a positive integer",
		ErrKeyInvalidConfiguration: "This pack is not configured correctly and cannot be sold",
		ErrKeyComponentUnavailable: "A product of this pack is not available",
		ErrKeyProductNotFound:      "Product not found",
		ErrKeyProductUnavailable:   "This product is not available",
		ErrKeyBundleNotFound:       "Pack not found",
		ErrKeyBundleModeLocked:     "The pricing mode of a published pack cannot be changed",
		ErrKeyUnpublishedComponent: "All products of a pack must be published before the pack",
		ErrKeyPublishedInBundle:    "The product is part of a published pack",
		ErrKeyLineNotFound:         "Cart line not found",
		ErrKeyComponentLineLocked:  "Pack components can only be changed through their pack",
		ErrKeyCartConflict:         "The cart was changed by another request, please retry",
		ErrKeyServiceUnavailable:   "Service temporarily unavailable",
	},
	"pt": {
		ErrKeyInvalidRequest:       "Requisição inválida",
		ErrKeyInvalidRequestBody:   "Corpo da requisição inválido",
		ErrKeyInternalError:        "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:         "Não autorizado",
		ErrKeyAPIKeyRequired:       "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:        "Chave de API inválida",
		ErrKeyForbidden:            "Proibido",
		ErrKeyNotFound:             "Não encontrado",
		ErrKeyRateLimitExceeded:    "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:             "Conflito",
		ErrKeyInvalidToken:         "Token inválido ou expirado",
		ErrKeyTokenRequired:        "Token de autenticação é obrigatório",
		ErrKeyTimeout:              "Tempo da requisição esgotado",
		ErrKeySessionRequired:      "É necessária uma sessão da loja",
		ErrKeyInvalidQuantity:      "A quantidade deve ser um inteiro positivo",
		ErrKeyInvalidConfiguration: "Este pacote não está configurado corretamente e não pode ser vendido",
		ErrKeyComponentUnavailable: "Um produto deste pacote não está disponível",
		ErrKeyProductNotFound:      "Produto não encontrado",
		ErrKeyProductUnavailable:   "Este produto não está disponível",
		ErrKeyBundleNotFound:       "Pacote não encontrado",
		ErrKeyBundleModeLocked:     "O modo de preço de um pacote publicado não pode ser alterado",
		ErrKeyUnpublishedComponent: "Todos os produtos do pacote devem ser publicados antes do pacote",
		ErrKeyPublishedInBundle:    "O produto faz parte de um pacote publicado",
		ErrKeyLineNotFound:         "Linha do carrinho não encontrada",
		ErrKeyComponentLineLocked:  "Componentes do pacote só podem ser alterados pelo pacote",
		ErrKeyCartConflict:         "O carrinho foi alterado por outra requisição, tente novamente",
		ErrKeyServiceUnavailable:   "Serviço temporariamente indisponível",
	},
	"nl": {
		ErrKeyInvalidRequest:       "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:   "Ongeldige aanvraag body",
		ErrKeyInternalError:        "Er is een onverwachte fout opgetreden",
		ErrKeyUnauthorized:         "Niet geautoriseerd",
		ErrKeyAPIKeyRequired:       "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:        "Ongeldige API-sleutel",
		ErrKeyForbidden:            "Verboden",
		ErrKeyNotFound:             "Niet gevonden",
		ErrKeyRateLimitExceeded:    "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:             "Conflict",
		ErrKeyInvalidToken:         "Ongeldig of verlopen token",
		ErrKeyTokenRequired:        "Authenticatietoken is vereist",
		ErrKeyTimeout:              "Verzoek verlopen",
		ErrKeySessionRequired:      "Een winkelsessie is vereist",
		ErrKeyInvalidQuantity:      "Aantal moet een positief geheel getal zijn",
		ErrKeyInvalidConfiguration: "Dit pakket is onjuist geconfigureerd en kan niet worden verkocht",
		ErrKeyComponentUnavailable: "Een product van dit pakket is niet beschikbaar",
		ErrKeyProductNotFound:      "Product niet gevonden",
		ErrKeyProductUnavailable:   "Dit product is niet beschikbaar",
		ErrKeyBundleNotFound:       "Pakket niet gevonden",
		ErrKeyBundleModeLocked:     "De prijsmodus van een gepubliceerd pakket kan niet worden gewijzigd",
		ErrKeyUnpublishedComponent: "Alle producten van een pakket moeten eerst worden gepubliceerd",
		ErrKeyPublishedInBundle:    "Het product maakt deel uit van een gepubliceerd pakket",
		ErrKeyLineNotFound:         "Winkelwagenregel niet gevonden",
		ErrKeyComponentLineLocked:  "Pakketonderdelen kunnen alleen via hun pakket worden gewijzigd",
		ErrKeyCartConflict:         "De winkelwagen is door een ander verzoek gewijzigd, probeer opnieuw",
		ErrKeyServiceUnavailable:   "Dienst tijdelijk niet beschikbaar",
	},
}
