package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")

	ErrInvalidRole      = errors.New("rol inválido")
	ErrInvalidCategory  = errors.New("categoría inválida")
	ErrInvalidRating    = errors.New("la calificación debe ser un entero entre 1 y 5")
	ErrInvalidSchedule  = errors.New("horario inválido")
	ErrNotAManager      = errors.New("el usuario no tiene rol MARKET_MANAGER")
	ErrMarketHasManager = errors.New("el gestor ya administra otro mercado")
	ErrUserOwnsMarket   = errors.New("el usuario administra un mercado")
	ErrStorageDisabled  = errors.New("almacenamiento de imágenes no configurado")
	ErrUnsupportedImage = errors.New("formato de imagen no soportado")
)
