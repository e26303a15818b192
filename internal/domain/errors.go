package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrInvalidWindow: start_date posterior a end_date. Es un error de uso, no se corrige en silencio.
	ErrInvalidWindow = errors.New("ventana inválida: start_date no puede ser posterior a end_date")
	// ErrUnknownSource: nombre de fuente de eventos desconocido.
	ErrUnknownSource = errors.New("fuente de eventos desconocida")
	// ErrDataUnavailable: la fuente de datos no respondió (única condición de I/O que sube al caller).
	ErrDataUnavailable = errors.New("datos no disponibles")
)
