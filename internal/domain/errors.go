package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrInvalidCUIT  = errors.New("CUIT inválida")
	ErrUpstream     = errors.New("error en la Central de Deudores")
	ErrUnauthorized = errors.New("no autorizado")
)
