package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consultor-bcra/internal/application/dto"
	"github.com/jhoicas/consultor-bcra/internal/domain"
)

// writeError traduce errores de dominio a status HTTP y cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	switch {
	case errors.Is(err, domain.ErrInvalidCUIT):
		status, code, msg = fiber.StatusBadRequest, "INVALID_CUIT", "CUIT inválida: se esperan 11 dígitos con dígito verificador correcto"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "INVALID_INPUT", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "la Central de Deudores no informa datos para la CUIT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "token de Estadísticas BCRA inválido"
	case errors.Is(err, context.DeadlineExceeded):
		status, code, msg = fiber.StatusGatewayTimeout, "TIMEOUT", "la Central de Deudores no respondió a tiempo"
	case errors.Is(err, domain.ErrUpstream):
		status, code, msg = fiber.StatusBadGateway, "UPSTREAM", err.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
