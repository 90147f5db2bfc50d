package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consultor-bcra/internal/application/consulta"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
	"github.com/jhoicas/consultor-bcra/pkg/logger"
)

// HeaderBCRAToken token propio de Estadísticas BCRA (opcional si hay uno configurado).
const HeaderBCRAToken = "X-BCRA-Token"

// ConsultaHandler maneja las consultas a la Central de Deudores.
type ConsultaHandler struct {
	uc  *consulta.UseCase
	log *logger.Logger
}

// NewConsultaHandler construye el handler.
func NewConsultaHandler(uc *consulta.UseCase, log *logger.Logger) *ConsultaHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ConsultaHandler{uc: uc, log: log.Child("http")}
}

// Validacion godoc
// @Summary      Validar CUIT
// @Description  Verifica el dígito verificador sin consultar la Central.
// @Tags         cuit
// @Produce      json
// @Param        cuit  path  string  true  "CUIT (con o sin guiones)"
// @Success      200   {object}  dto.ValidacionDTO
// @Router       /api/cuit/{cuit}/validacion [get]
func (h *ConsultaHandler) Validacion(c *fiber.Ctx) error {
	return c.JSON(h.uc.Validar(c.Params("cuit")))
}

// Deudas godoc
// @Summary      Deudas actuales
// @Tags         deudas
// @Produce      json
// @Param        cuit  path  string  true  "CUIT"
// @Success      200   {object}  dto.DeudasDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/deudas/{cuit} [get]
func (h *ConsultaHandler) Deudas(c *fiber.Ctx) error {
	out, err := h.uc.Deudas(c.UserContext(), c.Params("cuit"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Historicas godoc
// @Summary      Deudas históricas (24 meses)
// @Tags         deudas
// @Produce      json
// @Param        cuit  path  string  true  "CUIT"
// @Success      200   {object}  dto.HistoricasDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/deudas/{cuit}/historicas [get]
func (h *ConsultaHandler) Historicas(c *fiber.Ctx) error {
	out, err := h.uc.Historicas(c.UserContext(), c.Params("cuit"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Cheques godoc
// @Summary      Cheques rechazados
// @Tags         cheques
// @Produce      json
// @Param        cuit   path   string  true   "CUIT"
// @Param        meses  query  int     false  "Últimos N meses"  default(12)
// @Success      200    {object}  dto.ChequesDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/deudas/{cuit}/cheques [get]
func (h *ConsultaHandler) Cheques(c *fiber.Ctx) error {
	out, err := h.uc.Cheques(c.UserContext(), c.Params("cuit"), c.QueryInt("meses", consulta.DefaultMonths))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// ChequesEstadisticas godoc
// @Summary      Cheques rechazados (Estadísticas BCRA)
// @Tags         cheques
// @Produce      json
// @Param        cuit          path    string  true   "CUIT"
// @Param        X-BCRA-Token  header  string  false  "Token de Estadísticas BCRA"
// @Success      200           {object}  dto.ChequesDTO
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      401           {object}  dto.ErrorResponse
// @Router       /api/deudas/{cuit}/cheques/estadisticas [get]
func (h *ConsultaHandler) ChequesEstadisticas(c *fiber.Ctx) error {
	out, err := h.uc.ChequesEstadisticas(c.UserContext(), c.Params("cuit"), c.Get(HeaderBCRAToken))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar informe
// @Tags         deudas
// @Produce      octet-stream
// @Param        cuit     path   string  true   "CUIT"
// @Param        fuente   query  string  false  "deudas | historicas"  default(historicas)
// @Param        formato  query  string  false  "csv | xlsx | pdf"     default(csv)
// @Success      200      {file}    file
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/deudas/{cuit}/export [get]
func (h *ConsultaHandler) Export(c *fiber.Ctx) error {
	f, err := h.uc.Export(c.UserContext(), c.Params("cuit"),
		c.Query("fuente", entity.SourceHistoricas), c.Query("formato", "csv"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Attachment(f.Filename)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Content)
}

// Historial godoc
// @Summary      Historial de consultas
// @Tags         consultas
// @Produce      json
// @Param        limit  query  int     false  "Límite"  default(20)
// @Param        cuit   query  string  false  "Filtrar por CUIT"
// @Success      200    {object}  dto.QueryLogListResponse
// @Router       /api/consultas [get]
func (h *ConsultaHandler) Historial(c *fiber.Ctx) error {
	out, err := h.uc.Historial(c.UserContext(), c.Query("cuit"), c.QueryInt("limit", consulta.DefaultHistLimit))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *ConsultaHandler) fail(c *fiber.Ctx, err error) error {
	h.log.Warn().Err(err).
		Str("request_id", GetRequestID(c)).
		Str("path", c.Path()).
		Msg("consulta con error")
	return writeError(c, err)
}
