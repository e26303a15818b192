package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/application/stockregister"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// StockHandler expone el registro de stock y los listados por fuente.
type StockHandler struct {
	uc  *stockregister.UseCase
	log zerolog.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stockregister.UseCase, log zerolog.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

func parseQuery(c *fiber.Ctx) (dto.StockQuery, error) {
	var q dto.StockQuery
	if err := c.QueryParser(&q); err != nil {
		return q, fmt.Errorf("parámetros de consulta inválidos: %w", domain.ErrInvalidInput)
	}
	return q, nil
}

func (h *StockHandler) fail(c *fiber.Ctx, err error) error {
	h.log.Warn().Err(err).Str("path", c.Path()).Msg("error en reporte de stock")
	return respondError(c, err)
}

// Summary godoc
// @Summary      Registro de stock del período
// @Description  Por código: stock anterior, recibido, vendido y stock final dentro de la ventana.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD). Default: hoy."
// @Param        code        query  string  false  "Búsqueda parcial por código"
// @Success      200  {object}  dto.StockSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// ExportSummary godoc
// @Summary      Descargar el registro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  false  "csv | xlsx | pdf (default csv)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/summary/export [get]
func (h *StockHandler) ExportSummary(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	format, err := stockregister.ParseExportFormat(q.Format)
	if err != nil {
		return respondError(c, err)
	}
	file, err := h.uc.ExportSummary(c.UserContext(), q, format)
	if err != nil {
		return h.fail(c, err)
	}
	return sendFile(c, file)
}

// Balances godoc
// @Summary      Saldos diarios de un código
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        code        path   string  true   "Código de producto"
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD). Sin fechas: historia completa."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.BalanceHistoryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/balances/{code} [get]
func (h *StockHandler) Balances(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	code, err := url.PathUnescape(c.Params("code"))
	if err != nil {
		return respondError(c, fmt.Errorf("code: %w", domain.ErrInvalidInput))
	}
	out, err := h.uc.Balances(c.UserContext(), code, q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// TopDispatched godoc
// @Summary      Códigos más despachados
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        top_n  query  int  false  "Máx. códigos (default 10, max 100)"
// @Success      200  {object}  dto.TopDispatchedDTO
// @Router       /api/stock/top-dispatched [get]
func (h *StockHandler) TopDispatched(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.TopDispatched(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// SourceListing godoc
// @Summary      Movimientos de una fuente por día y código
// @Tags         sources
// @Security     Bearer
// @Produce      json
// @Param        source  path  string  true  "sales | cost_center | received | adjustment"
// @Success      200  {object}  dto.SourceListingDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sources/{source} [get]
func (h *StockHandler) SourceListing(c *fiber.Ctx) error {
	source, err := entity.ParseEventSource(c.Params("source"))
	if err != nil {
		return respondError(c, err)
	}
	q, err := parseQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SourceListing(c.UserContext(), source, q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// ExportSource godoc
// @Summary      Descargar el listado de una fuente
// @Tags         sources
// @Security     Bearer
// @Produce      octet-stream
// @Param        source  path   string  true   "sales | cost_center | received | adjustment"
// @Param        format  query  string  false  "csv | xlsx (default csv)"
// @Success      200
// @Router       /api/sources/{source}/export [get]
func (h *StockHandler) ExportSource(c *fiber.Ctx) error {
	source, err := entity.ParseEventSource(c.Params("source"))
	if err != nil {
		return respondError(c, err)
	}
	q, err := parseQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	format, err := stockregister.ParseExportFormat(q.Format)
	if err != nil {
		return respondError(c, err)
	}
	file, err := h.uc.ExportSource(c.UserContext(), source, q, format)
	if err != nil {
		return h.fail(c, err)
	}
	return sendFile(c, file)
}

// ImportSource godoc
// @Summary      Cargar una planilla en una fuente (sólo admin)
// @Tags         sources
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        source    path      string  true   "sales | cost_center | received | adjustment"
// @Param        file      formData  file    true   "XLSX o CSV"
// @Param        encoding  formData  string  false  "CSV: utf-8 | latin1"
// @Param        sheet     formData  string  false  "XLSX: nombre de la hoja"
// @Param        replace   formData  bool    false  "vaciar la tabla antes de cargar"
// @Success      201  {object}  dto.ImportResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sources/{source}/import [post]
func (h *StockHandler) ImportSource(c *fiber.Ctx) error {
	source, err := entity.ParseEventSource(c.Params("source"))
	if err != nil {
		return respondError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo 'file' requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer f.Close()

	opts := stockregister.ImportOptions{
		Encoding: c.FormValue("encoding"),
		Sheet:    c.FormValue("sheet"),
		Replace:  c.FormValue("replace") == "true",
	}
	res, err := h.uc.Import(c.UserContext(), source, f, fh.Filename, opts)
	if err != nil {
		return h.fail(c, err)
	}
	h.log.Info().Str("user_id", GetUserID(c)).Str("batch_id", res.BatchID).Msg("planilla importada")
	return c.Status(fiber.StatusCreated).JSON(res)
}

func sendFile(c *fiber.Ctx, f *stockregister.ExportFile) error {
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}
