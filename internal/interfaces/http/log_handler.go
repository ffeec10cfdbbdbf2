package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dronalogitech/whmapping/internal/application/dto"
	"github.com/dronalogitech/whmapping/internal/application/movementlog"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// LogHandler lectura y borrado administrativo de la bitácora de movimientos.
type LogHandler struct {
	uc  *movementlog.UseCase
	log *logger.Logger
}

// NewLogHandler construye el handler.
func NewLogHandler(uc *movementlog.UseCase, log *logger.Logger) *LogHandler {
	return &LogHandler{uc: uc, log: log}
}

// query arma los filtros; un usuario que no es admin solo ve sus propios movimientos.
func (h *LogHandler) query(c *fiber.Ctx) movementlog.Query {
	q := movementlog.Query{
		Action:   c.Query("action"),
		SKU:      c.Query("sku"),
		Location: c.Query("location"),
		User:     c.Query("user"),
		Limit:    c.QueryInt("limit", movementlog.DefaultLimit),
		Offset:   c.QueryInt("offset", 0),
	}
	if !IsAdmin(c) {
		q.User = GetActor(c)
	}
	return q
}

// List godoc
// @Summary      Listar bitácora de movimientos
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        action    query  string  false  "PUTAWAY | MOVE | ADJUST"
// @Param        sku       query  string  false  "EAN"
// @Param        location  query  string  false  "origen o destino"
// @Param        user      query  string  false  "usuario (solo admin)"
// @Param        limit     query  int     false  "máx 200"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200   {object}  dto.LogsResponse
// @Router       /api/logs [get]
func (h *LogHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.Context(), h.query(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	data := make([]dto.MovementRecordResponse, 0, len(page.Records))
	for _, r := range page.Records {
		data = append(data, dto.ToMovementRecordResponse(r))
	}
	return c.JSON(dto.LogsResponse{
		Data: data,
		Pagination: dto.PageResponse{
			Total:   page.Total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: page.HasMore,
		},
	})
}

// Stats godoc
// @Summary      Estadísticas de la bitácora con los mismos filtros que el listado
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.LogStatsResponse
// @Router       /api/logs/stats [get]
func (h *LogHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context(), h.query(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.LogStatsResponse{
		TotalLocations: stats.TotalLocations,
		TotalSKUs:      stats.TotalSKUs,
		TotalEANs:      stats.TotalEANs,
		TotalQuantity:  stats.TotalQuantity,
	})
}

// Delete godoc
// @Summary      Eliminar un registro de bitácora (solo admin)
// @Tags         logs
// @Security     Bearer
// @Param        id  path  string  true  "id del registro"
// @Success      200   {object}  dto.DeleteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/logs/{id} [delete]
func (h *LogHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DeleteResponse{Deleted: 1})
}

// BulkDelete godoc
// @Summary      Eliminar varios registros de bitácora (solo admin)
// @Tags         logs
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.BulkDeleteRequest  true  "ids"
// @Success      200   {object}  dto.DeleteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/logs/bulk [delete]
func (h *LogHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request: ids array is required"})
	}
	n, err := h.uc.DeleteMany(c.Context(), in.IDs, GetActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DeleteResponse{Deleted: n})
}
