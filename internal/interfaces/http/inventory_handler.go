package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dronalogitech/whmapping/internal/application/dto"
	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// InventoryHandler expone el ledger (putaway, move, adjust) y las consultas de saldo.
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
	lookup *inventory.LookupUseCase
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, lookup *inventory.LookupUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, lookup: lookup, log: log}
}

// Putaway godoc
// @Summary      Ingresar SKUs a una ubicación
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PutawayRequest  true  "location_code, items[{sku_code, item_code, qty}]"
// @Success      201   {object}  dto.ActionResult[[]dto.InventoryRecordResponse]
// @Failure      400   {object}  dto.ActionResult[[]dto.InventoryRecordResponse]
// @Failure      500   {object}  dto.ActionResult[[]dto.InventoryRecordResponse]
// @Router       /api/inventory/putaway [post]
func (h *InventoryHandler) Putaway(c *fiber.Ctx) error {
	var in dto.PutawayRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody[[]dto.InventoryRecordResponse](c)
	}
	items := make([]inventory.PutawayItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.PutawayItem{SKUCode: it.SKUCode, ItemCode: it.ItemCode, Qty: it.Qty})
	}
	recs, err := h.ledger.Putaway(c.Context(), inventory.PutawayInput{
		LocationCode: in.LocationCode,
		Items:        items,
		User:         GetActor(c),
		HandlerName:  in.HandlerName,
		Note:         in.Note,
	})
	return respondResult(c, h.log, fiber.StatusCreated, dto.ToInventoryRecordResponses(recs), err)
}

// Move godoc
// @Summary      Trasladar un SKU entre ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveRequest  true  "from_location_code, to_location_code, sku_code, qty"
// @Success      200   {object}  dto.ActionResult[dto.MoveResponse]
// @Failure      400   {object}  dto.ActionResult[dto.MoveResponse]
// @Failure      404   {object}  dto.ActionResult[dto.MoveResponse]
// @Failure      409   {object}  dto.ActionResult[dto.MoveResponse]
// @Router       /api/inventory/move [post]
func (h *InventoryHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody[dto.MoveResponse](c)
	}
	res, err := h.ledger.Move(c.Context(), inventory.MoveInput{
		FromLocationCode: in.FromLocationCode,
		ToLocationCode:   in.ToLocationCode,
		SKUCode:          in.SKUCode,
		Qty:              in.Qty,
		User:             GetActor(c),
		HandlerName:      in.HandlerName,
		Note:             in.Note,
	})
	var out dto.MoveResponse
	if res != nil {
		out = dto.MoveResponse{
			From: dto.ToInventoryRecordResponse(res.From),
			To:   dto.ToInventoryRecordResponse(res.To),
		}
	}
	return respondResult(c, h.log, fiber.StatusOK, out, err)
}

// Adjust godoc
// @Summary      Ajustar el saldo de un SKU (delta con signo, nota obligatoria)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "location_code, sku_code, qty, note"
// @Success      200   {object}  dto.ActionResult[dto.InventoryRecordResponse]
// @Failure      400   {object}  dto.ActionResult[dto.InventoryRecordResponse]
// @Failure      409   {object}  dto.ActionResult[dto.InventoryRecordResponse]
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody[dto.InventoryRecordResponse](c)
	}
	rec, err := h.ledger.Adjust(c.Context(), inventory.AdjustInput{
		LocationCode: in.LocationCode,
		SKUCode:      in.SKUCode,
		Qty:          in.Qty,
		User:         GetActor(c),
		HandlerName:  in.HandlerName,
		Note:         in.Note,
	})
	var out dto.InventoryRecordResponse
	if rec != nil {
		out = dto.ToInventoryRecordResponse(*rec)
	}
	return respondResult(c, h.log, fiber.StatusOK, out, err)
}

// ByLocation godoc
// @Summary      Contenido de una ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código de ubicación"
// @Success      200   {object}  dto.ActionResult[dto.LocationLookupResponse]
// @Failure      404   {object}  dto.ActionResult[dto.LocationLookupResponse]
// @Router       /api/inventory/location/{code} [get]
func (h *InventoryHandler) ByLocation(c *fiber.Ctx) error {
	res, err := h.lookup.LookupByLocation(c.Context(), c.Params("code"))
	var out dto.LocationLookupResponse
	if res != nil {
		out = dto.LocationLookupResponse{
			LocationCode: res.Location.Code,
			Items:        dto.ToInventoryRecordResponses(res.Items),
		}
	}
	return respondResult(c, h.log, fiber.StatusOK, out, err)
}

// BySKU godoc
// @Summary      Ubicaciones de un SKU (por EAN o item code)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "EAN o item code"
// @Success      200   {object}  dto.ActionResult[dto.SKULookupResponse]
// @Failure      404   {object}  dto.ActionResult[dto.SKULookupResponse]
// @Router       /api/inventory/sku/{code} [get]
func (h *InventoryHandler) BySKU(c *fiber.Ctx) error {
	res, err := h.lookup.LookupBySKU(c.Context(), c.Params("code"))
	var out dto.SKULookupResponse
	if res != nil {
		out = dto.SKULookupResponse{
			SKUCode:        res.SKU.Code,
			ItemCode:       res.SKU.ItemCode,
			Name:           res.SKU.Name,
			Locations:      dto.ToInventoryRecordResponses(res.Locations),
			TotalQty:       res.TotalQty,
			TotalLocations: res.TotalLocations,
		}
	}
	return respondResult(c, h.log, fiber.StatusOK, out, err)
}

// Available godoc
// @Summary      Saldo disponible de un SKU en una ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  true  "código de ubicación"
// @Param        sku       query  string  true  "EAN"
// @Success      200   {object}  dto.ActionResult[dto.AvailableResponse]
// @Failure      400   {object}  dto.ActionResult[dto.AvailableResponse]
// @Router       /api/inventory/available [get]
func (h *InventoryHandler) Available(c *fiber.Ctx) error {
	res, err := h.lookup.AvailableQty(c.Context(), c.Query("location"), c.Query("sku"))
	var out dto.AvailableResponse
	if res != nil {
		out = dto.AvailableResponse{LocationCode: res.LocationCode, SKUCode: res.SKUCode, SKUName: res.SKUName, Qty: res.Qty}
	}
	return respondResult(c, h.log, fiber.StatusOK, out, err)
}
