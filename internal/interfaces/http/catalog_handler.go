package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dronalogitech/whmapping/internal/application/catalog"
	"github.com/dronalogitech/whmapping/internal/application/dto"
	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// CatalogHandler búsquedas, etiquetas e importación del maestro de artículos.
type CatalogHandler struct {
	uc  *catalog.UseCase
	log *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

// Locations godoc
// @Summary      Buscar ubicaciones
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "texto contenido en el código"
// @Param        limit   query  int     false  "máx 100"
// @Success      200   {array}  dto.LocationSummaryResponse
// @Router       /api/locations [get]
func (h *CatalogHandler) Locations(c *fiber.Ctx) error {
	locs, err := h.uc.SearchLocations(c.Context(), c.Query("search"), c.QueryInt("limit", catalog.DefaultSearchLimit))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.LocationSummaryResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, dto.LocationSummaryResponse{ID: l.ID, Code: l.Code, SKUCount: l.SKUCount})
	}
	return c.JSON(out)
}

// SKUs godoc
// @Summary      Buscar SKUs por código, barcode o nombre
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "texto"
// @Param        limit   query  int     false  "máx 100"
// @Success      200   {array}  dto.SKUSummaryResponse
// @Router       /api/skus [get]
func (h *CatalogHandler) SKUs(c *fiber.Ctx) error {
	skus, err := h.uc.SearchSKUs(c.Context(), c.Query("search"), c.QueryInt("limit", catalog.DefaultSearchLimit))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.SKUSummaryResponse, 0, len(skus))
	for _, s := range skus {
		out = append(out, dto.SKUSummaryResponse{
			ID:            s.ID,
			Code:          s.Code,
			ItemCode:      s.ItemCode,
			Name:          s.Name,
			Barcode:       s.Barcode,
			TotalQty:      s.TotalQty,
			LocationCount: s.LocationCount,
		})
	}
	return c.JSON(out)
}

// Labels godoc
// @Summary      PDF de etiquetas con código de barras para ubicaciones
// @Tags         catalog
// @Security     Bearer
// @Produce      application/pdf
// @Param        codes  query  string  true  "códigos separados por coma"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations/labels [get]
func (h *CatalogHandler) Labels(c *fiber.Ctx) error {
	pdf, err := h.uc.LocationLabels(strings.Split(c.Query("codes"), ","))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="location-labels.pdf"`)
	return c.Send(pdf)
}

// ImportItemMaster godoc
// @Summary      Importar maestro de artículos (xlsx o csv, solo admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Item Master (.xlsx | .csv)"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import-item-master [post]
func (h *CatalogHandler) ImportItemMaster(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.log, domain.NewValidationError("Item master file is required"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	res, err := h.uc.ImportItemMasterFile(c.Context(), f, fh.Filename)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ImportResultResponse{
		Imported: res.Imported,
		Updated:  res.Updated,
		Skipped:  res.Skipped,
		Total:    res.Total,
	})
}
