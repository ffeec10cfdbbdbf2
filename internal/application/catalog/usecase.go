package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	invdomain "github.com/dronalogitech/whmapping/internal/domain/inventory"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// Límites de las búsquedas del catálogo.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// ImportResult conteo de una importación del maestro de artículos.
type ImportResult struct {
	Imported int
	Updated  int
	Skipped  int
	Total    int
}

// UseCase búsquedas de ubicaciones y SKUs, importación del maestro y etiquetas.
type UseCase struct {
	locationRepo repository.LocationRepository
	skuRepo      repository.SKURepository
	reader       ItemMasterReader
	labels       LabelGenerator
	log          *logger.Logger
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(
	locationRepo repository.LocationRepository,
	skuRepo repository.SKURepository,
	reader ItemMasterReader,
	labels LabelGenerator,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		locationRepo: locationRepo,
		skuRepo:      skuRepo,
		reader:       reader,
		labels:       labels,
		log:          log.Named("catalog"),
	}
}

// SearchLocations ubicaciones cuyo código contiene search, ordenadas por código.
func (uc *UseCase) SearchLocations(ctx context.Context, search string, limit int) ([]entity.LocationSummary, error) {
	out, err := uc.locationRepo.Search(ctx, strings.TrimSpace(search), clampLimit(limit))
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	if out == nil {
		out = []entity.LocationSummary{}
	}
	return out, nil
}

// SearchSKUs SKUs cuyo código, barcode o nombre contiene search.
func (uc *UseCase) SearchSKUs(ctx context.Context, search string, limit int) ([]entity.SKUSummary, error) {
	out, err := uc.skuRepo.Search(ctx, strings.TrimSpace(search), clampLimit(limit))
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	if out == nil {
		out = []entity.SKUSummary{}
	}
	return out, nil
}

// ImportItemMasterFile lee el archivo con el reader configurado y aplica ImportItemMaster.
func (uc *UseCase) ImportItemMasterFile(ctx context.Context, r io.Reader, filename string) (*ImportResult, error) {
	rows, err := uc.reader.Read(r, filename)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("Cannot read item master: %v", err))
	}
	return uc.ImportItemMaster(ctx, rows)
}

// ImportItemMaster inserta o actualiza un SKU por fila, con el EAN como código.
// Filas sin EAN o sin item code se omiten; un error en una fila no detiene las demás.
func (uc *UseCase) ImportItemMaster(ctx context.Context, rows []ItemMasterRow) (*ImportResult, error) {
	res := &ImportResult{Total: len(rows)}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewTransactionError(err)
		}
		ean := invdomain.NormalizeCode(row.EAN)
		itemCode := invdomain.NormalizeCode(row.ItemCode)
		if ean == "" || itemCode == "" || len([]rune(ean)) > invdomain.MaxSKUCodeLen {
			res.Skipped++
			continue
		}
		created, err := uc.skuRepo.UpsertMaster(ctx, &entity.SKU{
			Code:     ean,
			ItemCode: itemCode,
			Name:     strings.TrimSpace(row.Name),
			Details:  strings.TrimSpace(row.Details),
		})
		if err != nil {
			uc.log.Error().Err(err).Int("row", i+1).Str("ean", ean).Str("item_code", itemCode).Msg("fila del maestro omitida")
			res.Skipped++
			continue
		}
		if created {
			res.Imported++
		} else {
			res.Updated++
		}
	}
	uc.log.Info().
		Int("imported", res.Imported).
		Int("updated", res.Updated).
		Int("skipped", res.Skipped).
		Int("total", res.Total).
		Msg("maestro de artículos importado")
	return res, nil
}

// LocationLabels PDF con una etiqueta por código de ubicación.
func (uc *UseCase) LocationLabels(codes []string) ([]byte, error) {
	normalized := invdomain.NormalizeCodes(codes)
	if len(normalized) == 0 {
		return nil, domain.NewValidationError("At least one location code is required")
	}
	for _, c := range normalized {
		if len([]rune(c)) > invdomain.MaxLocationCodeLen {
			return nil, domain.NewValidationError("Location code must be 50 characters or less")
		}
	}
	pdf, err := uc.labels.LocationLabels(normalized)
	if err != nil {
		return nil, fmt.Errorf("generate labels: %w", err)
	}
	return pdf, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}
