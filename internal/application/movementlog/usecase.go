package movementlog

import (
	"context"
	"strings"

	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	invdomain "github.com/dronalogitech/whmapping/internal/domain/inventory"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// Límites de paginación de la bitácora.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Query filtros y paginación tal como llegan del cliente.
type Query struct {
	Action   string
	SKU      string
	Location string
	User     string
	Limit    int
	Offset   int
}

// Page una página de la bitácora.
type Page struct {
	Records []entity.MovementRecord
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// UseCase lectura, estadísticas y borrado administrativo de la bitácora.
type UseCase struct {
	repo repository.MovementLogRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.MovementLogRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, log: log.Named("movementlog")}
}

// List devuelve la página pedida, más recientes primero.
func (uc *UseCase) List(ctx context.Context, q Query) (*Page, error) {
	limit, offset := clampPage(q.Limit, q.Offset)
	records, total, err := uc.repo.List(ctx, q.filter(), limit, offset)
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	if records == nil {
		records = []entity.MovementRecord{}
	}
	return &Page{
		Records: records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}, nil
}

// Stats agregados sobre los mismos filtros que List.
func (uc *UseCase) Stats(ctx context.Context, q Query) (*entity.MovementStats, error) {
	stats, err := uc.repo.Stats(ctx, q.filter())
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	return stats, nil
}

// Delete borra un registro; NotFound si no existe.
func (uc *UseCase) Delete(ctx context.Context, id, actor string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewValidationError("Log id is required")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return domain.NewTransactionError(err)
	}
	if !ok {
		return domain.NewNotFoundError("Log %q not found", id)
	}
	uc.log.Info().Str("id", id).Str("actor", actor).Msg("registro de bitácora eliminado")
	return nil
}

// DeleteMany borra varios registros y devuelve cuántos existían.
func (uc *UseCase) DeleteMany(ctx context.Context, ids []string, actor string) (int64, error) {
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return 0, domain.NewValidationError("Invalid request: ids array is required")
	}
	n, err := uc.repo.DeleteMany(ctx, clean)
	if err != nil {
		return 0, domain.NewTransactionError(err)
	}
	uc.log.Info().Int64("deleted", n).Int("requested", len(clean)).Str("actor", actor).Msg("registros de bitácora eliminados")
	return n, nil
}

func (q Query) filter() entity.MovementFilter {
	f := entity.MovementFilter{
		SKUCode:  invdomain.NormalizeCode(q.SKU),
		Location: invdomain.NormalizeCode(q.Location),
		User:     strings.TrimSpace(q.User),
	}
	// acciones desconocidas se ignoran
	if a := entity.MovementAction(strings.ToUpper(strings.TrimSpace(q.Action))); a.Valid() {
		f.Action = a
	}
	return f
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
