package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	invdomain "github.com/dronalogitech/whmapping/internal/domain/inventory"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
	"github.com/dronalogitech/whmapping/pkg/logger"
)

// DefaultUser usuario que se registra en la bitácora cuando la llamada no trae uno.
const DefaultUser = "system"

// PutawayItem una línea de ingreso: SKU, cantidad positiva y item code opcional.
type PutawayItem struct {
	SKUCode  string `validate:"required,skucode"`
	ItemCode string
	Qty      int `validate:"qty"`
}

// PutawayInput ingreso de uno o más SKUs a una ubicación.
type PutawayInput struct {
	LocationCode string        `validate:"required,loccode"`
	Items        []PutawayItem `validate:"required,min=1,dive"`
	User         string
	HandlerName  string
	Note         string
}

// MoveInput traslado de una cantidad de un SKU entre dos ubicaciones distintas.
type MoveInput struct {
	FromLocationCode string `validate:"required,loccode"`
	ToLocationCode   string `validate:"required,loccode,nefield=FromLocationCode"`
	SKUCode          string `validate:"required,skucode"`
	Qty              int    `validate:"qty"`
	User             string
	HandlerName      string
	Note             string
}

// AdjustInput corrección con signo del saldo de un SKU en una ubicación; Note es obligatoria.
type AdjustInput struct {
	LocationCode string `validate:"required,loccode"`
	SKUCode      string `validate:"required,skucode"`
	Qty          int    `validate:"delta"`
	User         string
	HandlerName  string
	Note         string `validate:"required"`
}

// MoveResult saldos de origen y destino después del traslado.
type MoveResult struct {
	From entity.InventoryRecord
	To   entity.InventoryRecord
}

// LedgerUseCase aplica Putaway, Move y Adjust: cada operación es una sola transacción
// que actualiza saldos y agrega exactamente un registro de bitácora por cambio lógico.
type LedgerUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewLedgerUseCase construye el ledger.
func NewLedgerUseCase(tx TxRunner, log *logger.Logger) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{tx: tx, log: log.Named("ledger")}
}

// Putaway ingresa los items a la ubicación, creando ubicación y SKUs si no existen.
// Todo o nada: si falla un item no se aplica ninguno.
func (uc *LedgerUseCase) Putaway(ctx context.Context, in PutawayInput) ([]entity.InventoryRecord, error) {
	in.LocationCode = invdomain.NormalizeCode(in.LocationCode)
	// copia: no tocar el slice del llamador
	items := make([]PutawayItem, len(in.Items))
	for i, it := range in.Items {
		it.SKUCode = invdomain.NormalizeCode(it.SKUCode)
		it.ItemCode = invdomain.NormalizeCode(it.ItemCode)
		items[i] = it
	}
	if in.Items != nil {
		in.Items = items
	}
	if err := validateInput(in); err != nil {
		uc.rejected("putaway", err)
		return nil, err
	}
	user := actingUser(in.User)

	records := make([]entity.InventoryRecord, 0, len(in.Items))
	err := uc.tx.Run(ctx, func(
		locationRepo repository.LocationRepository,
		skuRepo repository.SKURepository,
		inventoryRepo repository.InventoryRepository,
		logRepo repository.MovementLogRepository,
	) error {
		loc, err := locationRepo.ResolveOrCreate(ctx, in.LocationCode)
		if err != nil {
			return err
		}
		for _, item := range in.Items {
			sku, err := skuRepo.ResolveOrCreate(ctx, item.SKUCode, item.ItemCode)
			if err != nil {
				return err
			}
			inv, err := inventoryRepo.Increment(ctx, loc.ID, sku.ID, item.Qty)
			if err != nil {
				return overflowed(err)
			}
			if err := logRepo.Create(ctx, &entity.MovementLog{
				Action:       entity.ActionPutaway,
				SKUID:        sku.ID,
				ToLocationID: loc.ID,
				Qty:          item.Qty,
				User:         user,
				HandlerName:  in.HandlerName,
				Note:         in.Note,
			}); err != nil {
				return err
			}
			records = append(records, entity.NewInventoryRecord(inv, loc, sku))
		}
		return nil
	})
	if err != nil {
		le := domain.AsLedgerError(err)
		uc.rejected("putaway", le)
		return nil, le
	}

	uc.log.Info().
		Str("op", "putaway").
		Str("location", in.LocationCode).
		Int("items", len(records)).
		Str("user", user).
		Msg("movimiento registrado")
	return records, nil
}

// Move traslada qty del SKU desde una ubicación existente a otra (creada si no existe).
// El SKU y el saldo de origen deben existir; el SKU no se crea aquí.
func (uc *LedgerUseCase) Move(ctx context.Context, in MoveInput) (*MoveResult, error) {
	in.FromLocationCode = invdomain.NormalizeCode(in.FromLocationCode)
	in.ToLocationCode = invdomain.NormalizeCode(in.ToLocationCode)
	in.SKUCode = invdomain.NormalizeCode(in.SKUCode)
	if err := validateInput(in); err != nil {
		uc.rejected("move", err)
		return nil, err
	}
	user := actingUser(in.User)

	var result MoveResult
	err := uc.tx.Run(ctx, func(
		locationRepo repository.LocationRepository,
		skuRepo repository.SKURepository,
		inventoryRepo repository.InventoryRepository,
		logRepo repository.MovementLogRepository,
	) error {
		from, err := locationRepo.GetByCode(ctx, in.FromLocationCode)
		if err != nil {
			return err
		}
		if from == nil {
			return domain.NewNotFoundError("Source location %q not found", in.FromLocationCode)
		}
		to, err := locationRepo.ResolveOrCreate(ctx, in.ToLocationCode)
		if err != nil {
			return err
		}
		sku, err := skuRepo.GetByCode(ctx, in.SKUCode)
		if err != nil {
			return err
		}
		if sku == nil {
			return domain.NewNotFoundError("EAN %q not found", in.SKUCode)
		}

		// ambos saldos se bloquean en orden de id de ubicación: dos Move en sentidos
		// opuestos esperan en la misma fila en vez de bloquearse mutuamente
		current, err := lockBalances(ctx, inventoryRepo, sku.ID, from.ID, to.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NewNotFoundError("EAN %q not found at location %q", in.SKUCode, in.FromLocationCode)
		}
		if current.Qty < in.Qty {
			return domain.NewInsufficientQuantityError(current.Qty, in.Qty)
		}

		src, err := inventoryRepo.Decrement(ctx, from.ID, sku.ID, in.Qty)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientQuantity) {
				return domain.NewInsufficientQuantityError(current.Qty, in.Qty)
			}
			return err
		}
		dst, err := inventoryRepo.Increment(ctx, to.ID, sku.ID, in.Qty)
		if err != nil {
			return overflowed(err)
		}
		if err := logRepo.Create(ctx, &entity.MovementLog{
			Action:         entity.ActionMove,
			SKUID:          sku.ID,
			FromLocationID: from.ID,
			ToLocationID:   to.ID,
			Qty:            in.Qty,
			User:           user,
			HandlerName:    in.HandlerName,
			Note:           in.Note,
		}); err != nil {
			return err
		}
		result = MoveResult{
			From: entity.NewInventoryRecord(src, from, sku),
			To:   entity.NewInventoryRecord(dst, to, sku),
		}
		return nil
	})
	if err != nil {
		le := domain.AsLedgerError(err)
		uc.rejected("move", le)
		return nil, le
	}

	uc.log.Info().
		Str("op", "move").
		Str("from", in.FromLocationCode).
		Str("to", in.ToLocationCode).
		Str("sku", in.SKUCode).
		Int("qty", in.Qty).
		Str("user", user).
		Msg("movimiento registrado")
	return &result, nil
}

// Adjust suma el delta con signo al saldo; rechaza si el resultado sería negativo.
// Un delta cero se acepta y deja su registro en la bitácora.
func (uc *LedgerUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.InventoryRecord, error) {
	in.LocationCode = invdomain.NormalizeCode(in.LocationCode)
	in.SKUCode = invdomain.NormalizeCode(in.SKUCode)
	in.Note = strings.TrimSpace(in.Note)
	if err := validateInput(in); err != nil {
		uc.rejected("adjust", err)
		return nil, err
	}
	user := actingUser(in.User)

	var record entity.InventoryRecord
	err := uc.tx.Run(ctx, func(
		locationRepo repository.LocationRepository,
		skuRepo repository.SKURepository,
		inventoryRepo repository.InventoryRepository,
		logRepo repository.MovementLogRepository,
	) error {
		loc, err := locationRepo.ResolveOrCreate(ctx, in.LocationCode)
		if err != nil {
			return err
		}
		sku, err := skuRepo.ResolveOrCreate(ctx, in.SKUCode, "")
		if err != nil {
			return err
		}
		current, err := inventoryRepo.GetForUpdate(ctx, loc.ID, sku.ID)
		if err != nil {
			return err
		}
		currentQty := 0
		if current != nil {
			currentQty = current.Qty
		}
		// currentQty e in.Qty están acotados por MaxQty: la suma no desborda
		if currentQty+in.Qty < 0 {
			return domain.NewNegativeBalanceError(currentQty, in.Qty)
		}
		if currentQty+in.Qty > invdomain.MaxQty {
			return domain.NewValidationError(balanceTooLarge)
		}

		var inv *entity.Inventory
		switch {
		case current == nil:
			// primera fila: max(0, delta)
			inv, err = inventoryRepo.Increment(ctx, loc.ID, sku.ID, max(0, in.Qty))
		case in.Qty < 0:
			inv, err = inventoryRepo.Decrement(ctx, loc.ID, sku.ID, -in.Qty)
		default:
			inv, err = inventoryRepo.Increment(ctx, loc.ID, sku.ID, in.Qty)
		}
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientQuantity) {
				return domain.NewNegativeBalanceError(currentQty, in.Qty)
			}
			return overflowed(err)
		}
		if err := logRepo.Create(ctx, &entity.MovementLog{
			Action:       entity.ActionAdjust,
			SKUID:        sku.ID,
			ToLocationID: loc.ID,
			Qty:          in.Qty,
			User:         user,
			HandlerName:  in.HandlerName,
			Note:         in.Note,
		}); err != nil {
			return err
		}
		record = entity.NewInventoryRecord(inv, loc, sku)
		return nil
	})
	if err != nil {
		le := domain.AsLedgerError(err)
		uc.rejected("adjust", le)
		return nil, le
	}

	uc.log.Info().
		Str("op", "adjust").
		Str("location", in.LocationCode).
		Str("sku", in.SKUCode).
		Int("delta", in.Qty).
		Int("qty", record.Qty).
		Str("user", user).
		Msg("movimiento registrado")
	return &record, nil
}

func (uc *LedgerUseCase) rejected(op string, err error) {
	ev := uc.log.Warn()
	if errors.Is(err, domain.ErrTransaction) {
		ev = uc.log.Error()
	}
	ev.Str("op", op).Str("code", domain.ErrorCode(err)).Err(err).Msg("movimiento rechazado")
}

// lockBalances toma FOR UPDATE sobre el saldo de origen y el de destino en orden de id
// de ubicación y devuelve el de origen (nil si no existe).
func lockBalances(ctx context.Context, inventoryRepo repository.InventoryRepository, skuID, fromID, toID string) (*entity.Inventory, error) {
	ids := []string{fromID, toID}
	if toID < fromID {
		ids[0], ids[1] = toID, fromID
	}
	var source *entity.Inventory
	for _, id := range ids {
		inv, err := inventoryRepo.GetForUpdate(ctx, id, skuID)
		if err != nil {
			return nil, err
		}
		if id == fromID {
			source = inv
		}
	}
	return source, nil
}

func actingUser(user string) string {
	if u := strings.TrimSpace(user); u != "" {
		return u
	}
	return DefaultUser
}
