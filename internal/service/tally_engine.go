package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/guttosm/count-service/internal/metrics"
	"github.com/guttosm/count-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// DuplicateResolver asks the operator what to do with a SKU that is already counted.
type DuplicateResolver func(ctx context.Context, sku string, currentQty int) model.Resolution

// QuantityResolver asks the operator for a quantity. A value below 1 cancels.
type QuantityResolver func(ctx context.Context, sku string, mode model.QuantityMode) int

// StaticDuplicate answers every duplicate prompt with r.
func StaticDuplicate(r model.Resolution) DuplicateResolver {
	return func(context.Context, string, int) model.Resolution { return r }
}

// StaticQuantity answers every quantity prompt with qty.
func StaticQuantity(qty int) QuantityResolver {
	return func(context.Context, string, model.QuantityMode) int { return qty }
}

// ActivityRecorder receives an audit entry for every committed mutation.
type ActivityRecorder interface {
	Record(entry *model.ActivityEntry) bool
}

// EngineOptions holds the collaborators shared by every engine.
type EngineOptions struct {
	Store    repository.SessionStore
	Activity ActivityRecorder
	Now      func() time.Time
}

// TallyEngine owns the counting session of one device.
// All reads and writes of the session go through its mutex.
type TallyEngine struct {
	mu       sync.Mutex
	deviceID string
	state    model.SessionState
	index    map[string]int

	store    repository.SessionStore
	activity ActivityRecorder
	now      func() time.Time
}

// NewTallyEngine creates an engine for deviceID, restoring initial when it is not nil.
func NewTallyEngine(deviceID string, initial *model.SessionState, opts EngineOptions) *TallyEngine {
	if opts.Store == nil {
		opts.Store = repository.NewMemorySessionStore()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &TallyEngine{
		deviceID: deviceID,
		state:    model.SessionState{Tally: model.TallyList{}},
		store:    opts.Store,
		activity: opts.Activity,
		now:      opts.Now,
	}
	if initial != nil {
		e.state = restore(deviceID, *initial)
	}
	e.reindex()
	return e
}

// restore repairs a persisted state that breaks the tally invariants.
func restore(deviceID string, s model.SessionState) model.SessionState {
	out := s.Clone()
	out.Tally = make(model.TallyList, 0, len(s.Tally))

	if s.Active() {
		seen := make(map[string]bool, len(s.Tally))
		for _, item := range s.Tally {
			sku := model.NormalizeSKU(item.SKU)
			if sku == "" || item.Qty < 1 || item.Qty > model.MaxQuantity || seen[sku] {
				continue
			}
			seen[sku] = true
			out.Tally = append(out.Tally, model.InventoryItem{SKU: sku, Qty: item.Qty})
		}
	}

	if dropped := len(s.Tally) - len(out.Tally); dropped > 0 {
		log.Warn().
			Str("component", "tally_engine").
			Str("device_id", deviceID).
			Int("dropped", dropped).
			Msg("Dropped invalid rows from restored session")
	}
	return out
}

func (e *TallyEngine) reindex() {
	e.index = make(map[string]int, len(e.state.Tally))
	for i, item := range e.state.Tally {
		e.index[item.SKU] = i
	}
}

// DeviceID returns the device the engine belongs to.
func (e *TallyEngine) DeviceID() string {
	return e.deviceID
}

// Snapshot returns a deep copy of the session.
func (e *TallyEngine) Snapshot() model.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Summary returns the totals of the current tally.
func (e *TallyEngine) Summary() model.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Summarize(e.state.Tally)
}

// Lookup normalizes rawCode and reports whether it is already counted.
func (e *TallyEngine) Lookup(rawCode string) (model.InventoryItem, bool, error) {
	sku := model.NormalizeSKU(rawCode)
	if sku == "" {
		return model.InventoryItem{}, false, ErrEmptyCode
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Active() {
		return model.InventoryItem{}, false, ErrNoActiveSession
	}
	i, ok := e.index[sku]
	if !ok {
		return model.InventoryItem{SKU: sku}, false, nil
	}
	return e.state.Tally[i], true, nil
}

// Login opens the session. The current tally is kept.
func (e *TallyEngine) Login(ctx context.Context, operatorID, warehouseCode, locationCode string) error {
	fields := []struct{ name, value string }{
		{"operator_id", strings.TrimSpace(operatorID)},
		{"warehouse_code", strings.TrimSpace(warehouseCode)},
		{"location_code", strings.TrimSpace(locationCode)},
	}
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{Field: f.name, Reason: "must not be empty"}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.commit(ctx, false, func(s *model.SessionState) {
		s.OperatorID = fields[0].value
		s.WarehouseCode = fields[1].value
		s.LocationCode = fields[2].value
	})
	if err != nil {
		return err
	}
	e.record(ctx, model.ActionLogin, "", 0, nil)
	return nil
}

// RecordScan adds a scanned code to the tally.
//
// A new SKU asks onQuantity once and is prepended. A known SKU first asks
// onDuplicate and then onQuantity in sum or replace mode. The resolvers run
// without the engine lock held, so the session is re-checked before committing.
func (e *TallyEngine) RecordScan(ctx context.Context, rawCode string, onDuplicate DuplicateResolver, onQuantity QuantityResolver) (model.ScanOutcome, error) {
	sku := model.NormalizeSKU(rawCode)
	if sku == "" {
		return model.ScanOutcome{}, ErrEmptyCode
	}

	e.mu.Lock()
	if !e.state.Active() {
		e.mu.Unlock()
		return model.ScanOutcome{}, ErrNoActiveSession
	}
	i, exists := e.index[sku]
	current := 0
	if exists {
		current = e.state.Tally[i].Qty
	}
	e.mu.Unlock()

	mode := model.QuantityNew
	if exists {
		resolution := model.ResolutionCancel
		if onDuplicate != nil {
			resolution = onDuplicate(ctx, sku, current)
		}
		switch resolution {
		case model.ResolutionSum:
			mode = model.QuantitySum
		case model.ResolutionReplace:
			mode = model.QuantityReplace
		default:
			return model.ScanOutcome{}, ErrCancelled
		}
	}

	qty := 0
	if onQuantity != nil {
		qty = onQuantity(ctx, sku, mode)
	}
	if qty < 1 {
		return model.ScanOutcome{}, ErrCancelled
	}
	if qty > model.MaxQuantity {
		return model.ScanOutcome{}, ErrQuantityTooLarge
	}
	if err := ctx.Err(); err != nil {
		return model.ScanOutcome{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Active() {
		return model.ScanOutcome{}, ErrNoActiveSession
	}
	i, stillExists := e.index[sku]
	if stillExists != exists {
		return model.ScanOutcome{}, ErrStaleScan
	}

	if !exists {
		item := model.InventoryItem{SKU: sku, Qty: qty}
		err := e.commit(ctx, true, func(s *model.SessionState) {
			s.Tally = append(model.TallyList{item}, s.Tally...)
		})
		if err != nil {
			return model.ScanOutcome{}, err
		}
		e.record(ctx, model.ActionScanInsert, sku, qty, nil)
		return model.ScanOutcome{Item: item, Inserted: true, Index: 0}, nil
	}

	previous := e.state.Tally[i].Qty
	next := qty
	action := model.ActionScanReplace
	if mode == model.QuantitySum {
		if previous > model.MaxQuantity-qty {
			return model.ScanOutcome{}, ErrQuantityTooLarge
		}
		next = previous + qty
		action = model.ActionScanSum
	}
	err := e.commit(ctx, false, func(s *model.SessionState) {
		s.Tally[i].Qty = next
	})
	if err != nil {
		return model.ScanOutcome{}, err
	}
	e.record(ctx, action, sku, next, map[string]interface{}{"previous_qty": previous, "entered_qty": qty})
	return model.ScanOutcome{Item: e.state.Tally[i], Index: i}, nil
}

// EditQuantity overwrites the quantity of the row at index.
func (e *TallyEngine) EditQuantity(ctx context.Context, index, newQty int) (model.InventoryItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.state.Tally) {
		return model.InventoryItem{}, &IndexOutOfRangeError{Index: index, Len: len(e.state.Tally)}
	}
	if newQty < 1 {
		return model.InventoryItem{}, ErrCancelled
	}
	if newQty > model.MaxQuantity {
		return model.InventoryItem{}, ErrQuantityTooLarge
	}

	previous := e.state.Tally[index].Qty
	err := e.commit(ctx, false, func(s *model.SessionState) {
		s.Tally[index].Qty = newQty
	})
	if err != nil {
		return model.InventoryItem{}, err
	}
	item := e.state.Tally[index]
	e.record(ctx, model.ActionEdit, item.SKU, newQty, map[string]interface{}{"previous_qty": previous})
	return item, nil
}

// DeleteRow removes the row at index once the operator confirmed it.
func (e *TallyEngine) DeleteRow(ctx context.Context, index int, confirmed bool) (model.InventoryItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.state.Tally) {
		return model.InventoryItem{}, &IndexOutOfRangeError{Index: index, Len: len(e.state.Tally)}
	}
	if !confirmed {
		return model.InventoryItem{}, ErrCancelled
	}

	removed := e.state.Tally[index]
	err := e.commit(ctx, true, func(s *model.SessionState) {
		s.Tally = append(s.Tally[:index:index], s.Tally[index+1:]...)
	})
	if err != nil {
		return model.InventoryItem{}, err
	}
	e.record(ctx, model.ActionDelete, removed.SKU, removed.Qty, nil)
	return removed, nil
}

// CloseSessionAfterSync clears the operator and the tally in one write.
// Warehouse and location stay as defaults for the next login.
func (e *TallyEngine) CloseSessionAfterSync(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closeLocked(ctx)
}

func (e *TallyEngine) closeLocked(ctx context.Context) error {
	return e.commit(ctx, true, func(s *model.SessionState) {
		s.OperatorID = ""
		s.Tally = model.TallyList{}
	})
}

// commit applies mutate and persists the result. On a failed save the
// in-memory state is restored to exactly what it was. Callers hold e.mu.
func (e *TallyEngine) commit(ctx context.Context, structural bool, mutate func(*model.SessionState)) error {
	prev := e.state.Clone()

	mutate(&e.state)
	e.state.UpdatedAt = e.now().UTC()

	if err := e.store.Save(ctx, e.deviceID, e.state.Clone()); err != nil {
		e.state = prev
		if structural {
			e.reindex()
		}
		log.Error().
			Err(err).
			Str("component", "tally_engine").
			Str("device_id", e.deviceID).
			Msg("Failed to persist session, change rolled back")
		return fmt.Errorf("save session: %w", err)
	}

	if structural {
		e.reindex()
	}
	metrics.SetTallyLines(e.deviceID, len(e.state.Tally))
	return nil
}

func (e *TallyEngine) record(ctx context.Context, action, sku string, qty int, fields map[string]interface{}) {
	if e.activity == nil {
		return
	}
	e.activity.Record(&model.ActivityEntry{
		Timestamp:  e.now().UTC(),
		DeviceID:   e.deviceID,
		OperatorID: e.state.OperatorID,
		Action:     action,
		SKU:        sku,
		Qty:        qty,
		RequestID:  RequestIDFromContext(ctx),
		Fields:     fields,
	})
}
