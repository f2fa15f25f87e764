// Package apptest provee dobles en memoria de los puertos de persistencia
// para tests de casos de uso. No hay transacciones reales: el TxRunner pasa
// los mismos repos en memoria a cada callback.
package apptest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Lotes
// ─────────────────────────────────────────────────────────────────────────────

// MemBatchRepo es un BatchRepository en memoria.
type MemBatchRepo struct {
	mu      sync.Mutex
	batches map[string]*entity.Batch
}

var _ repository.BatchRepository = (*MemBatchRepo)(nil)

func NewMemBatchRepo() *MemBatchRepo {
	return &MemBatchRepo{batches: make(map[string]*entity.Batch)}
}

// Seed inserta un lote directamente, sin validaciones.
func (r *MemBatchRepo) Seed(b *entity.Batch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.batches[b.ID] = &cp
}

func (r *MemBatchRepo) Create(b *entity.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.batches {
		if existing.OrganizationID == b.OrganizationID && existing.Code == b.Code {
			return fmt.Errorf("%w: código de lote %s", domain.ErrDuplicate, b.Code)
		}
	}
	cp := *b
	r.batches[b.ID] = &cp
	return nil
}

func (r *MemBatchRepo) GetByID(id string) (*entity.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *MemBatchRepo) GetByIDForUpdate(id string) (*entity.Batch, error) {
	return r.GetByID(id)
}

func (r *MemBatchRepo) GetByCode(organizationID, code string) (*entity.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.batches {
		if b.OrganizationID == organizationID && b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemBatchRepo) Update(b *entity.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	r.batches[b.ID] = &cp
	return nil
}

func (r *MemBatchRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.batches, id)
	return nil
}

func (r *MemBatchRepo) ListByStatus(organizationID, status string, limit, offset int) ([]*entity.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Batch
	for _, b := range r.batches {
		if b.OrganizationID == organizationID && b.Status == status {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemBatchRepo) ListApproved(organizationID, productID string) ([]*entity.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Batch
	for _, b := range r.batches {
		if b.OrganizationID != organizationID || b.Status != entity.StatusAprobado {
			continue
		}
		if !b.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		if productID != "" && b.ProductID != productID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Stock agregado
// ─────────────────────────────────────────────────────────────────────────────

// MemStockRepo es un ProductStockRepository en memoria. Si Batches no es nil,
// Recompute suma los lotes RECEPCION como hace la implementación SQL.
type MemStockRepo struct {
	mu      sync.Mutex
	rows    map[string]*entity.ProductStock
	Batches *MemBatchRepo
}

var _ repository.ProductStockRepository = (*MemStockRepo)(nil)

func NewMemStockRepo() *MemStockRepo {
	return &MemStockRepo{rows: make(map[string]*entity.ProductStock)}
}

func stockKey(organizationID, productID, unit string) string {
	return organizationID + "|" + productID + "|" + unit
}

func (r *MemStockRepo) Get(organizationID, productID, unit string) (*entity.ProductStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.rows[stockKey(organizationID, productID, unit)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.ProductStock{
		OrganizationID: organizationID,
		ProductID:      productID,
		Unit:           unit,
		Quantity:       decimal.Zero,
	}, nil
}

func (r *MemStockRepo) ApplyDelta(organizationID, productID, unit string, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey(organizationID, productID, unit)
	s, ok := r.rows[key]
	if !ok {
		s = &entity.ProductStock{
			OrganizationID: organizationID,
			ProductID:      productID,
			Unit:           unit,
			Quantity:       decimal.Zero,
		}
		r.rows[key] = s
	}
	s.Quantity = s.Quantity.Add(delta)
	s.UpdatedAt = time.Now()
	return nil
}

func (r *MemStockRepo) List(organizationID string) ([]*entity.ProductStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductStock
	for _, s := range r.rows {
		if s.OrganizationID == organizationID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Unit < out[j].Unit
	})
	return out, nil
}

func (r *MemStockRepo) Recompute(organizationID string) ([]*entity.ProductStock, error) {
	if r.Batches == nil {
		return r.List(organizationID)
	}
	batches, err := r.Batches.ListByStatus(organizationID, entity.StatusRecepcion, 0, 0)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]*entity.ProductStock)
	for _, b := range batches {
		key := stockKey(organizationID, b.ProductID, b.Unit)
		s, ok := sums[key]
		if !ok {
			s = &entity.ProductStock{
				OrganizationID: organizationID,
				ProductID:      b.ProductID,
				Unit:           b.Unit,
				Quantity:       decimal.Zero,
				UpdatedAt:      time.Now(),
			}
			sums[key] = s
		}
		s.Quantity = s.Quantity.Add(b.Quantity)
	}
	out := make([]*entity.ProductStock, 0, len(sums))
	for _, s := range sums {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Unit < out[j].Unit
	})
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Eventos de trazabilidad
// ─────────────────────────────────────────────────────────────────────────────

// MemEventRepo es un TraceabilityEventRepository en memoria.
type MemEventRepo struct {
	mu     sync.Mutex
	events []*entity.TraceabilityEvent
}

var _ repository.TraceabilityEventRepository = (*MemEventRepo)(nil)

func NewMemEventRepo() *MemEventRepo {
	return &MemEventRepo{}
}

func (r *MemEventRepo) Create(event *entity.TraceabilityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *event
	cp.Inputs = append([]entity.EventInput(nil), event.Inputs...)
	r.events = append(r.events, &cp)
	return nil
}

func (r *MemEventRepo) GetByID(id string) (*entity.TraceabilityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.ID == id {
			cp := *ev
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemEventRepo) ListByTypeAndOutputCodes(organizationID, eventType string, outputCodes []string) ([]*entity.TraceabilityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := make(map[string]bool, len(outputCodes))
	for _, c := range outputCodes {
		set[c] = true
	}
	var out []*entity.TraceabilityEvent
	for _, ev := range r.events {
		if ev.OrganizationID == organizationID && ev.Type == eventType && set[ev.OutputBatchCode] {
			cp := *ev
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PerformedAt.Before(out[j].PerformedAt) })
	return out, nil
}

func (r *MemEventRepo) FindByShipment(organizationID, shipmentID string) (*entity.TraceabilityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.OrganizationID == organizationID && ev.Type == entity.EventExpedicion &&
			ev.ShipmentID != nil && *ev.ShipmentID == shipmentID {
			cp := *ev
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemEventRepo) DeleteByOutputBatch(outputBatchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.events[:0]
	for _, ev := range r.events {
		if ev.OutputBatchID != outputBatchID {
			kept = append(kept, ev)
		}
	}
	r.events = kept
	return nil
}

func (r *MemEventRepo) SetNotaryRef(eventID, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.ID == eventID {
			ev.NotaryRef = &ref
			return nil
		}
	}
	return domain.ErrNotFound
}

// All devuelve todos los eventos registrados (para aserciones).
func (r *MemEventRepo) All() []*entity.TraceabilityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.TraceabilityEvent(nil), r.events...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Resto de repos
// ─────────────────────────────────────────────────────────────────────────────

// MemHistoryRepo es un BatchHistoryRepository en memoria.
type MemHistoryRepo struct {
	mu      sync.Mutex
	entries []*entity.BatchHistory
}

var _ repository.BatchHistoryRepository = (*MemHistoryRepo)(nil)

func NewMemHistoryRepo() *MemHistoryRepo { return &MemHistoryRepo{} }

func (r *MemHistoryRepo) Create(h *entity.BatchHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *h
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *MemHistoryRepo) ListByBatch(batchID string) ([]*entity.BatchHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BatchHistory
	for _, h := range r.entries {
		if h.BatchID == batchID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemHistoryRepo) DeleteByBatch(batchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, h := range r.entries {
		if h.BatchID != batchID {
			kept = append(kept, h)
		}
	}
	r.entries = kept
	return nil
}

// MemProductionRepo es un ProductionRecordRepository en memoria.
type MemProductionRepo struct {
	mu      sync.Mutex
	records []*entity.ProductionRecord
}

var _ repository.ProductionRecordRepository = (*MemProductionRepo)(nil)

func NewMemProductionRepo() *MemProductionRepo { return &MemProductionRepo{} }

func (r *MemProductionRepo) Create(rec *entity.ProductionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	cp.Inputs = append([]entity.ProductionInput(nil), rec.Inputs...)
	r.records = append(r.records, &cp)
	return nil
}

func (r *MemProductionRepo) GetByID(id string) (*entity.ProductionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemProductionRepo) ListByOutputBatch(outputBatchID string) ([]*entity.ProductionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductionRecord
	for _, rec := range r.records {
		if rec.OutputBatchID == outputBatchID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemProductionRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.ProductionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductionRecord
	for _, rec := range r.records {
		if rec.OrganizationID == organizationID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemProductionRepo) DeleteByOutputBatch(outputBatchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.OutputBatchID != outputBatchID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}

// MemQualityRepo es un QualityCheckRepository en memoria.
type MemQualityRepo struct {
	mu     sync.Mutex
	checks []*entity.QualityCheck
}

var _ repository.QualityCheckRepository = (*MemQualityRepo)(nil)

func NewMemQualityRepo() *MemQualityRepo { return &MemQualityRepo{} }

func (r *MemQualityRepo) Create(check *entity.QualityCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *check
	r.checks = append(r.checks, &cp)
	return nil
}

func (r *MemQualityRepo) GetByID(id string) (*entity.QualityCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.checks {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemQualityRepo) ListByBatch(batchID string) ([]*entity.QualityCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.QualityCheck
	for _, c := range r.checks {
		if c.BatchID == batchID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemQualityRepo) DeleteByBatch(batchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.checks[:0]
	for _, c := range r.checks {
		if c.BatchID != batchID {
			kept = append(kept, c)
		}
	}
	r.checks = kept
	return nil
}

// MemShipmentRepo es un ShipmentRepository en memoria.
type MemShipmentRepo struct {
	mu        sync.Mutex
	shipments []*entity.Shipment
}

var _ repository.ShipmentRepository = (*MemShipmentRepo)(nil)

func NewMemShipmentRepo() *MemShipmentRepo { return &MemShipmentRepo{} }

func (r *MemShipmentRepo) Create(s *entity.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.DeliveryNote != nil && *s.DeliveryNote != "" {
		for _, existing := range r.shipments {
			if existing.OrganizationID == s.OrganizationID &&
				existing.DeliveryNote != nil && *existing.DeliveryNote == *s.DeliveryNote {
				return fmt.Errorf("%w: albarán duplicado", domain.ErrDuplicate)
			}
		}
	}
	cp := *s
	r.shipments = append(r.shipments, &cp)
	return nil
}

func (r *MemShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shipments {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemShipmentRepo) GetByDeliveryNote(organizationID, deliveryNote string) (*entity.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shipments {
		if s.OrganizationID == organizationID && s.DeliveryNote != nil && *s.DeliveryNote == deliveryNote {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemShipmentRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Shipment
	for _, s := range r.shipments {
		if s.OrganizationID == organizationID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MemProductRepo es un ProductRepository en memoria.
type MemProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*MemProductRepo)(nil)

func NewMemProductRepo() *MemProductRepo {
	return &MemProductRepo{products: make(map[string]*entity.Product)}
}

func (r *MemProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.OrganizationID == p.OrganizationID && existing.Code == p.Code {
			return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.Code)
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *MemProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *MemProductRepo) GetByCode(organizationID, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.OrganizationID == organizationID && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *MemProductRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.OrganizationID == organizationID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *MemProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// MemCustomerRepo es un CustomerRepository en memoria.
type MemCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
}

var _ repository.CustomerRepository = (*MemCustomerRepo)(nil)

func NewMemCustomerRepo() *MemCustomerRepo {
	return &MemCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *MemCustomerRepo) Create(c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *MemCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *MemCustomerRepo) Update(c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *MemCustomerRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.customers {
		if c.OrganizationID == organizationID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemCustomerRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

// MemUserRepo es un UserRepository en memoria.
type MemUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

var _ repository.UserRepository = (*MemUserRepo)(nil)

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: make(map[string]*entity.User)}
}

func (r *MemUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *MemUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *MemUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// TxRunner y notario
// ─────────────────────────────────────────────────────────────────────────────

// TxRunner pasa los repos en memoria a cada callback. No hay rollback: los
// tests que necesitan verificar atomicidad comprueban que la función devuelve
// error antes de cualquier mutación.
type TxRunner struct {
	Batches   *MemBatchRepo
	Stock     *MemStockRepo
	Events    *MemEventRepo
	History   *MemHistoryRepo
	Records   *MemProductionRepo
	Quality   *MemQualityRepo
	Shipments *MemShipmentRepo
}

// NewTxRunner construye un runner con todos los repos en memoria ya enlazados.
func NewTxRunner() *TxRunner {
	batches := NewMemBatchRepo()
	stock := NewMemStockRepo()
	stock.Batches = batches
	return &TxRunner{
		Batches:   batches,
		Stock:     stock,
		Events:    NewMemEventRepo(),
		History:   NewMemHistoryRepo(),
		Records:   NewMemProductionRepo(),
		Quality:   NewMemQualityRepo(),
		Shipments: NewMemShipmentRepo(),
	}
}

func (r *TxRunner) RunBatch(ctx context.Context, fn func(
	repository.BatchRepository,
	repository.ProductStockRepository,
	repository.TraceabilityEventRepository,
	repository.BatchHistoryRepository,
	repository.ProductionRecordRepository,
	repository.QualityCheckRepository,
) error) error {
	return fn(r.Batches, r.Stock, r.Events, r.History, r.Records, r.Quality)
}

func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	repository.BatchRepository,
	repository.ProductStockRepository,
	repository.ProductionRecordRepository,
	repository.TraceabilityEventRepository,
) error) error {
	return fn(r.Batches, r.Stock, r.Records, r.Events)
}

func (r *TxRunner) RunQuality(ctx context.Context, fn func(
	repository.BatchRepository,
	repository.QualityCheckRepository,
	repository.TraceabilityEventRepository,
) error) error {
	return fn(r.Batches, r.Quality, r.Events)
}

func (r *TxRunner) RunShipment(ctx context.Context, fn func(
	repository.BatchRepository,
	repository.ProductStockRepository,
	repository.ShipmentRepository,
	repository.TraceabilityEventRepository,
) error) error {
	return fn(r.Batches, r.Stock, r.Shipments, r.Events)
}

// FakeNotary registra las llamadas y devuelve la referencia configurada.
type FakeNotary struct {
	mu    sync.Mutex
	Ref   string
	Err   error
	Calls []NotaryCall
}

// NotaryCall es una llamada registrada al notario.
type NotaryCall struct {
	BatchCode   string
	ProductType string
	Stage       string
}

func (n *FakeNotary) Notarize(ctx context.Context, batchCode, productType, stage string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, NotaryCall{BatchCode: batchCode, ProductType: productType, Stage: stage})
	return n.Ref, n.Err
}
