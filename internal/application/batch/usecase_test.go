package batch_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroconserva/trazabilidad-api/internal/application/apptest"
	"github.com/agroconserva/trazabilidad-api/internal/application/batch"
	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOrgID   = "org-1"
	testUserID  = "user-1"
	testProdID  = "prod-pimiento"
	testProdID2 = "prod-nora"
	otherOrgID  = "org-ajena"
)

type batchFixture struct {
	uc       *batch.UseCase
	tx       *apptest.TxRunner
	products *apptest.MemProductRepo
	notary   *apptest.FakeNotary
}

func newBatchFixture(t *testing.T) *batchFixture {
	t.Helper()
	tx := apptest.NewTxRunner()
	products := apptest.NewMemProductRepo()
	require.NoError(t, products.Create(&entity.Product{
		ID: testProdID, OrganizationID: testOrgID, Code: "PIM-ROJO", Name: "Pimiento rojo", Type: "materia_prima",
	}))
	require.NoError(t, products.Create(&entity.Product{
		ID: testProdID2, OrganizationID: testOrgID, Code: "NORA", Name: "Ñora", Type: "materia_prima",
	}))
	notary := &apptest.FakeNotary{}
	uc := batch.NewUseCase(tx, tx.Batches, products, notary, zerolog.Nop())
	return &batchFixture{uc: uc, tx: tx, products: products, notary: notary}
}

func (f *batchFixture) stockQty(t *testing.T, productID, unit string) decimal.Decimal {
	t.Helper()
	s, err := f.tx.Stock.Get(testOrgID, productID, unit)
	require.NoError(t, err)
	return s.Quantity
}

func createRecepcion(t *testing.T, f *batchFixture, code string, qty int64) *entity.Batch {
	t.Helper()
	b, err := f.uc.Create(context.Background(), testOrgID, testUserID, dto.CreateBatchRequest{
		Code:      code,
		ProductID: testProdID,
		Quantity:  decimal.NewFromInt(qty),
		Unit:      "kg",
	})
	require.NoError(t, err)
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearLote_RecepcionIncrementaStockYEscribeEvento(t *testing.T) {
	f := newBatchFixture(t)

	b := createRecepcion(t, f, "rec-2026-001 ", 500)

	assert.Equal(t, "REC-2026-001", b.Code) // normalizado
	assert.Equal(t, entity.StatusRecepcion, b.Status)
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(500)))
	assert.True(t, b.InitialQuantity.Equal(decimal.NewFromInt(500)))

	assert.True(t, f.stockQty(t, testProdID, "kg").Equal(decimal.NewFromInt(500)))

	events := f.tx.Events.All()
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventRecepcion, events[0].Type)
	assert.Equal(t, "REC-2026-001", events[0].OutputBatchCode)
	require.NotNil(t, events[0].ToStage)
	assert.Equal(t, entity.StatusRecepcion, *events[0].ToStage)

	// Tras el commit se notariza el hito.
	require.Len(t, f.notary.Calls, 1)
	assert.Equal(t, "REC-2026-001", f.notary.Calls[0].BatchCode)
	assert.Equal(t, entity.StatusRecepcion, f.notary.Calls[0].Stage)
}

func TestCrearLote_ReferenciaDelNotarioSePersisteEnElEvento(t *testing.T) {
	f := newBatchFixture(t)
	f.notary.Ref = "0xabc123"

	createRecepcion(t, f, "REC-1", 10)

	events := f.tx.Events.All()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].NotaryRef)
	assert.Equal(t, "0xabc123", *events[0].NotaryRef)
}

func TestCrearLote_FalloDelNotarioNoAfectaAlAlta(t *testing.T) {
	f := newBatchFixture(t)
	f.notary.Err = assert.AnError

	b := createRecepcion(t, f, "REC-1", 10)

	stored, err := f.tx.Batches.GetByID(b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	events := f.tx.Events.All()
	require.Len(t, events, 1)
	assert.Nil(t, events[0].NotaryRef)
}

func TestCrearLote_CodigoDuplicadoEnLaOrganizacion(t *testing.T) {
	f := newBatchFixture(t)
	createRecepcion(t, f, "REC-1", 100)

	_, err := f.uc.Create(context.Background(), testOrgID, testUserID, dto.CreateBatchRequest{
		Code:      "rec-1", // normaliza al mismo código
		ProductID: testProdID,
		Quantity:  decimal.NewFromInt(50),
		Unit:      "kg",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El stock no se tocó con el intento fallido.
	assert.True(t, f.stockQty(t, testProdID, "kg").Equal(decimal.NewFromInt(100)))
}

func TestCrearLote_EstadoExplicitoDePipelineNoTocaStock(t *testing.T) {
	f := newBatchFixture(t)

	b, err := f.uc.Create(context.Background(), testOrgID, testUserID, dto.CreateBatchRequest{
		Code:      "AS-1",
		ProductID: testProdID,
		Quantity:  decimal.NewFromInt(80),
		Unit:      "kg",
		Status:    entity.StatusAsado,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAsado, b.Status)

	// Solo RECEPCION alimenta el agregado de materia prima.
	assert.True(t, f.stockQty(t, testProdID, "kg").IsZero())

	events := f.tx.Events.All()
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventAsado, events[0].Type)
}

func TestCrearLote_EstadoDeDecisionRechazado(t *testing.T) {
	f := newBatchFixture(t)

	for _, status := range []string{entity.StatusAprobado, entity.StatusRetenido, entity.StatusBloqueado, entity.StatusExpedido} {
		_, err := f.uc.Create(context.Background(), testOrgID, testUserID, dto.CreateBatchRequest{
			Code:      "X-" + status,
			ProductID: testProdID,
			Quantity:  decimal.NewFromInt(10),
			Unit:      "kg",
			Status:    status,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, status)
	}
}

func TestCrearLote_ValidacionesBasicas(t *testing.T) {
	f := newBatchFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, testOrgID, testUserID, dto.CreateBatchRequest{
		ProductID: testProdID, Quantity: decimal.NewFromInt(1), Unit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "código vacío")

	_, err = f.uc.Create(ctx, testOrgID, testUserID, dto.CreateBatchRequest{
		Code: "A", ProductID: testProdID, Quantity: decimal.Zero, Unit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.uc.Create(ctx, testOrgID, testUserID, dto.CreateBatchRequest{
		Code: "A", ProductID: "prod-inexistente", Quantity: decimal.NewFromInt(1), Unit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: reconciliación de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestEditarLote_DeltaDeCantidadEnRecepcion(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	q := decimal.NewFromInt(60)
	_, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		Quantity: &q,
	})
	require.NoError(t, err)

	// 100 − 40 de corrección = 60.
	assert.True(t, f.stockQty(t, testProdID, "kg").Equal(decimal.NewFromInt(60)))
}

func TestEditarLote_CorreccionAlAlzaEnRecepcionSubeElInicial(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	q := decimal.NewFromInt(150)
	updated, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		Quantity: &q,
	})
	require.NoError(t, err)
	assert.True(t, updated.InitialQuantity.Equal(decimal.NewFromInt(150)))
	assert.True(t, f.stockQty(t, testProdID, "kg").Equal(decimal.NewFromInt(150)))
}

func TestEditarLote_CorreccionAlAlzaFueraDeRecepcionRechazada(t *testing.T) {
	f := newBatchFixture(t)
	tx := f.tx
	b := &entity.Batch{
		ID: "b-env", OrganizationID: testOrgID, Code: "ENV-1", ProductID: testProdID,
		InitialQuantity: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(100),
		Unit: "kg", Status: entity.StatusEnvasado,
	}
	tx.Batches.Seed(b)

	q := decimal.NewFromInt(120)
	_, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		Quantity: &q,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEditarLote_CambioDeIdentidadEnRecepcionMueveElStock(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	newProduct := testProdID2
	_, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		ProductID: &newProduct,
	})
	require.NoError(t, err)

	// La contribución antigua se resta y la nueva se suma, atómicamente.
	assert.True(t, f.stockQty(t, testProdID, "kg").IsZero())
	assert.True(t, f.stockQty(t, testProdID2, "kg").Equal(decimal.NewFromInt(100)))
}

func TestEditarLote_SalirDeRecepcionRetiraLaContribucionIntegra(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	asado := entity.StatusAsado
	updated, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		Status: &asado,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAsado, updated.Status)
	assert.True(t, f.stockQty(t, testProdID, "kg").IsZero())
}

func TestEditarLote_TransicionInvalidaRechazada(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	envasado := entity.StatusEnvasado // RECEPCION no puede saltar a ENVASADO
	_, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		Status: &envasado,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, f.stockQty(t, testProdID, "kg").Equal(decimal.NewFromInt(100)))
}

func TestEditarLote_CambioDeEstadoGeneraHistorial(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	asado := entity.StatusAsado
	_, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		Status: &asado,
		Notes:  "salida a horno 2",
	})
	require.NoError(t, err)

	history, err := f.tx.History.ListByBatch(b.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.StatusRecepcion, history[0].FromStatus)
	assert.Equal(t, entity.StatusAsado, history[0].ToStatus)
	assert.Equal(t, "salida a horno 2", history[0].Notes)
	assert.Equal(t, testUserID, history[0].ChangedBy)
}

func TestEditarLote_CambioDeUbicacionGeneraHistorial(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	loc := "camara-3"
	_, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		LocationID: &loc,
	})
	require.NoError(t, err)

	history, err := f.tx.History.ListByBatch(b.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].ToLocationID)
	assert.Equal(t, "camara-3", *history[0].ToLocationID)
	// Sin cambio de estado, from == to.
	assert.Equal(t, history[0].FromStatus, history[0].ToStatus)
}

func TestEditarLote_SinCambioDeEstadoNiUbicacionNoHayHistorial(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	temp := 4.5
	_, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		Temperature: &temp,
	})
	require.NoError(t, err)

	history, err := f.tx.History.ListByBatch(b.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestEditarLote_OtraOrganizacionNoVeElLote(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)

	temp := 4.5
	_, err := f.uc.Update(context.Background(), otherOrgID, testUserID, b.ID, dto.UpdateBatchRequest{
		Temperature: &temp,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: cascada y reversión de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestBorrarLote_RevierteStockYCascada(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)
	createRecepcion(t, f, "REC-2", 40)

	err := f.uc.Delete(context.Background(), testOrgID, b.ID)
	require.NoError(t, err)

	gone, err := f.tx.Batches.GetByID(b.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Solo sobrevive la contribución del otro lote.
	assert.True(t, f.stockQty(t, testProdID, "kg").Equal(decimal.NewFromInt(40)))

	// Los eventos de salida del lote borrado desaparecen.
	for _, ev := range f.tx.Events.All() {
		assert.NotEqual(t, b.ID, ev.OutputBatchID)
	}
}

func TestBorrarLote_FueraDeRecepcionNoTocaStock(t *testing.T) {
	f := newBatchFixture(t)
	b := createRecepcion(t, f, "REC-1", 100)
	asado := entity.StatusAsado
	_, err := f.uc.Update(context.Background(), testOrgID, testUserID, b.ID, dto.UpdateBatchRequest{Status: &asado})
	require.NoError(t, err)
	require.True(t, f.stockQty(t, testProdID, "kg").IsZero())

	require.NoError(t, f.uc.Delete(context.Background(), testOrgID, b.ID))
	assert.True(t, f.stockQty(t, testProdID, "kg").IsZero())
}

func TestBorrarLote_Inexistente(t *testing.T) {
	f := newBatchFixture(t)
	err := f.uc.Delete(context.Background(), testOrgID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListarPorEstado_EstadoInvalido(t *testing.T) {
	f := newBatchFixture(t)
	_, err := f.uc.ListByStatus(context.Background(), testOrgID, "COCIDO", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListarPorEstado(t *testing.T) {
	f := newBatchFixture(t)
	createRecepcion(t, f, "REC-1", 10)
	createRecepcion(t, f, "REC-2", 20)

	got, err := f.uc.ListByStatus(context.Background(), testOrgID, entity.StatusRecepcion, 20, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.uc.ListByStatus(context.Background(), testOrgID, entity.StatusAsado, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecompute_CoincideConElMantenimientoIncremental(t *testing.T) {
	f := newBatchFixture(t)
	createRecepcion(t, f, "REC-1", 100)
	createRecepcion(t, f, "REC-2", 50)

	rows, err := f.tx.Stock.Recompute(testOrgID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(150)))
	assert.True(t, rows[0].Quantity.Equal(f.stockQty(t, testProdID, "kg")))
}
