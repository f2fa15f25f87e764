package shipment_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroconserva/trazabilidad-api/internal/application/apptest"
	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/application/shipment"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

const (
	testOrgID      = "org-1"
	testUserID     = "user-exped"
	testProdID     = "prod-conserva"
	testCustomerID = "cust-1"
)

type shipFixture struct {
	uc     *shipment.UseCase
	tx     *apptest.TxRunner
	notary *apptest.FakeNotary
}

func newShipFixture(t *testing.T) *shipFixture {
	t.Helper()
	tx := apptest.NewTxRunner()
	products := apptest.NewMemProductRepo()
	require.NoError(t, products.Create(&entity.Product{
		ID: testProdID, OrganizationID: testOrgID, Code: "CONS", Name: "Conserva", Type: "terminado",
	}))
	customers := apptest.NewMemCustomerRepo()
	require.NoError(t, customers.Create(&entity.Customer{
		ID: testCustomerID, OrganizationID: testOrgID, Name: "Distribuciones Segura",
	}))
	notary := &apptest.FakeNotary{}
	uc := shipment.NewUseCase(tx, tx.Batches, tx.Shipments, customers, products, notary, zerolog.Nop())
	return &shipFixture{uc: uc, tx: tx, notary: notary}
}

func (f *shipFixture) seedApproved(id, code string, qty int64, expires *time.Time) *entity.Batch {
	b := &entity.Batch{
		ID: id, OrganizationID: testOrgID, Code: code, ProductID: testProdID,
		InitialQuantity: decimal.NewFromInt(qty), Quantity: decimal.NewFromInt(qty),
		Unit: "ud", Status: entity.StatusAprobado, ExpiresAt: expires,
	}
	f.tx.Batches.Seed(b)
	return b
}

func shipReq(batchID string, qty int64) dto.CreateShipmentRequest {
	return dto.CreateShipmentRequest{
		CustomerID: testCustomerID,
		BatchID:    batchID,
		Quantity:   decimal.NewFromInt(qty),
		Unit:       "ud",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: división y agotamiento del lote
// ──────────────────────────────────────────────────────────────────────────────

func TestExpedir_ParcialMantieneAprobadoConResto(t *testing.T) {
	f := newShipFixture(t)
	f.seedApproved("b1", "LOTE-1", 100, nil)

	shp, b, err := f.uc.Create(context.Background(), testOrgID, testUserID, shipReq("b1", 30))
	require.NoError(t, err)
	assert.True(t, shp.Quantity.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "LOTE-1", shp.BatchCode)

	assert.Equal(t, entity.StatusAprobado, b.Status)
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(70)))
	assert.Nil(t, b.ProcessedAt)

	// Evento EXPEDICION con cliente y expedición enlazados.
	events := f.tx.Events.All()
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventExpedicion, events[0].Type)
	require.NotNil(t, events[0].ShipmentID)
	assert.Equal(t, shp.ID, *events[0].ShipmentID)
	require.NotNil(t, events[0].CustomerID)
	assert.Equal(t, testCustomerID, *events[0].CustomerID)
	assert.True(t, events[0].Quantity.Equal(decimal.NewFromInt(30)))

	require.Len(t, f.notary.Calls, 1)
	assert.Equal(t, entity.EventExpedicion, f.notary.Calls[0].Stage)
}

func TestExpedir_TotalAgotaElLote(t *testing.T) {
	f := newShipFixture(t)
	f.seedApproved("b1", "LOTE-1", 100, nil)

	_, b, err := f.uc.Create(context.Background(), testOrgID, testUserID, shipReq("b1", 100))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusExpedido, b.Status)
	assert.True(t, b.Quantity.IsZero())
	require.NotNil(t, b.ProcessedAt)
}

func TestExpedir_SobreasignacionRechazada(t *testing.T) {
	f := newShipFixture(t)
	f.seedApproved("b1", "LOTE-1", 100, nil)

	_, _, err := f.uc.Create(context.Background(), testOrgID, testUserID, shipReq("b1", 101))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	assert.Contains(t, err.Error(), "LOTE-1")

	b, _ := f.tx.Batches.GetByID("b1")
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, f.tx.Events.All())
}

func TestExpedir_AlbaranDuplicadoRechazado(t *testing.T) {
	f := newShipFixture(t)
	f.seedApproved("b1", "LOTE-1", 100, nil)

	note := "ALB-2026-055"
	req := shipReq("b1", 20)
	req.DeliveryNote = &note
	_, _, err := f.uc.Create(context.Background(), testOrgID, testUserID, req)
	require.NoError(t, err)

	req2 := shipReq("b1", 10)
	req2.DeliveryNote = &note
	_, _, err = f.uc.Create(context.Background(), testOrgID, testUserID, req2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "ALB-2026-055")
}

func TestExpedir_LoteBloqueadoORetenidoNuncaSaleDePlanta(t *testing.T) {
	f := newShipFixture(t)
	for _, status := range []string{entity.StatusBloqueado, entity.StatusRetenido, entity.StatusEsterilizado, entity.StatusEnvasado, entity.StatusExpedido} {
		id := "b-" + status
		f.tx.Batches.Seed(&entity.Batch{
			ID: id, OrganizationID: testOrgID, Code: "L-" + status, ProductID: testProdID,
			InitialQuantity: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(10),
			Unit: "ud", Status: status,
		})

		_, _, err := f.uc.Create(context.Background(), testOrgID, testUserID, shipReq(id, 10))
		require.Error(t, err, status)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, status)
		assert.Contains(t, err.Error(), "L-"+status)

		// El lote queda intacto.
		b, _ := f.tx.Batches.GetByID(id)
		assert.Equal(t, status, b.Status)
		assert.True(t, b.Quantity.Equal(decimal.NewFromInt(10)), status)
	}
	assert.Empty(t, f.tx.Events.All())
}

func TestExpedir_MateriaPrimaEnRecepcionSaleDirectaYDecrementaStock(t *testing.T) {
	f := newShipFixture(t)
	f.tx.Batches.Seed(&entity.Batch{
		ID: "b1", OrganizationID: testOrgID, Code: "REC-1", ProductID: testProdID,
		InitialQuantity: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(100),
		Unit: "ud", Status: entity.StatusRecepcion,
	})
	require.NoError(t, f.tx.Stock.ApplyDelta(testOrgID, testProdID, "ud", decimal.NewFromInt(100)))

	_, b, err := f.uc.Create(context.Background(), testOrgID, testUserID, shipReq("b1", 40))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRecepcion, b.Status)
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(60)))

	// La materia prima expedida abandona el agregado de stock.
	s, err := f.tx.Stock.Get(testOrgID, testProdID, "ud")
	require.NoError(t, err)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(60)))

	// Expedir el resto agota el lote.
	_, b, err = f.uc.Create(context.Background(), testOrgID, testUserID, shipReq("b1", 60))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusExpedido, b.Status)
}

func TestExpedir_UnidadDistintaALaDelLoteRechazada(t *testing.T) {
	f := newShipFixture(t)
	f.seedApproved("b1", "LOTE-1", 100, nil)

	req := shipReq("b1", 10)
	req.Unit = "caja"
	_, _, err := f.uc.Create(context.Background(), testOrgID, testUserID, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "caja")

	b, _ := f.tx.Batches.GetByID("b1")
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, f.tx.Events.All())
}

func TestExpedir_StockSoloSeDecrementaSiElLoteSeguiaEnRecepcion(t *testing.T) {
	f := newShipFixture(t)
	// Lote aprobado: no forma parte del agregado de materia prima.
	f.seedApproved("b1", "LOTE-1", 100, nil)

	_, _, err := f.uc.Create(context.Background(), testOrgID, testUserID, shipReq("b1", 50))
	require.NoError(t, err)

	s, err := f.tx.Stock.Get(testOrgID, testProdID, "ud")
	require.NoError(t, err)
	assert.True(t, s.Quantity.IsZero())
}

func TestExpedir_ClienteInexistenteODeOtraOrganizacion(t *testing.T) {
	f := newShipFixture(t)
	f.seedApproved("b1", "LOTE-1", 100, nil)

	req := shipReq("b1", 10)
	req.CustomerID = "cust-desconocido"
	_, _, err := f.uc.Create(context.Background(), testOrgID, testUserID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpedir_ValidacionesBasicas(t *testing.T) {
	f := newShipFixture(t)
	ctx := context.Background()

	_, _, err := f.uc.Create(ctx, testOrgID, testUserID, dto.CreateShipmentRequest{
		BatchID: "b1", Quantity: decimal.NewFromInt(1), Unit: "ud",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cliente")

	_, _, err = f.uc.Create(ctx, testOrgID, testUserID, dto.CreateShipmentRequest{
		CustomerID: testCustomerID, BatchID: "b1", Quantity: decimal.Zero, Unit: "ud",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Candidatos FEFO
// ──────────────────────────────────────────────────────────────────────────────

func TestCandidatosAprobados_OrdenFEFO(t *testing.T) {
	f := newShipFixture(t)
	soon := time.Now().Add(3 * 24 * time.Hour)
	later := time.Now().Add(60 * 24 * time.Hour)
	f.seedApproved("b1", "LOTE-LARGO", 100, &later)
	f.seedApproved("b2", "LOTE-CORTO", 100, &soon)
	f.seedApproved("b3", "LOTE-SIN-FECHA", 100, nil)
	// Lote agotado: fuera de la lista de candidatos.
	f.tx.Batches.Seed(&entity.Batch{
		ID: "b4", OrganizationID: testOrgID, Code: "LOTE-AGOTADO", ProductID: testProdID,
		InitialQuantity: decimal.NewFromInt(50), Quantity: decimal.Zero,
		Unit: "ud", Status: entity.StatusAprobado,
	})

	got, err := f.uc.ListApprovedForProduct(context.Background(), testOrgID, testProdID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "LOTE-CORTO", got[0].Code)
	assert.Equal(t, "LOTE-LARGO", got[1].Code)
	assert.Equal(t, "LOTE-SIN-FECHA", got[2].Code)
}

func TestGetByID_OtraOrganizacion(t *testing.T) {
	f := newShipFixture(t)
	f.seedApproved("b1", "LOTE-1", 100, nil)
	shp, _, err := f.uc.Create(context.Background(), testOrgID, testUserID, shipReq("b1", 10))
	require.NoError(t, err)

	_, err = f.uc.GetByID(context.Background(), "org-ajena", shp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.uc.GetByID(context.Background(), testOrgID, shp.ID)
	require.NoError(t, err)
	assert.Equal(t, shp.ID, got.ID)
}
