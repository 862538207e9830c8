package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/internal/domain/repository"
	"github.com/facturave/facturave-api/internal/infrastructure/timbrado"
	"github.com/facturave/facturave-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string][]*entity.InvoiceLine
	payments map[string][]*entity.InvoicePayment
	ultimo   int64
}

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		lines:    map[string][]*entity.InvoiceLine{},
		payments: map[string][]*entity.InvoicePayment{},
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(l *entity.InvoiceLine) error {
	r.lines[l.InvoiceID] = append(r.lines[l.InvoiceID], l)
	return nil
}

func (r *fakeInvoiceRepo) CreatePayment(p *entity.InvoicePayment) error {
	r.payments[p.InvoiceID] = append(r.payments[p.InvoiceID], p)
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetByCompanyAndNumero(companyID, numero string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.Numero == numero {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	return r.lines[invoiceID], nil
}

func (r *fakeInvoiceRepo) GetPaymentsByInvoiceID(invoiceID string) ([]*entity.InvoicePayment, error) {
	return r.payments[invoiceID], nil
}

func (r *fakeInvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListEmittedBetween(companyID string, desde, hasta time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.FechaEmision != nil &&
			!inv.FechaEmision.Before(desde) && !inv.FechaEmision.After(hasta) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) NextNumero(companyID string) (int64, error) {
	r.ultimo++
	return r.ultimo, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByCompanyAndRIF(companyID, rif string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.CompanyID == companyID && c.RIF == rif {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) Delete(id string) error { delete(r.customers, id); return nil }

type fakeItemRepo struct {
	items map[string]*entity.Item
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(it *entity.Item) error            { r.items[it.ID] = it; return nil }
func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) { return r.items[id], nil }
func (r *fakeItemRepo) GetByCompanyAndCodigo(companyID, codigo string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.CompanyID == companyID && it.Codigo == codigo {
			return it, nil
		}
	}
	return nil, nil
}
func (r *fakeItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error) {
	return nil, nil
}
func (r *fakeItemRepo) Update(it *entity.Item) error { r.items[it.ID] = it; return nil }
func (r *fakeItemRepo) Delete(id string) error { delete(r.items, id); return nil }

type fakeCompanyRepo struct{}

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func (fakeCompanyRepo) Create(*entity.Company) error             { return nil }
func (fakeCompanyRepo) GetByID(string) (*entity.Company, error)  { return nil, nil }
func (fakeCompanyRepo) GetByRIF(string) (*entity.Company, error) { return nil, nil }
func (fakeCompanyRepo) Update(*entity.Company) error             { return nil }
func (fakeCompanyRepo) List(int, int) ([]*entity.Company, error) { return nil, nil }
func (fakeCompanyRepo) Delete(string) error                      { return nil }

type fakeRateRepo struct {
	latest *entity.ExchangeRate
}

var _ repository.ExchangeRateRepository = (*fakeRateRepo)(nil)

func (r *fakeRateRepo) Upsert(rate *entity.ExchangeRate) error { r.latest = rate; return nil }
func (r *fakeRateRepo) GetLatest(moneda string) (*entity.ExchangeRate, error) {
	if r.latest == nil || r.latest.Moneda != moneda {
		return nil, nil
	}
	return r.latest, nil
}
func (r *fakeRateRepo) GetByDate(moneda string, fecha time.Time) (*entity.ExchangeRate, error) {
	return r.GetLatest(moneda)
}

type fakeControlRepo struct {
	batch *entity.ControlNumberBatch
}

var _ repository.ControlNumberRepository = (*fakeControlRepo)(nil)

func (r *fakeControlRepo) Create(b *entity.ControlNumberBatch) error { r.batch = b; return nil }
func (r *fakeControlRepo) GetActiveForUpdate(companyID string) (*entity.ControlNumberBatch, error) {
	if r.batch == nil || !r.batch.Activo || r.batch.CompanyID != companyID {
		return nil, nil
	}
	return r.batch, nil
}
func (r *fakeControlRepo) Update(b *entity.ControlNumberBatch) error { r.batch = b; return nil }
func (r *fakeControlRepo) ListByCompany(companyID string) ([]*entity.ControlNumberBatch, error) {
	if r.batch == nil {
		return nil, nil
	}
	return []*entity.ControlNumberBatch{r.batch}, nil
}

// fakeTxRunner ejecuta el callback con los mismos fakes, sin transacción real.
type fakeTxRunner struct {
	invoices *fakeInvoiceRepo
	control  *fakeControlRepo
	rates    *fakeRateRepo
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	repository.InvoiceRepository,
	repository.ControlNumberRepository,
	repository.ExchangeRateRepository,
) error) error {
	return fn(r.invoices, r.control, r.rates)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	empresaID   = "co-1"
	clienteID   = "cli-1"
	itemGravado = "it-gravado"
	itemExento  = "it-exento"
	itemBajaID  = "it-inactivo"
)

type entorno struct {
	uc       *billing.InvoiceUseCase
	invoices *fakeInvoiceRepo
	control  *fakeControlRepo
	rates    *fakeRateRepo
}

// nuevoEntorno arma el caso de uso con una empresa, un cliente, un catálogo
// mínimo, la tasa BCV del día y un lote de números de control de tres cupos.
func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	now := time.Now()

	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		clienteID: {ID: clienteID, CompanyID: empresaID, Name: "Distribuidora Andina C.A.", RIF: "J-87654321-0"},
	}}
	items := &fakeItemRepo{items: map[string]*entity.Item{
		itemGravado: {
			ID: itemGravado, CompanyID: empresaID, Codigo: "SRV-001", Name: "Servicio de consultoría",
			Price: dec("100"), CodigoIVA: fiscal.IVAGeneral, Active: true,
		},
		itemExento: {
			ID: itemExento, CompanyID: empresaID, Codigo: "PRD-001", Name: "Harina de maíz precocida 1kg",
			Price: dec("50"), CodigoIVA: fiscal.IVAExento, Active: true,
		},
		itemBajaID: {
			ID: itemBajaID, CompanyID: empresaID, Codigo: "PRD-099", Name: "Descontinuado",
			Price: dec("10"), CodigoIVA: fiscal.IVAGeneral, Active: false,
		},
	}}
	invoices := newFakeInvoiceRepo()
	rates := &fakeRateRepo{latest: &entity.ExchangeRate{
		ID: "rate-1", Moneda: "USD", Tasa: dec("36.50"),
		Fecha: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), Fuente: "BCV",
	}}
	control := &fakeControlRepo{batch: &entity.ControlNumberBatch{
		ID: "lote-1", CompanyID: empresaID, Serie: "00",
		Desde: 1, Hasta: 3, Siguiente: 1, Activo: true,
	}}

	uc := billing.NewInvoiceUseCase(
		&fakeTxRunner{invoices: invoices, control: control, rates: rates},
		invoices, customers, fakeCompanyRepo{}, items, rates,
		fiscal.NewCalculadora(fiscal.Config{}),
		"USD",
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	return &entorno{uc: uc, invoices: invoices, control: control, rates: rates}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// borradorPagado crea un borrador de una línea gravada (2 × 100 Bs) pagado
// completo por transferencia: subtotal 200, IVA 32, total 232.
func borradorPagado(t *testing.T, env *entorno) string {
	t.Helper()
	resp, err := env.uc.CreateDraft(context.Background(), empresaID, dto.CreateInvoiceRequest{
		CustomerID: clienteID,
		Lines:      []dto.InvoiceLineRequest{{ItemID: itemGravado, Cantidad: dec("2")}},
		Payments:   []dto.InvoicePaymentRequest{{Metodo: "transferencia", Monto: dec("232")}},
	})
	require.NoError(t, err)
	return resp.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateDraft
// ──────────────────────────────────────────────────────────────────────────────

// El borrador congela bases, IVA e IGTF: línea gravada al 16% por código de
// catálogo, línea exenta sin IVA, y 3% de IGTF solo sobre el pago en divisa.
func TestCreateDraft_CongelaTotalesYClasificaIGTF(t *testing.T) {
	env := nuevoEntorno(t)

	resp, err := env.uc.CreateDraft(context.Background(), empresaID, dto.CreateInvoiceRequest{
		CustomerID: clienteID,
		Lines: []dto.InvoiceLineRequest{
			{ItemID: itemGravado, Cantidad: dec("2")}, // precio cero: usa catálogo (100)
			{ItemID: itemExento, Cantidad: dec("1")},
		},
		Payments: []dto.InvoicePaymentRequest{
			{Metodo: "transferencia", Monto: dec("194.70")},
			{Metodo: "efectivo_divisa", Monto: dec("90")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoBorrador, resp.Estado)
	assert.Equal(t, entity.TipoFactura, resp.Tipo)
	assert.Empty(t, resp.Numero, "el borrador no tiene numeración")
	assert.Empty(t, resp.NumeroControl)

	assert.True(t, resp.Subtotal.Equal(dec("250.00")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.TotalIVA.Equal(dec("32.00")), "IVA: %s", resp.TotalIVA)
	assert.True(t, resp.TotalIGTF.Equal(dec("2.70")), "IGTF 3%% de 90: %s", resp.TotalIGTF)
	assert.True(t, resp.Total.Equal(dec("284.70")), "total: %s", resp.Total)

	require.Len(t, resp.Lines, 2)
	assert.True(t, resp.Lines[0].Alicuota.Equal(dec("16")),
		"la alícuota del ítem gravado sale del código IVA del catálogo")
	assert.Equal(t, "Servicio de consultoría", resp.Lines[0].Descripcion)

	require.Len(t, resp.Payments, 2)
	assert.False(t, resp.Payments[0].AplicaIGTF)
	assert.True(t, resp.Payments[1].AplicaIGTF)
	assert.True(t, resp.Payments[1].MontoIGTF.Equal(dec("2.70")))
}

// Un precio explícito en la línea manda sobre el precio de catálogo.
func TestCreateDraft_PrecioExplicitoMandaSobreCatalogo(t *testing.T) {
	env := nuevoEntorno(t)

	resp, err := env.uc.CreateDraft(context.Background(), empresaID, dto.CreateInvoiceRequest{
		CustomerID: clienteID,
		Lines:      []dto.InvoiceLineRequest{{ItemID: itemGravado, Cantidad: dec("1"), PrecioUnitario: dec("120")}},
		Payments:   []dto.InvoicePaymentRequest{{Metodo: "transferencia", Monto: dec("139.20")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(dec("120.00")))
	assert.True(t, resp.Lines[0].PrecioUnitario.Equal(dec("120")))
}

func TestCreateDraft_ItemInactivoRechazado(t *testing.T) {
	env := nuevoEntorno(t)

	_, err := env.uc.CreateDraft(context.Background(), empresaID, dto.CreateInvoiceRequest{
		CustomerID: clienteID,
		Lines:      []dto.InvoiceLineRequest{{ItemID: itemBajaID, Cantidad: dec("1")}},
		Payments:   []dto.InvoicePaymentRequest{{Metodo: "transferencia", Monto: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateDraft_ClienteDeOtraEmpresa(t *testing.T) {
	env := nuevoEntorno(t)

	_, err := env.uc.CreateDraft(context.Background(), "otra-empresa", dto.CreateInvoiceRequest{
		CustomerID: clienteID,
		Lines:      []dto.InvoiceLineRequest{{ItemID: itemGravado, Cantidad: dec("1")}},
		Payments:   []dto.InvoicePaymentRequest{{Metodo: "transferencia", Monto: dec("116")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateDraft_SinLineasNiPagos(t *testing.T) {
	env := nuevoEntorno(t)

	_, err := env.uc.CreateDraft(context.Background(), empresaID, dto.CreateInvoiceRequest{CustomerID: clienteID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emit
// ──────────────────────────────────────────────────────────────────────────────

// La emisión asigna correlativo y número de control, congela la tasa BCV del
// día y calcula el equivalente en divisa sobre el total ya congelado.
func TestEmit_AsignaNumeracionYCongelaTasa(t *testing.T) {
	env := nuevoEntorno(t)
	id := borradorPagado(t, env)

	resp, err := env.uc.Emit(context.Background(), empresaID, id)
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoEmitida, resp.Estado)
	assert.Equal(t, "00000001", resp.Numero)
	assert.Equal(t, "00-00000001", resp.NumeroControl)
	assert.NotEmpty(t, resp.FechaEmision)
	assert.True(t, resp.TasaCambio.Equal(dec("36.50")))
	assert.True(t, resp.TotalUSD.Equal(dec("6.36")), "232 / 36.50 a 2 decimales: %s", resp.TotalUSD)

	assert.Equal(t, int64(2), env.control.batch.Siguiente, "la emisión consume un cupo del lote")
}

func TestEmit_SoloBorradores(t *testing.T) {
	env := nuevoEntorno(t)
	id := borradorPagado(t, env)
	_, err := env.uc.Emit(context.Background(), empresaID, id)
	require.NoError(t, err)

	_, err = env.uc.Emit(context.Background(), empresaID, id)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido, "emitir dos veces debe fallar")
}

func TestEmit_PagosIncompletos(t *testing.T) {
	env := nuevoEntorno(t)
	resp, err := env.uc.CreateDraft(context.Background(), empresaID, dto.CreateInvoiceRequest{
		CustomerID: clienteID,
		Lines:      []dto.InvoiceLineRequest{{ItemID: itemGravado, Cantidad: dec("2")}},
		Payments:   []dto.InvoicePaymentRequest{{Metodo: "transferencia", Monto: dec("100")}},
	})
	require.NoError(t, err)

	_, err = env.uc.Emit(context.Background(), empresaID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrPagosIncompletos)
}

// Sin tasa BCV del día no hay emisión; el borrador queda intacto.
func TestEmit_SinTasaDelDia(t *testing.T) {
	env := nuevoEntorno(t)
	id := borradorPagado(t, env)
	env.rates.latest = nil

	_, err := env.uc.Emit(context.Background(), empresaID, id)
	assert.ErrorIs(t, err, fiscal.ErrTasaNoDisponible)

	inv, _ := env.invoices.GetByID(id)
	assert.Equal(t, entity.EstadoBorrador, inv.Estado)
	assert.Empty(t, inv.Numero)
}

func TestEmit_SinLoteActivo(t *testing.T) {
	env := nuevoEntorno(t)
	id := borradorPagado(t, env)
	env.control.batch.Activo = false

	_, err := env.uc.Emit(context.Background(), empresaID, id)
	assert.ErrorIs(t, err, domain.ErrSinLoteActivo)
}

// El lote se consume en orden y al agotarse la emisión se bloquea hasta
// registrar un lote nuevo.
func TestEmit_ConsumeElLoteHastaAgotarlo(t *testing.T) {
	env := nuevoEntorno(t)

	esperados := []string{"00-00000001", "00-00000002", "00-00000003"}
	for _, control := range esperados {
		resp, err := env.uc.Emit(context.Background(), empresaID, borradorPagado(t, env))
		require.NoError(t, err)
		assert.Equal(t, control, resp.NumeroControl)
	}

	_, err := env.uc.Emit(context.Background(), empresaID, borradorPagado(t, env))
	assert.ErrorIs(t, err, domain.ErrLoteAgotado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Void
// ──────────────────────────────────────────────────────────────────────────────

func TestVoid_RequiereMotivo(t *testing.T) {
	env := nuevoEntorno(t)
	id := borradorPagado(t, env)

	_, err := env.uc.Void(context.Background(), empresaID, id, dto.VoidInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVoid_SoloEmitidas(t *testing.T) {
	env := nuevoEntorno(t)
	id := borradorPagado(t, env)

	_, err := env.uc.Void(context.Background(), empresaID, id, dto.VoidInvoiceRequest{Motivo: "error de captura"})
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido, "un borrador no se anula, se descarta")
}

// La anulación conserva número y número de control: la numeración fiscal no
// se reutiliza nunca.
func TestVoid_ConservaNumeracion(t *testing.T) {
	env := nuevoEntorno(t)
	id := borradorPagado(t, env)
	_, err := env.uc.Emit(context.Background(), empresaID, id)
	require.NoError(t, err)

	resp, err := env.uc.Void(context.Background(), empresaID, id, dto.VoidInvoiceRequest{Motivo: "error de captura"})
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoAnulada, resp.Estado)
	assert.Equal(t, "00000001", resp.Numero)
	assert.Equal(t, "00-00000001", resp.NumeroControl)

	inv, _ := env.invoices.GetByID(id)
	assert.Equal(t, "error de captura", inv.MotivoAnulacion)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateNota
// ──────────────────────────────────────────────────────────────────────────────

func notaRequest(tipo string) dto.CreateNotaRequest {
	return dto.CreateNotaRequest{
		Tipo:     tipo,
		Motivo:   "devolución parcial de mercancía",
		Lines:    []dto.InvoiceLineRequest{{ItemID: itemGravado, Cantidad: dec("1")}},
		Payments: []dto.InvoicePaymentRequest{{Metodo: "transferencia", Monto: dec("116")}},
	}
}

// La nota nace en borrador con la referencia al documento afectado congelada:
// serie, número, fecha de emisión y monto del documento original.
func TestCreateNota_CongelaReferenciaAlAfectado(t *testing.T) {
	env := nuevoEntorno(t)
	facturaID := borradorPagado(t, env)
	_, err := env.uc.Emit(context.Background(), empresaID, facturaID)
	require.NoError(t, err)

	resp, err := env.uc.CreateNota(context.Background(), empresaID, facturaID, notaRequest(entity.TipoNotaCredito))
	require.NoError(t, err)

	assert.Equal(t, entity.TipoNotaCredito, resp.Tipo)
	assert.Equal(t, entity.EstadoBorrador, resp.Estado)
	assert.Empty(t, resp.Numero, "la nota recibe su numeración al emitirla")
	assert.Equal(t, "00000001", resp.AfectaNumero)
	assert.Equal(t, "devolución parcial de mercancía", resp.MotivoNota)

	nota, _ := env.invoices.GetByID(resp.ID)
	require.NotNil(t, nota)
	assert.Equal(t, "00", nota.AfectaSerie, "serie extraída del número de control del afectado")
	assert.NotNil(t, nota.AfectaFecha)
	assert.True(t, nota.AfectaMonto.Equal(dec("232.00")), "monto del documento afectado: %s", nota.AfectaMonto)
}

// Una nota solo referencia documentos con numeración: sobre un borrador no
// hay nada que afectar.
func TestCreateNota_RechazaBorradores(t *testing.T) {
	env := nuevoEntorno(t)
	facturaID := borradorPagado(t, env)

	_, err := env.uc.CreateNota(context.Background(), empresaID, facturaID, notaRequest(entity.TipoNotaCredito))
	assert.ErrorIs(t, err, domain.ErrDocumentoNoAfectado)
}

// Un documento anulado conserva su numeración pero ya no existe fiscalmente:
// no admite notas aunque tenga número y fecha de emisión.
func TestCreateNota_RechazaDocumentoAnulado(t *testing.T) {
	env := nuevoEntorno(t)
	facturaID := borradorPagado(t, env)
	_, err := env.uc.Emit(context.Background(), empresaID, facturaID)
	require.NoError(t, err)
	_, err = env.uc.Void(context.Background(), empresaID, facturaID, dto.VoidInvoiceRequest{Motivo: "error de captura"})
	require.NoError(t, err)

	_, err = env.uc.CreateNota(context.Background(), empresaID, facturaID, notaRequest(entity.TipoNotaDebito))
	assert.ErrorIs(t, err, domain.ErrDocumentoNoAfectado)
}

func TestCreateNota_TipoInvalido(t *testing.T) {
	env := nuevoEntorno(t)
	facturaID := borradorPagado(t, env)
	_, err := env.uc.Emit(context.Background(), empresaID, facturaID)
	require.NoError(t, err)

	_, err = env.uc.CreateNota(context.Background(), empresaID, facturaID, notaRequest(entity.TipoFactura))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ExportDocumento
// ──────────────────────────────────────────────────────────────────────────────

// Una empresa inexistente es un no-encontrado del dominio (404), nunca un
// error interno envuelto.
func TestExportDocumento_EmpresaNoEncontrada(t *testing.T) {
	env := nuevoEntorno(t)
	facturaID := borradorPagado(t, env)
	_, err := env.uc.Emit(context.Background(), empresaID, facturaID)
	require.NoError(t, err)

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	exportUC := billing.NewExportUseCase(
		env.invoices,
		fakeCompanyRepo{}, // siempre nil: la empresa no existe
		&fakeCustomerRepo{customers: map[string]*entity.Customer{}},
		timbrado.NewBuilderService(log.Zerolog()),
		nil, "dev", log,
	)

	_, _, err = exportUC.ExportDocumento(context.Background(), empresaID, facturaID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La nota se emite por el mismo camino que la factura y comparte correlativo
// y lote de números de control.
func TestCreateNota_EmisionComparteNumeracion(t *testing.T) {
	env := nuevoEntorno(t)
	facturaID := borradorPagado(t, env)
	_, err := env.uc.Emit(context.Background(), empresaID, facturaID)
	require.NoError(t, err)

	nota, err := env.uc.CreateNota(context.Background(), empresaID, facturaID, notaRequest(entity.TipoNotaCredito))
	require.NoError(t, err)

	emitida, err := env.uc.Emit(context.Background(), empresaID, nota.ID)
	require.NoError(t, err)
	assert.Equal(t, "00000002", emitida.Numero)
	assert.Equal(t, "00-00000002", emitida.NumeroControl)
}
