package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/internal/domain/repository"
	"github.com/facturave/facturave-api/pkg/logger"
)

// InvoiceUseCase ciclo de vida del documento fiscal: borrador, emisión,
// notas y anulación. Los cálculos fiscales delegan en fiscal.Calculadora;
// los montos calculados quedan congelados al persistir.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	itemRepo     repository.ItemRepository
	rateRepo     repository.ExchangeRateRepository
	calc         *fiscal.Calculadora
	monedaTasa   string // moneda de referencia de la tasa BCV (USD)
	log          *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	itemRepo repository.ItemRepository,
	rateRepo repository.ExchangeRateRepository,
	calc *fiscal.Calculadora,
	monedaTasa string,
	log *logger.Logger,
) *InvoiceUseCase {
	if monedaTasa == "" {
		monedaTasa = "USD"
	}
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		itemRepo:     itemRepo,
		rateRepo:     rateRepo,
		calc:         calc,
		monedaTasa:   monedaTasa,
		log:          log,
	}
}

// CreateDraft crea una factura en borrador: valida cliente e ítems, calcula
// y congela bases, IVA e IGTF, y persiste cabecera, líneas y pagos en una
// transacción. El borrador no tiene número ni número de control.
func (uc *InvoiceUseCase) CreateDraft(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 || len(in.Payments) == 0 {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	lines, payments, totals, err := uc.buildLinesAndPayments(companyID, in.Lines, in.Payments)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CustomerID: in.CustomerID,
		Tipo:       entity.TipoFactura,
		Estado:     entity.EstadoBorrador,
		Moneda:     "VES",
		Fecha:      now,
		Subtotal:   totals.Subtotal,
		TotalIVA:   totals.TotalIVA,
		TotalIGTF:  totals.TotalIGTF,
		Total:      totals.Total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.persistDraft(ctx, inv, lines, payments); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("company_id", companyID).
		Str("total", inv.Total.String()).
		Msg("borrador de factura creado")
	return uc.toResponse(inv, customer.Name, lines, payments), nil
}

// draftTotals sumas congeladas del borrador. El total es la suma exacta de
// los valores redondeados por línea y por pago.
type draftTotals struct {
	Subtotal  decimal.Decimal
	TotalIVA  decimal.Decimal
	TotalIGTF decimal.Decimal
	Total     decimal.Decimal
}

// buildLinesAndPayments resuelve los ítems del catálogo, calcula los montos
// de cada línea y clasifica el IGTF de cada pago. No persiste nada.
func (uc *InvoiceUseCase) buildLinesAndPayments(
	companyID string,
	lineReqs []dto.InvoiceLineRequest,
	payReqs []dto.InvoicePaymentRequest,
) ([]*entity.InvoiceLine, []*entity.InvoicePayment, draftTotals, error) {
	var totals draftTotals

	lines := make([]*entity.InvoiceLine, 0, len(lineReqs))
	for _, lr := range lineReqs {
		if lr.ItemID == "" || !lr.Cantidad.GreaterThan(decimal.Zero) {
			return nil, nil, totals, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(lr.ItemID)
		if err != nil || item == nil {
			return nil, nil, totals, domain.ErrNotFound
		}
		if item.CompanyID != companyID {
			return nil, nil, totals, domain.ErrForbidden
		}
		if !item.Active {
			return nil, nil, totals, domain.ErrInvalidInput
		}
		precio := lr.PrecioUnitario
		if precio.LessThan(decimal.Zero) {
			return nil, nil, totals, domain.ErrInvalidInput
		}
		if precio.IsZero() {
			precio = item.Price
		}
		alicuota := item.Alicuota
		if alicuota.IsZero() {
			alicuota = fiscal.AlicuotaPorCodigo(item.CodigoIVA)
		}

		tl := uc.calc.TotalesLinea(fiscal.Linea{
			Cantidad:       lr.Cantidad,
			PrecioUnitario: precio,
			DescuentoPct:   lr.DescuentoPct,
			CodigoIVA:      item.CodigoIVA,
			Alicuota:       alicuota,
		})
		lines = append(lines, &entity.InvoiceLine{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			Codigo:         item.Codigo,
			Descripcion:    item.Name,
			Cantidad:       lr.Cantidad,
			PrecioUnitario: precio,
			DescuentoPct:   lr.DescuentoPct,
			CodigoIVA:      item.CodigoIVA,
			Alicuota:       alicuota,
			BaseImponible:  tl.BaseImponible,
			MontoIVA:       tl.MontoIVA,
		})
		totals.Subtotal = totals.Subtotal.Add(tl.BaseImponible)
		totals.TotalIVA = totals.TotalIVA.Add(tl.MontoIVA)
	}

	payments := make([]*entity.InvoicePayment, 0, len(payReqs))
	for _, pr := range payReqs {
		if !pr.Monto.GreaterThan(decimal.Zero) {
			return nil, nil, totals, domain.ErrInvalidInput
		}
		metodo := fiscal.MetodoPago(pr.Metodo)
		igtf := uc.calc.IGTFPago(fiscal.Pago{Metodo: metodo, Monto: pr.Monto})
		payments = append(payments, &entity.InvoicePayment{
			ID:          uuid.New().String(),
			Metodo:      metodo,
			Monto:       pr.Monto,
			MontoDivisa: pr.MontoDivisa,
			AplicaIGTF:  igtf.Aplica,
			MontoIGTF:   igtf.Monto,
		})
		totals.TotalIGTF = totals.TotalIGTF.Add(igtf.Monto)
	}

	totals.Total = totals.Subtotal.Add(totals.TotalIVA).Add(totals.TotalIGTF)
	return lines, payments, totals, nil
}

// persistDraft guarda cabecera, líneas y pagos en una transacción.
func (uc *InvoiceUseCase) persistDraft(ctx context.Context, inv *entity.Invoice, lines []*entity.InvoiceLine, payments []*entity.InvoicePayment) error {
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.ControlNumberRepository,
		_ repository.ExchangeRateRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, l := range lines {
			l.InvoiceID = inv.ID
			if err := invoiceRepo.CreateLine(l); err != nil {
				return err
			}
		}
		for _, p := range payments {
			p.InvoiceID = inv.ID
			if err := invoiceRepo.CreatePayment(p); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetInvoice obtiene un documento por ID con líneas y pagos.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.invoiceRepo.GetPaymentsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, lines, payments), nil
}

// ListInvoices lista documentos de la empresa (cabeceras, paginado).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, companyID string, limit, offset int) (*dto.InvoiceListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.invoiceRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceListItem, 0, len(list))
	for _, inv := range list {
		items = append(items, dto.InvoiceListItem{
			ID:         inv.ID,
			Tipo:       inv.Tipo,
			Estado:     inv.Estado,
			Numero:     inv.Numero,
			Fecha:      inv.Fecha.Format("2006-01-02"),
			CustomerID: inv.CustomerID,
			Total:      inv.Total,
		})
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, customerName string, lines []*entity.InvoiceLine, payments []*entity.InvoicePayment) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		Tipo:          inv.Tipo,
		Estado:        inv.Estado,
		Numero:        inv.Numero,
		NumeroControl: inv.NumeroControl,
		Moneda:        inv.Moneda,
		Fecha:         inv.Fecha.Format("2006-01-02"),
		Subtotal:      inv.Subtotal,
		TotalIVA:      inv.TotalIVA,
		TotalIGTF:     inv.TotalIGTF,
		Total:         inv.Total,
		TasaCambio:    inv.TasaCambio,
		TotalUSD:      inv.TotalUSD,
		AfectaNumero:  inv.AfectaNumero,
		MotivoNota:    inv.MotivoNota,
		Lines:         make([]dto.InvoiceLineResponse, 0, len(lines)),
		Payments:      make([]dto.InvoicePaymentResponse, 0, len(payments)),
	}
	if inv.FechaEmision != nil {
		resp.FechaEmision = inv.FechaEmision.Format("2006-01-02 15:04:05")
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:             l.ID,
			ItemID:         l.ItemID,
			Codigo:         l.Codigo,
			Descripcion:    l.Descripcion,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			DescuentoPct:   l.DescuentoPct,
			CodigoIVA:      string(l.CodigoIVA),
			Alicuota:       l.Alicuota,
			BaseImponible:  l.BaseImponible,
			MontoIVA:       l.MontoIVA,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.InvoicePaymentResponse{
			ID:         p.ID,
			Metodo:     string(p.Metodo),
			Monto:      p.Monto,
			AplicaIGTF: p.AplicaIGTF,
			MontoIGTF:  p.MontoIGTF,
		})
	}
	return resp
}
