package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Cabecera en invoices, líneas en invoice_lines, pagos en invoice_payments.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, company_id, customer_id, tipo, estado, numero, numero_control, moneda,
	fecha, fecha_emision, subtotal, total_iva, total_igtf, total,
	tasa_cambio, fecha_tasa, total_usd,
	afecta_serie, afecta_numero, afecta_fecha, afecta_monto, motivo_nota,
	motivo_anulacion, created_at, updated_at`

// Create persiste la cabecera de un documento.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.Tipo, invoice.Estado,
		nullIfEmpty(invoice.Numero), nullIfEmpty(invoice.NumeroControl), invoice.Moneda,
		invoice.Fecha, invoice.FechaEmision,
		invoice.Subtotal, invoice.TotalIVA, invoice.TotalIGTF, invoice.Total,
		invoice.TasaCambio, nullIfZeroTime(invoice.FechaTasa), invoice.TotalUSD,
		nullIfEmpty(invoice.AfectaSerie), nullIfEmpty(invoice.AfectaNumero),
		invoice.AfectaFecha, invoice.AfectaMonto, nullIfEmpty(invoice.MotivoNota),
		nullIfEmpty(invoice.MotivoAnulacion), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del documento.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, item_id, codigo, descripcion,
			cantidad, precio_unitario, descuento_pct, codigo_iva, alicuota,
			base_imponible, monto_iva)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ItemID, line.Codigo, line.Descripcion,
		line.Cantidad, line.PrecioUnitario, line.DescuentoPct, string(line.CodigoIVA),
		line.Alicuota, line.BaseImponible, line.MontoIVA,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// CreatePayment persiste una entrada de pago del documento.
func (r *InvoiceRepo) CreatePayment(payment *entity.InvoicePayment) error {
	query := `
		INSERT INTO invoice_payments (id, invoice_id, metodo, monto, monto_divisa,
			aplica_igtf, monto_igtf)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, string(payment.Metodo), payment.Monto,
		payment.MontoDivisa, payment.AplicaIGTF, payment.MontoIGTF,
	)
	if err != nil {
		return fmt.Errorf("insert invoice payment: %w", err)
	}
	return nil
}

// Update actualiza estado, numeración, tasa congelada y campos de anulación.
// Las líneas y pagos son inmutables una vez persistidos.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET
			estado = $2, numero = $3, numero_control = $4, fecha_emision = $5,
			tasa_cambio = $6, fecha_tasa = $7, total_usd = $8,
			motivo_anulacion = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Estado, nullIfEmpty(invoice.Numero), nullIfEmpty(invoice.NumeroControl),
		invoice.FechaEmision, invoice.TasaCambio, nullIfZeroTime(invoice.FechaTasa), invoice.TotalUSD,
		nullIfEmpty(invoice.MotivoAnulacion), invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCompanyAndNumero busca un documento emitido por número (para notas).
func (r *InvoiceRepo) GetByCompanyAndNumero(companyID, numero string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND numero = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, numero))
}

// GetLinesByInvoiceID obtiene las líneas de un documento en orden de inserción.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, item_id, codigo, descripcion, cantidad, precio_unitario,
		       descuento_pct, codigo_iva, alicuota, base_imponible, monto_iva
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY orden`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		var codigoIVA string
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ItemID, &l.Codigo, &l.Descripcion,
			&l.Cantidad, &l.PrecioUnitario, &l.DescuentoPct, &codigoIVA, &l.Alicuota,
			&l.BaseImponible, &l.MontoIVA); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		l.CodigoIVA = fiscal.CodigoIVA(codigoIVA)
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetPaymentsByInvoiceID obtiene los pagos de un documento en orden de inserción.
func (r *InvoiceRepo) GetPaymentsByInvoiceID(invoiceID string) ([]*entity.InvoicePayment, error) {
	query := `
		SELECT id, invoice_id, metodo, monto, monto_divisa, aplica_igtf, monto_igtf
		FROM invoice_payments WHERE invoice_id = $1 ORDER BY orden`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoicePayment
	for rows.Next() {
		var p entity.InvoicePayment
		var metodo string
		if err := rows.Scan(&p.ID, &p.InvoiceID, &metodo, &p.Monto, &p.MontoDivisa,
			&p.AplicaIGTF, &p.MontoIGTF); err != nil {
			return nil, fmt.Errorf("scan invoice payment: %w", err)
		}
		p.Metodo = fiscal.MetodoPago(metodo)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListByCompany lista documentos de la empresa, más recientes primero.
func (r *InvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListEmittedBetween lista documentos emitidos (anulados incluidos) del período
// en orden de numeración, para el libro de ventas. hasta es inclusivo por día.
func (r *InvoiceRepo) ListEmittedBetween(companyID string, desde, hasta time.Time) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND estado <> 'BORRADOR'
		  AND fecha_emision >= $2 AND fecha_emision < $3
		ORDER BY numero`
	rows, err := r.q.Query(context.Background(), query, companyID, desde, hasta.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list emitted invoices: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// NextNumero devuelve el próximo correlativo de la empresa. El UPSERT sobre el
// contador bloquea la fila: debe invocarse dentro de la transacción de emisión
// para que dos emisiones concurrentes no compartan número.
func (r *InvoiceRepo) NextNumero(companyID string) (int64, error) {
	query := `
		INSERT INTO invoice_counters (company_id, ultimo)
		VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET ultimo = invoice_counters.ultimo + 1
		RETURNING ultimo`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

func (r *InvoiceRepo) scanOne(row pgx.Row) (*entity.Invoice, error) {
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) scanMany(rows pgx.Rows) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// scanInvoice mapea una fila a la entidad. Los campos opcionales viajan como
// NULL en la base y como cero/vacío en la entidad.
func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var numero, numeroControl, afectaSerie, afectaNumero, motivoNota, motivoAnulacion *string
	var fechaTasa *time.Time
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Tipo, &inv.Estado,
		&numero, &numeroControl, &inv.Moneda,
		&inv.Fecha, &inv.FechaEmision,
		&inv.Subtotal, &inv.TotalIVA, &inv.TotalIGTF, &inv.Total,
		&inv.TasaCambio, &fechaTasa, &inv.TotalUSD,
		&afectaSerie, &afectaNumero, &inv.AfectaFecha, &inv.AfectaMonto, &motivoNota,
		&motivoAnulacion, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Numero = deref(numero)
	inv.NumeroControl = deref(numeroControl)
	inv.AfectaSerie = deref(afectaSerie)
	inv.AfectaNumero = deref(afectaNumero)
	inv.MotivoNota = deref(motivoNota)
	inv.MotivoAnulacion = deref(motivoAnulacion)
	if fechaTasa != nil {
		inv.FechaTasa = *fechaTasa
	}
	return &inv, nil
}
