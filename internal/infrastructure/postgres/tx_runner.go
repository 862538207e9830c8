package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

// Asegura que TxRunner implementa billing.BillingTxRunner.
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción con los repos de facturación atados a la
// tx y hace Commit o Rollback. La emisión depende de esto: correlativo, lote
// de control y actualización del documento se confirman juntos o ninguno.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	controlRepo repository.ControlNumberRepository,
	rateRepo repository.ExchangeRateRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	controlRepo := NewControlNumberRepository(tx)
	rateRepo := NewExchangeRateRepository(tx)

	if err := fn(invoiceRepo, controlRepo, rateRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
