// seed puebla la base de datos con un juego de datos de desarrollo: una
// empresa emisora con su usuario admin, un cliente, un catálogo mínimo, un
// lote de números de control y la tasa BCV del día.
//
// Uso: go run ./cmd/seed
// La conexión se toma de la misma configuración que el API (DATABASE_URL, DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/internal/infrastructure/postgres"
	"github.com/facturave/facturave-api/pkg/config"
	"github.com/facturave/facturave-api/pkg/seniat"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	now := time.Now()

	companyRepo := postgres.NewCompanyRepository(pool)
	company := &entity.Company{
		ID:        uuid.NewString(),
		Name:      "Inversiones Páramo C.A.",
		RIF:       "J-12345678-9",
		Address:   "Av. Francisco de Miranda, Caracas",
		Phone:     "+58-212-5550101",
		Email:     "facturacion@paramo.example",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := companyRepo.Create(company); err != nil {
		if err == domain.ErrDuplicate {
			fmt.Println("la empresa de ejemplo ya existe, nada que hacer")
			return
		}
		fail("crear empresa", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("cambiar-esta-clave"), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password", err)
	}
	userRepo := postgres.NewUserRepository(pool)
	admin := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Email:        "admin@paramo.example",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		fail("crear usuario admin", err)
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	customer := &entity.Customer{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Name:      "Distribuidora Andina C.A.",
		RIF:       "J-87654321-0",
		Address:   "Zona Industrial Los Ruices, Caracas",
		Email:     "compras@andina.example",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := customerRepo.Create(customer); err != nil {
		fail("crear cliente", err)
	}

	itemRepo := postgres.NewItemRepository(pool)
	items := []*entity.Item{
		{
			Codigo: "SRV-001", Name: "Servicio de consultoría",
			Price:     decimal.NewFromInt(500),
			CodigoIVA: fiscal.IVAGeneral, UnitMeasure: seniat.UnidadHora,
		},
		{
			Codigo: "PRD-001", Name: "Harina de maíz precocida 1kg",
			Price:     decimal.NewFromFloat(45.50),
			CodigoIVA: fiscal.IVAExento, UnitMeasure: seniat.UnidadUnidad,
		},
		{
			Codigo: "PRD-002", Name: "Café molido 500g",
			Price:     decimal.NewFromFloat(180.00),
			CodigoIVA: fiscal.IVAReducida, UnitMeasure: seniat.UnidadUnidad,
		},
	}
	for _, it := range items {
		it.ID = uuid.NewString()
		it.CompanyID = company.ID
		it.Alicuota = fiscal.AlicuotaPorCodigo(it.CodigoIVA)
		it.Active = true
		it.CreatedAt = now
		it.UpdatedAt = now
		if err := itemRepo.Create(it); err != nil {
			fail("crear ítem "+it.Codigo, err)
		}
	}

	controlRepo := postgres.NewControlNumberRepository(pool)
	batch := &entity.ControlNumberBatch{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Serie:     "00",
		Desde:     1,
		Hasta:     10000,
		Siguiente: 1,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := controlRepo.Create(batch); err != nil {
		fail("crear lote de números de control", err)
	}

	rateRepo := postgres.NewExchangeRateRepository(pool)
	rate := &entity.ExchangeRate{
		ID:        uuid.NewString(),
		Moneda:    "USD",
		Tasa:      decimal.NewFromFloat(36.50),
		Fecha:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Fuente:    "BCV",
		CreatedAt: now,
	}
	if err := rateRepo.Upsert(rate); err != nil {
		fail("registrar tasa BCV", err)
	}

	fmt.Printf("seed completado: empresa %s (%s), admin %s\n",
		company.Name, company.ID, admin.Email)
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
