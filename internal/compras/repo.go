package compras

import (
	"context"

	"gorm.io/gorm"

	"github.com/farmacia-cloud/compras-backend/pkg/db/models"
	"github.com/farmacia-cloud/compras-backend/pkg/pagination"
)

// ListQuery narrows a user-scoped listing. Limit already includes the
// +1 lookahead row and date bounds are inclusive string comparisons.
type ListQuery struct {
	FechaDesde string
	FechaHasta string
	Cursor     *pagination.Cursor
	Limit      int
}

// Repository is the persistence surface for purchases.
type Repository interface {
	Create(ctx context.Context, compra *models.Compra) error
	FindByCodigo(ctx context.Context, tenantID, codigo string) (*models.Compra, error)
	ListByUsuario(ctx context.Context, tenantID, email string, q ListQuery) ([]models.Compra, error)
	ListAllByUsuario(ctx context.Context, tenantID, email string) ([]models.Compra, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a purchases repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, compra *models.Compra) error {
	return r.db.WithContext(ctx).Create(compra).Error
}

func (r *repository) FindByCodigo(ctx context.Context, tenantID, codigo string) (*models.Compra, error) {
	var compra models.Compra
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND codigo_compra = ?", tenantID, codigo).
		First(&compra).Error
	if err != nil {
		return nil, err
	}
	return &compra, nil
}

func (r *repository) ListByUsuario(ctx context.Context, tenantID, email string, q ListQuery) ([]models.Compra, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email_usuario = ?", tenantID, email)

	if q.FechaDesde != "" {
		query = query.Where("fecha_compra >= ?", q.FechaDesde)
	}
	if q.FechaHasta != "" {
		query = query.Where("fecha_compra <= ?", q.FechaHasta)
	}
	if q.Cursor != nil {
		query = query.Where(
			"(fecha_compra < ?) OR (fecha_compra = ? AND codigo_compra < ?)",
			q.Cursor.FechaCompra, q.Cursor.FechaCompra, q.Cursor.CodigoCompra,
		)
	}

	var rows []models.Compra
	err := query.
		Order("fecha_compra DESC, codigo_compra DESC").
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListAllByUsuario(ctx context.Context, tenantID, email string) ([]models.Compra, error) {
	var rows []models.Compra
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email_usuario = ?", tenantID, email).
		Order("fecha_compra ASC, codigo_compra ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
