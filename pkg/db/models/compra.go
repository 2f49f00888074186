package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is one line item inside a purchase. The full list is persisted as
// a JSON document on the parent row, mirroring the original single-table
// layout where items were never addressed independently.
type Producto struct {
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	Cantidad    int             `json:"cantidad"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Categoria   string          `json:"categoria,omitempty"`
	Laboratorio string          `json:"laboratorio,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
}

// Compra is the sole persisted entity: one purchase, keyed by tenant and
// purchase code. FechaCompra is stored as an RFC3339 UTC string so range
// filters and ordering stay plain string comparisons.
type Compra struct {
	TenantID         string          `gorm:"column:tenant_id;primaryKey"`
	CodigoCompra     string          `gorm:"column:codigo_compra;primaryKey"`
	EmailUsuario     string          `gorm:"column:email_usuario;not null;index:idx_compras_usuario,priority:2"`
	NombreUsuario    string          `gorm:"column:nombre_usuario;not null"`
	Productos        []Producto      `gorm:"column:productos;type:jsonb;serializer:json"`
	TotalProductos   int             `gorm:"column:total_productos;not null"`
	TotalMonto       decimal.Decimal `gorm:"column:total_monto;type:numeric(12,2);not null"`
	Moneda           string          `gorm:"column:moneda;not null;default:'PEN'"`
	FechaCompra      string          `gorm:"column:fecha_compra;not null"`
	Estado           string          `gorm:"column:estado;not null;default:'completada'"`
	MetodoPago       string          `gorm:"column:metodo_pago;not null;default:'online'"`
	DireccionEntrega string          `gorm:"column:direccion_entrega"`
	Observaciones    string          `gorm:"column:observaciones"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Compra) TableName() string {
	return "compras"
}
