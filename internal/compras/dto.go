package compras

import (
	"encoding/json"

	"github.com/farmacia-cloud/compras-backend/pkg/db/models"
)

// ProductoInput is one submitted line item. Precio and Cantidad stay raw so
// the service can report type problems with the exact item position instead
// of a generic decode failure.
type ProductoInput struct {
	Codigo      *string         `json:"codigo"`
	Nombre      *string         `json:"nombre"`
	Precio      json.RawMessage `json:"precio"`
	Cantidad    json.RawMessage `json:"cantidad"`
	Categoria   string          `json:"categoria"`
	Laboratorio string          `json:"laboratorio"`
	Descripcion string          `json:"descripcion"`
}

// RegistrarInput is the request body for registering a purchase.
type RegistrarInput struct {
	Productos        []ProductoInput `json:"productos" validate:"required,min=1"`
	MetodoPago       string          `json:"metodo_pago"`
	DireccionEntrega string          `json:"direccion_entrega"`
	Observaciones    string          `json:"observaciones"`
	Moneda           string          `json:"moneda"`
}

// ListarParams carries the List query inputs after query-string parsing.
type ListarParams struct {
	Limit      int
	Cursor     string
	FechaDesde string
	FechaHasta string
}

// ProductoDTO is the wire rendering of a stored line item; monetary values
// become plain JSON numbers here and nowhere earlier.
type ProductoDTO struct {
	Codigo      string  `json:"codigo"`
	Nombre      string  `json:"nombre"`
	Precio      float64 `json:"precio"`
	Cantidad    int     `json:"cantidad"`
	Subtotal    float64 `json:"subtotal"`
	Categoria   string  `json:"categoria,omitempty"`
	Laboratorio string  `json:"laboratorio,omitempty"`
	Descripcion string  `json:"descripcion,omitempty"`
}

// CompraDTO is the wire rendering of a stored purchase.
type CompraDTO struct {
	TenantID         string        `json:"tenant_id"`
	CodigoCompra     string        `json:"codigo_compra"`
	EmailUsuario     string        `json:"email_usuario"`
	NombreUsuario    string        `json:"nombre_usuario"`
	Productos        []ProductoDTO `json:"productos"`
	TotalProductos   int           `json:"total_productos"`
	TotalMonto       float64       `json:"total_monto"`
	Moneda           string        `json:"moneda"`
	FechaCompra      string        `json:"fecha_compra"`
	Estado           string        `json:"estado"`
	MetodoPago       string        `json:"metodo_pago"`
	DireccionEntrega string        `json:"direccion_entrega"`
	Observaciones    string        `json:"observaciones"`
}

// ListadoCompras is one page of purchases.
type ListadoCompras struct {
	Compras []CompraDTO
	Count   int
	HasMore bool
	NextKey string
}

// EstadisticasDTO aggregates the caller's spend. Timestamps are nil when no
// purchases exist.
type EstadisticasDTO struct {
	TotalCompras            int     `json:"total_compras"`
	TotalGastado            float64 `json:"total_gastado"`
	TotalProductosComprados int     `json:"total_productos_comprados"`
	PromedioPorCompra       float64 `json:"promedio_por_compra"`
	PrimeraCompra           *string `json:"primera_compra"`
	UltimaCompra            *string `json:"ultima_compra"`
}

func toProductoDTO(p models.Producto) ProductoDTO {
	return ProductoDTO{
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Precio:      p.Precio.InexactFloat64(),
		Cantidad:    p.Cantidad,
		Subtotal:    p.Subtotal.InexactFloat64(),
		Categoria:   p.Categoria,
		Laboratorio: p.Laboratorio,
		Descripcion: p.Descripcion,
	}
}

func toCompraDTO(c *models.Compra) *CompraDTO {
	productos := make([]ProductoDTO, 0, len(c.Productos))
	for _, p := range c.Productos {
		productos = append(productos, toProductoDTO(p))
	}
	return &CompraDTO{
		TenantID:         c.TenantID,
		CodigoCompra:     c.CodigoCompra,
		EmailUsuario:     c.EmailUsuario,
		NombreUsuario:    c.NombreUsuario,
		Productos:        productos,
		TotalProductos:   c.TotalProductos,
		TotalMonto:       c.TotalMonto.InexactFloat64(),
		Moneda:           c.Moneda,
		FechaCompra:      c.FechaCompra,
		Estado:           c.Estado,
		MetodoPago:       c.MetodoPago,
		DireccionEntrega: c.DireccionEntrega,
		Observaciones:    c.Observaciones,
	}
}
