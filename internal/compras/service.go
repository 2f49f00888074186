package compras

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/farmacia-cloud/compras-backend/pkg/auth"
	"github.com/farmacia-cloud/compras-backend/pkg/db/models"
	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
	"github.com/farmacia-cloud/compras-backend/pkg/pagination"
)

// Service exposes the purchase operations.
type Service interface {
	Registrar(ctx context.Context, principal auth.Principal, input RegistrarInput) (*CompraDTO, error)
	Listar(ctx context.Context, principal auth.Principal, params ListarParams) (*ListadoCompras, error)
	Buscar(ctx context.Context, principal auth.Principal, codigo string) (*CompraDTO, error)
	Estadisticas(ctx context.Context, principal auth.Principal) (*EstadisticasDTO, error)
}

// ServiceParams wires the service dependencies. Now is optional and exists
// for deterministic tests.
type ServiceParams struct {
	Repo Repository
	Now  func() time.Time
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

const (
	defaultMetodoPago = "online"
	defaultMoneda     = "PEN"
	estadoCompletada  = "completada"
)

var requiredProductoFields = []string{"codigo", "nombre", "precio", "cantidad"}

// Registrar validates the submitted items in order, failing on the first
// violation, then persists one new purchase with a freshly generated code.
func (s *service) Registrar(ctx context.Context, principal auth.Principal, input RegistrarInput) (*CompraDTO, error) {
	if len(input.Productos) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lista de productos requerida")
	}

	productos := make([]models.Producto, 0, len(input.Productos))
	totalCantidad := 0
	totalMonto := decimal.Zero

	for i, p := range input.Productos {
		pos := i + 1

		if missing := missingField(p); missing != "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("campo requerido en producto %d: %s", pos, missing))
		}

		cantidad, err := parseCantidad(p.Cantidad)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cantidad debe ser un número entero mayor a 0 en producto %d", pos))
		}

		precio, err := parsePrecio(p.Precio)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("precio inválido en producto %d", pos))
		}
		if !precio.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("precio debe ser mayor a 0 en producto %d", pos))
		}

		subtotal := precio.Mul(decimal.NewFromInt(int64(cantidad)))
		productos = append(productos, models.Producto{
			Codigo:      *p.Codigo,
			Nombre:      *p.Nombre,
			Precio:      precio,
			Cantidad:    cantidad,
			Subtotal:    subtotal,
			Categoria:   p.Categoria,
			Laboratorio: p.Laboratorio,
			Descripcion: p.Descripcion,
		})
		totalCantidad += cantidad
		totalMonto = totalMonto.Add(subtotal)
	}

	now := s.now()
	compra := &models.Compra{
		TenantID:         principal.TenantID,
		CodigoCompra:     GenerarCodigoCompra(now),
		EmailUsuario:     principal.Email,
		NombreUsuario:    principal.Nombre,
		Productos:        productos,
		TotalProductos:   totalCantidad,
		TotalMonto:       totalMonto,
		Moneda:           valueOrDefault(input.Moneda, defaultMoneda),
		FechaCompra:      FormatFecha(now),
		Estado:           estadoCompletada,
		MetodoPago:       valueOrDefault(input.MetodoPago, defaultMetodoPago),
		DireccionEntrega: input.DireccionEntrega,
		Observaciones:    input.Observaciones,
	}

	if err := s.repo.Create(ctx, compra); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registrando compra")
	}

	return toCompraDTO(compra), nil
}

// Listar returns one page of the caller's purchases, newest first. A
// malformed continuation token is rejected, not ignored.
func (s *service) Listar(ctx context.Context, principal auth.Principal, params ListarParams) (*ListadoCompras, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "lastKey inválido")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByUsuario(ctx, principal.TenantID, principal.Email, ListQuery{
		FechaDesde: params.FechaDesde,
		FechaHasta: params.FechaHasta,
		Cursor:     cursor,
		Limit:      limit + 1,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listando compras")
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	compras := make([]CompraDTO, 0, len(rows))
	for i := range rows {
		compras = append(compras, *toCompraDTO(&rows[i]))
	}

	result := &ListadoCompras{
		Compras: compras,
		Count:   len(compras),
		HasMore: hasMore,
	}
	if hasMore {
		last := rows[len(rows)-1]
		result.NextKey = pagination.EncodeCursor(pagination.Cursor{
			FechaCompra:  last.FechaCompra,
			CodigoCompra: last.CodigoCompra,
		})
	}
	return result, nil
}

// Buscar looks up one purchase by code. A record owned by another user is
// reported exactly like an absent one.
func (s *service) Buscar(ctx context.Context, principal auth.Principal, codigo string) (*CompraDTO, error) {
	compra, err := s.repo.FindByCodigo(ctx, principal.TenantID, codigo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "compra no encontrada")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "buscando compra")
	}
	if compra.EmailUsuario != principal.Email {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "compra no encontrada")
	}
	return toCompraDTO(compra), nil
}

// Estadisticas aggregates every purchase of the caller on each call; the
// store offers no cheaper aggregate primitive.
func (s *service) Estadisticas(ctx context.Context, principal auth.Principal) (*EstadisticasDTO, error) {
	rows, err := s.repo.ListAllByUsuario(ctx, principal.TenantID, principal.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consultando compras")
	}

	if len(rows) == 0 {
		return &EstadisticasDTO{}, nil
	}

	totalGastado := decimal.Zero
	totalProductos := 0
	primera := rows[0].FechaCompra
	ultima := rows[0].FechaCompra
	for _, c := range rows {
		totalGastado = totalGastado.Add(c.TotalMonto)
		totalProductos += c.TotalProductos
		if c.FechaCompra < primera {
			primera = c.FechaCompra
		}
		if c.FechaCompra > ultima {
			ultima = c.FechaCompra
		}
	}

	count := len(rows)
	promedio := totalGastado.Div(decimal.NewFromInt(int64(count))).Round(2)

	return &EstadisticasDTO{
		TotalCompras:            count,
		TotalGastado:            totalGastado.Round(2).InexactFloat64(),
		TotalProductosComprados: totalProductos,
		PromedioPorCompra:       promedio.InexactFloat64(),
		PrimeraCompra:           &primera,
		UltimaCompra:            &ultima,
	}, nil
}

func missingField(p ProductoInput) string {
	for _, field := range requiredProductoFields {
		switch field {
		case "codigo":
			if p.Codigo == nil {
				return field
			}
		case "nombre":
			if p.Nombre == nil {
				return field
			}
		case "precio":
			if isAbsent(p.Precio) {
				return field
			}
		case "cantidad":
			if isAbsent(p.Cantidad) {
				return field
			}
		}
	}
	return ""
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseCantidad(raw json.RawMessage) (int, error) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("cantidad fuera de rango: %d", n)
	}
	return n, nil
}

func parsePrecio(raw json.RawMessage) (decimal.Decimal, error) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return decimal.NewFromString(num.String())
	}
	// Numeric strings are tolerated on input.
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(str)
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
