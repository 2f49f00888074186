package docs

import (
	"net/http"

	"github.com/farmacia-cloud/compras-backend/api/responses"
)

// OpenAPI handles GET /docs/openapi.json. The document is assembled per
// request so the servers block reflects the host the caller reached.
func OpenAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scheme := "https"
		if r.TLS == nil {
			scheme = "http"
		}
		if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
			scheme = forwarded
		}

		responses.WriteJSON(w, http.StatusOK, openAPIDocument(scheme+"://"+r.Host))
	}
}

// SwaggerUI handles GET /docs: the static documentation page.
func SwaggerUI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(swaggerUIPage))
	}
}

func openAPIDocument(baseURL string) map[string]any {
	return map[string]any{
		"openapi": "3.0.1",
		"info": map[string]any{
			"title":       "API Compras",
			"version":     "1.0.0",
			"description": "Documentación de la API de compras",
		},
		"servers": []map[string]any{
			{"url": baseURL},
		},
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"bearerAuth": map[string]any{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
			"schemas": schemas(),
		},
		"security": []map[string]any{
			{"bearerAuth": []any{}},
		},
		"paths": paths(),
	}
}

func schemas() map[string]any {
	return map[string]any{
		"Producto": map[string]any{
			"type":     "object",
			"required": []string{"codigo", "nombre", "precio", "cantidad"},
			"properties": map[string]any{
				"codigo":      map[string]any{"type": "string", "example": "PROD001"},
				"nombre":      map[string]any{"type": "string", "example": "Paracetamol 500mg"},
				"precio":      map[string]any{"type": "number", "example": 9.99},
				"cantidad":    map[string]any{"type": "integer", "example": 2},
				"subtotal":    map[string]any{"type": "number", "example": 19.98},
				"categoria":   map[string]any{"type": "string", "example": "Analgésicos"},
				"laboratorio": map[string]any{"type": "string", "example": "Genfar"},
				"descripcion": map[string]any{"type": "string", "example": "Caja x 100 tabletas"},
			},
		},
		"RegistrarCompraRequest": map[string]any{
			"type":     "object",
			"required": []string{"productos"},
			"properties": map[string]any{
				"productos": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/components/schemas/Producto"},
				},
				"metodo_pago":       map[string]any{"type": "string", "example": "online"},
				"direccion_entrega": map[string]any{"type": "string", "example": "Av. Principal 123"},
				"observaciones":     map[string]any{"type": "string", "example": "Entregar en la mañana"},
				"moneda":            map[string]any{"type": "string", "example": "PEN"},
			},
		},
		"Compra": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tenant_id":     map[string]any{"type": "string", "example": "tenant123"},
				"codigo_compra": map[string]any{"type": "string", "example": "COM-1641234567-ABC123EF"},
				"email_usuario": map[string]any{"type": "string", "example": "usuario@example.com"},
				"nombre_usuario": map[string]any{
					"type": "string", "example": "Juan Pérez",
				},
				"productos": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/components/schemas/Producto"},
				},
				"total_productos":   map[string]any{"type": "integer", "example": 3},
				"total_monto":       map[string]any{"type": "number", "example": 25.50},
				"moneda":            map[string]any{"type": "string", "example": "PEN"},
				"fecha_compra":      map[string]any{"type": "string", "format": "date-time", "example": "2025-01-15T10:30:00Z"},
				"estado":            map[string]any{"type": "string", "example": "completada"},
				"metodo_pago":       map[string]any{"type": "string", "example": "online"},
				"direccion_entrega": map[string]any{"type": "string", "example": "Av. Principal 123"},
				"observaciones":     map[string]any{"type": "string", "example": "Entregar en la mañana"},
			},
		},
		"ListadoCompras": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"compras": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/components/schemas/Compra"},
				},
				"count":   map[string]any{"type": "integer", "example": 1},
				"hasMore": map[string]any{"type": "boolean", "example": false},
				"nextKey": map[string]any{"type": "string", "example": "MjAyNS0wMS0xNVQxMDozMDowMFp8Q09NLTE2NDEyMzQ1NjctQUJDMTIzRUY="},
			},
		},
		"Estadisticas": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"total_compras":             map[string]any{"type": "integer", "example": 5},
				"total_gastado":             map[string]any{"type": "number", "example": 2500.75},
				"total_productos_comprados": map[string]any{"type": "integer", "example": 8},
				"promedio_por_compra":       map[string]any{"type": "number", "example": 500.15},
				"primera_compra":            map[string]any{"type": "string", "format": "date-time", "nullable": true},
				"ultima_compra":             map[string]any{"type": "string", "format": "date-time", "nullable": true},
			},
		},
		"Error": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"error":   map[string]any{"type": "string", "example": "mensaje de error"},
				"message": map[string]any{"type": "string", "example": "detalle adicional"},
			},
		},
	}
}

func paths() map[string]any {
	errorRef := map[string]any{
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}

	return map[string]any{
		"/api/v1/compras": map[string]any{
			"post": map[string]any{
				"summary": "Registrar una compra",
				"tags":    []string{"compras"},
				"requestBody": map[string]any{
					"required": true,
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{"$ref": "#/components/schemas/RegistrarCompraRequest"},
						},
					},
				},
				"responses": map[string]any{
					"201": map[string]any{
						"description": "Compra registrada",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"message": map[string]any{"type": "string"},
										"compra":  map[string]any{"$ref": "#/components/schemas/Compra"},
									},
								},
							},
						},
					},
					"400": withDescription(errorRef, "Validación fallida"),
					"401": withDescription(errorRef, "Token requerido, expirado o inválido"),
					"500": withDescription(errorRef, "Error interno"),
				},
			},
			"get": map[string]any{
				"summary": "Listar compras del usuario",
				"tags":    []string{"compras"},
				"parameters": []map[string]any{
					queryParam("limit", "integer", "Tamaño de página, 1-100, por defecto 20"),
					queryParam("lastKey", "string", "Token de continuación de una página anterior"),
					queryParam("fecha_desde", "string", "Filtro inclusivo desde (ISO-8601)"),
					queryParam("fecha_hasta", "string", "Filtro inclusivo hasta (ISO-8601)"),
				},
				"responses": map[string]any{
					"200": map[string]any{
						"description": "Página de compras",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/ListadoCompras"},
							},
						},
					},
					"400": withDescription(errorRef, "Parámetros inválidos"),
					"401": withDescription(errorRef, "Token requerido, expirado o inválido"),
				},
			},
		},
		"/api/v1/compras/estadisticas": map[string]any{
			"get": map[string]any{
				"summary": "Estadísticas de compras del usuario",
				"tags":    []string{"compras"},
				"responses": map[string]any{
					"200": map[string]any{
						"description": "Estadísticas",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/Estadisticas"},
							},
						},
					},
					"401": withDescription(errorRef, "Token requerido, expirado o inválido"),
				},
			},
		},
		"/api/v1/compras/{codigo}": map[string]any{
			"get": map[string]any{
				"summary": "Buscar compra por código",
				"tags":    []string{"compras"},
				"parameters": []map[string]any{
					{
						"name":     "codigo",
						"in":       "path",
						"required": true,
						"schema":   map[string]any{"type": "string"},
					},
				},
				"responses": map[string]any{
					"200": map[string]any{
						"description": "Compra encontrada",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"compra": map[string]any{"$ref": "#/components/schemas/Compra"},
									},
								},
							},
						},
					},
					"401": withDescription(errorRef, "Token requerido, expirado o inválido"),
					"404": withDescription(errorRef, "Compra no encontrada"),
				},
			},
		},
	}
}

func queryParam(name, typ, description string) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "query",
		"required":    false,
		"description": description,
		"schema":      map[string]any{"type": typ},
	}
}

func withDescription(base map[string]any, description string) map[string]any {
	out := map[string]any{"description": description}
	for k, v := range base {
		out[k] = v
	}
	return out
}
