package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EstadoProducto string

const (
	ProductoDisponible   EstadoProducto = "disponible"
	ProductoNoDisponible EstadoProducto = "no_disponible"
)

func EstadoProductoValido(s EstadoProducto) bool {
	switch s {
	case ProductoDisponible, ProductoNoDisponible:
		return true
	}
	return false
}

type Producto struct {
	ID               int64           `json:"producto_id"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	Estado           EstadoProducto  `json:"estado"`
	TarifaRenta      decimal.Decimal `json:"tarifa_renta"`
	FechaAdquisicion time.Time       `json:"fecha_adquisicion"`
	Imagen           *string         `json:"imagen,omitempty"`
	Stock            int             `json:"stock"`
	UsuarioID        int64           `json:"usuario_id"`
	CategoriaID      int64           `json:"categoria_id"`
}
