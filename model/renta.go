package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EstadoRenta string

const (
	RentaPendiente  EstadoRenta = "pendiente"
	RentaActiva     EstadoRenta = "activa"
	RentaFinalizada EstadoRenta = "finalizada"
	RentaCancelada  EstadoRenta = "cancelada"
)

// EstadoRentaValido reports membership in the recognized status set. Edge
// legality between statuses is intentionally not checked here.
func EstadoRentaValido(s EstadoRenta) bool {
	switch s {
	case RentaPendiente, RentaActiva, RentaFinalizada, RentaCancelada:
		return true
	}
	return false
}

type Renta struct {
	ID              int64           `json:"renta_id"`
	UsuarioID       int64           `json:"usuario_id"`
	FechaInicio     time.Time       `json:"fecha_inicio"`
	FechaFin        time.Time       `json:"fecha_fin"`
	FechaDevolucion time.Time       `json:"fecha_devolucion"`
	Estado          EstadoRenta     `json:"estado"`
	Total           decimal.Decimal `json:"total"`
}

// ProductoRenta reserves a quantity of a product against a rental. Unique per
// (renta, producto) pair.
type ProductoRenta struct {
	ID         int64 `json:"renta_producto_id"`
	RentaID    int64 `json:"renta_id"`
	ProductoID int64 `json:"producto_id"`
	Cantidad   int   `json:"cantidad"`
}

// ProductoRentado is the per-user aggregation row: a product together with
// the renta that reserved it.
type ProductoRentado struct {
	RentaID     int64           `json:"renta_id"`
	EstadoRenta EstadoRenta     `json:"estado_renta"`
	ProductoID  int64           `json:"producto_id"`
	Nombre      string          `json:"nombre"`
	Imagen      *string         `json:"imagen,omitempty"`
	TarifaRenta decimal.Decimal `json:"tarifa_renta"`
	Cantidad    int             `json:"cantidad"`
}
