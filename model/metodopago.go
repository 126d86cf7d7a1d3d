package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Metodo string

const (
	MetodoTarjeta       Metodo = "tarjeta"
	MetodoEfectivo      Metodo = "efectivo"
	MetodoTransferencia Metodo = "transferencia"
)

func MetodoValido(m Metodo) bool {
	switch m {
	case MetodoTarjeta, MetodoEfectivo, MetodoTransferencia:
		return true
	}
	return false
}

type EstadoPago string

const (
	PagoPendiente  EstadoPago = "pendiente"
	PagoCompletado EstadoPago = "completado"
	PagoFallido    EstadoPago = "fallido"
)

func EstadoPagoValido(e EstadoPago) bool {
	switch e {
	case PagoPendiente, PagoCompletado, PagoFallido:
		return true
	}
	return false
}

type MetodoPago struct {
	ID        int64           `json:"metodopago_id"`
	RentaID   int64           `json:"renta_id"`
	Monto     decimal.Decimal `json:"monto"`
	FechaPago time.Time       `json:"fecha_pago"`
	Metodo    Metodo          `json:"metodo"`
	Estado    EstadoPago      `json:"estado"`
}

// MetodoPagoDetalle joins the payment with its renta and the paying user's
// identity for display.
type MetodoPagoDetalle struct {
	MetodoPago
	EstadoRenta   EstadoRenta     `json:"estado_renta"`
	TotalRenta    decimal.Decimal `json:"total_renta"`
	UsuarioID     int64           `json:"usuario_id"`
	NombreUsuario string          `json:"nombre_usuario"`
	EmailUsuario  string          `json:"email_usuario"`
}
