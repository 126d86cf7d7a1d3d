package metodopago

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Aurosonic7/RentaProductoServer/model"
	metodopagosvc "github.com/Aurosonic7/RentaProductoServer/service/metodopago"
)

type Controller struct {
	Svc metodopagosvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

const dateLayout = "2006-01-02"

// fecha_pago travels as a plain YYYY-MM-DD string; missing on create means
// the payment is dated now.
type createReq struct {
	RentaID   int64           `json:"renta_id" validate:"required,gt=0"`
	Monto     decimal.Decimal `json:"monto" validate:"required"`
	FechaPago string          `json:"fecha_pago" validate:"omitempty,datetime=2006-01-02"`
	Metodo    string          `json:"metodo" validate:"required"`
	Estado    string          `json:"estado" validate:"required"`
}

type updateReq struct {
	Monto     *decimal.Decimal `json:"monto"`
	FechaPago *string          `json:"fecha_pago" validate:"omitempty,datetime=2006-01-02"`
	Metodo    *string          `json:"metodo"`
	Estado    *string          `json:"estado"`
}

// POST /metodopago
func (h *Controller) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "JSON inválido"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
	}

	fechaPago := time.Now().UTC()
	if req.FechaPago != "" {
		fechaPago, _ = time.Parse(dateLayout, req.FechaPago)
	}
	mp := &model.MetodoPago{
		RentaID:   req.RentaID,
		Monto:     req.Monto,
		FechaPago: fechaPago,
		Metodo:    model.Metodo(req.Metodo),
		Estado:    model.EstadoPago(req.Estado),
	}
	if err := h.Svc.Create(c.Request().Context(), mp); err != nil {
		switch metodopagosvc.Code(err) {
		case metodopagosvc.ErrRentaMissing:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Renta no encontrada"})
		case metodopagosvc.ErrBadMetodo:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Método de pago inválido"})
		case metodopagosvc.ErrBadEstado:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Estado de pago inválido"})
		case metodopagosvc.ErrBadMonto:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "El monto debe ser mayor que cero"})
		default:
			h.Log.Error("metodopago create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al registrar el pago"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Pago registrado exitosamente", "metodopago_id": mp.ID})
}

// GET /metodopago
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("metodopago list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener los pagos"})
	}
	return c.JSON(http.StatusOK, echo.Map{"pagos": rows})
}

// GET /metodopago/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de pago inválido"})
	}
	d, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if metodopagosvc.Code(err) == metodopagosvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Pago no encontrado"})
		}
		h.Log.Error("metodopago detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener el pago"})
	}
	return c.JSON(http.StatusOK, echo.Map{"pago": d})
}

// PUT /metodopago/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de pago inválido"})
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "JSON inválido"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
	}

	up := metodopagosvc.Update{Monto: req.Monto}
	if req.FechaPago != nil {
		fechaPago, err := time.Parse(dateLayout, *req.FechaPago)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Fecha de pago inválida"})
		}
		up.FechaPago = &fechaPago
	}
	if req.Metodo != nil {
		m := model.Metodo(*req.Metodo)
		up.Metodo = &m
	}
	if req.Estado != nil {
		e := model.EstadoPago(*req.Estado)
		up.Estado = &e
	}

	if err := h.Svc.Update(c.Request().Context(), id, up); err != nil {
		switch metodopagosvc.Code(err) {
		case metodopagosvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Pago no encontrado"})
		case metodopagosvc.ErrBadMetodo:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Método de pago inválido"})
		case metodopagosvc.ErrBadEstado:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Estado de pago inválido"})
		case metodopagosvc.ErrBadMonto:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "El monto debe ser mayor que cero"})
		default:
			h.Log.Error("metodopago update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al actualizar el pago"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Pago actualizado exitosamente"})
}

// DELETE /metodopago/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de pago inválido"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if metodopagosvc.Code(err) == metodopagosvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Pago no encontrado"})
		}
		h.Log.Error("metodopago delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al eliminar el pago"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Pago eliminado exitosamente"})
}
