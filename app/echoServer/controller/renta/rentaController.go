package renta

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Aurosonic7/RentaProductoServer/model"
	rentasvc "github.com/Aurosonic7/RentaProductoServer/service/renta"
)

type Controller struct {
	Svc rentasvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

const dateLayout = "2006-01-02"

// Dates travel as plain YYYY-MM-DD strings.
type createReq struct {
	UsuarioID       int64           `json:"usuario_id" validate:"required,gt=0"`
	FechaInicio     string          `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	FechaFin        string          `json:"fecha_fin" validate:"required,datetime=2006-01-02"`
	FechaDevolucion string          `json:"fecha_devolucion" validate:"required,datetime=2006-01-02"`
	Estado          string          `json:"estado"`
	Total           decimal.Decimal `json:"total" validate:"required"`
}

type estadoReq struct {
	Estado string `json:"estado" validate:"required"`
}

// POST /rentas
func (h *Controller) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "JSON inválido"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
	}

	inicio, _ := time.Parse(dateLayout, req.FechaInicio)
	fin, _ := time.Parse(dateLayout, req.FechaFin)
	devolucion, _ := time.Parse(dateLayout, req.FechaDevolucion)

	re := &model.Renta{
		UsuarioID:       req.UsuarioID,
		FechaInicio:     inicio,
		FechaFin:        fin,
		FechaDevolucion: devolucion,
		Estado:          model.EstadoRenta(req.Estado),
		Total:           req.Total,
	}
	if err := h.Svc.Create(c.Request().Context(), re); err != nil {
		switch rentasvc.Code(err) {
		case rentasvc.ErrUsuarioMissing:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
		case rentasvc.ErrFechaFin:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "La fecha de fin debe ser posterior a la fecha de inicio"})
		case rentasvc.ErrFechaDev:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "La fecha de devolución debe ser posterior a la fecha de fin"})
		case rentasvc.ErrBadTotal:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "El total debe ser mayor que cero"})
		case rentasvc.ErrBadEstado:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Estado de renta inválido"})
		default:
			h.Log.Error("renta create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al crear la renta"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Renta creada exitosamente", "renta_id": re.ID})
}

// GET /rentas
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("renta list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener las rentas"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rentas": rows})
}

// GET /rentas/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de renta inválido"})
	}
	re, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if rentasvc.Code(err) == rentasvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Renta no encontrada"})
		}
		h.Log.Error("renta detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener la renta"})
	}
	return c.JSON(http.StatusOK, echo.Map{"renta": re})
}

// PUT /rentas/:id  (solo estado)
func (h *Controller) UpdateEstado(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de renta inválido"})
	}
	var req estadoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "JSON inválido"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
	}

	if err := h.Svc.UpdateEstado(c.Request().Context(), id, model.EstadoRenta(req.Estado)); err != nil {
		switch rentasvc.Code(err) {
		case rentasvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Renta no encontrada"})
		case rentasvc.ErrBadEstado:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Estado de renta inválido"})
		default:
			h.Log.Error("renta update estado", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al actualizar la renta"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Renta actualizada exitosamente"})
}

// POST /rentas/:id/finalizar
func (h *Controller) Finalizar(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de renta inválido"})
	}
	if err := h.Svc.Finalizar(c.Request().Context(), id); err != nil {
		switch rentasvc.Code(err) {
		case rentasvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Renta no encontrada"})
		case rentasvc.ErrNotFinalizable:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "La renta ya fue finalizada o cancelada"})
		default:
			h.Log.Error("renta finalizar", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al finalizar la renta"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Renta finalizada exitosamente"})
}

// DELETE /rentas/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de renta inválido"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if rentasvc.Code(err) == rentasvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Renta no encontrada"})
		}
		h.Log.Error("renta delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al eliminar la renta"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Renta eliminada exitosamente"})
}
