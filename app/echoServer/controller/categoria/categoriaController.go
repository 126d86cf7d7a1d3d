package categoria

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Aurosonic7/RentaProductoServer/model"
	categoriarepo "github.com/Aurosonic7/RentaProductoServer/repository/categoria"
	categoriasvc "github.com/Aurosonic7/RentaProductoServer/service/categoria"
)

type Controller struct {
	Svc categoriasvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type createReq struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Descripcion *string `json:"descripcion"`
}

type updateReq struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

// POST /categorias
func (h *Controller) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "JSON inválido"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
	}

	cat := &model.Categoria{Nombre: req.Nombre, Descripcion: req.Descripcion}
	if err := h.Svc.Create(c.Request().Context(), cat); err != nil {
		if errors.Is(err, categoriasvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
		}
		h.Log.Error("categoria create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al crear la categoría"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Categoría creada exitosamente", "categoria_id": cat.ID})
}

// GET /categorias
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("categoria list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener categorías"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /categorias/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de categoría inválido"})
	}
	cat, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, categoriasvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Categoría no encontrada"})
		}
		h.Log.Error("categoria detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener la categoría"})
	}
	return c.JSON(http.StatusOK, cat)
}

// PUT /categorias/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de categoría inválido"})
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "JSON inválido"})
	}

	err = h.Svc.Update(c.Request().Context(), id, categoriarepo.Update{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		if errors.Is(err, categoriasvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Categoría no encontrada"})
		}
		h.Log.Error("categoria update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al actualizar la categoría"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Categoría actualizada exitosamente"})
}

// DELETE /categorias/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de categoría inválido"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, categoriasvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Categoría no encontrada"})
		}
		h.Log.Error("categoria delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al eliminar la categoría"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Categoría eliminada exitosamente"})
}
