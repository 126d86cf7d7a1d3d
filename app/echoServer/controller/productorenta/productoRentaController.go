package productorenta

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Aurosonic7/RentaProductoServer/model"
	dropboxrepo "github.com/Aurosonic7/RentaProductoServer/repository/dropbox"
	productorentasvc "github.com/Aurosonic7/RentaProductoServer/service/productorenta"
)

type Controller struct {
	Svc   productorentasvc.Service
	Files dropboxrepo.Repo
	V     *validator.Validate
	Log   *slog.Logger
}

type agregarReq struct {
	RentaID    int64 `json:"renta_id" validate:"required,gt=0"`
	ProductoID int64 `json:"producto_id" validate:"required,gt=0"`
	Cantidad   int   `json:"cantidad" validate:"required,gt=0"`
}

// POST /productoxrenta
func (h *Controller) Agregar(c echo.Context) error {
	var req agregarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "JSON inválido"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
	}

	id, err := h.Svc.Agregar(c.Request().Context(), req.RentaID, req.ProductoID, req.Cantidad)
	if err != nil {
		switch productorentasvc.Code(err) {
		case productorentasvc.ErrRentaMissing:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Renta no encontrada"})
		case productorentasvc.ErrProductoMissing:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Producto no encontrado"})
		case productorentasvc.ErrNoDisponible:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "El producto no está disponible"})
		case productorentasvc.ErrBadCantidad:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "La cantidad debe ser mayor que cero"})
		case productorentasvc.ErrStock:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Stock insuficiente"})
		case productorentasvc.ErrYaAsociado:
			return c.JSON(http.StatusConflict, echo.Map{"message": "El producto ya está asociado a la renta"})
		default:
			h.Log.Error("productorenta agregar", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al agregar el producto a la renta"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Producto agregado a la renta exitosamente", "renta_producto_id": id})
}

// DELETE /productoxrenta/:renta_id/:producto_id
func (h *Controller) Remover(c echo.Context) error {
	rentaID, err := strconv.ParseInt(c.Param("renta_id"), 10, 64)
	if err != nil || rentaID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de renta inválido"})
	}
	productoID, err := strconv.ParseInt(c.Param("producto_id"), 10, 64)
	if err != nil || productoID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de producto inválido"})
	}

	if err := h.Svc.Remover(c.Request().Context(), rentaID, productoID); err != nil {
		if productorentasvc.Code(err) == productorentasvc.ErrNoAsociado {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "El producto no está asociado a la renta"})
		}
		h.Log.Error("productorenta remover", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al quitar el producto de la renta"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Producto removido de la renta exitosamente"})
}

// GET /productoxrenta/:usuario_id
func (h *Controller) PorUsuario(c echo.Context) error {
	usuarioID, err := strconv.ParseInt(c.Param("usuario_id"), 10, 64)
	if err != nil || usuarioID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de usuario inválido"})
	}

	rows, err := h.Svc.PorUsuario(c.Request().Context(), usuarioID)
	if err != nil {
		h.Log.Error("productorenta por usuario", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener los productos rentados"})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "El usuario no tiene productos rentados"})
	}
	for i := range rows {
		h.resolveImagen(c, &rows[i])
	}
	return c.JSON(http.StatusOK, echo.Map{"productos": rows})
}

func (h *Controller) resolveImagen(c echo.Context, p *model.ProductoRentado) {
	if p.Imagen == nil {
		return
	}
	link, err := h.Files.TemporaryLink(c.Request().Context(), *p.Imagen)
	if err != nil {
		h.Log.Warn("no se pudo resolver la imagen", "path", *p.Imagen, "err", err)
		return
	}
	p.Imagen = &link
}
