package producto

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Aurosonic7/RentaProductoServer/app/echoServer/upload"
	"github.com/Aurosonic7/RentaProductoServer/model"
	dropboxrepo "github.com/Aurosonic7/RentaProductoServer/repository/dropbox"
	productosvc "github.com/Aurosonic7/RentaProductoServer/service/producto"
)

type Controller struct {
	Svc   productosvc.Service
	Files dropboxrepo.Repo
	V     *validator.Validate
	Log   *slog.Logger
}

// POST /productos (multipart, imagen obligatoria)
func (h *Controller) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Formulario inválido"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
	}
	tarifa, err := decimal.NewFromString(req.TarifaRenta)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Tarifa de renta inválida"})
	}

	data, ext, err := upload.ImageFromForm(c, "imagen")
	if err != nil {
		if errors.Is(err, upload.ErrNoFile) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "La imagen es obligatoria"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	path, err := h.Files.Upload(c.Request().Context(), "/productos/"+upload.FileName(req.Nombre, ext), data)
	if err != nil {
		h.Log.Error("imagen upload", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al subir la imagen"})
	}

	p := &model.Producto{
		Nombre:           req.Nombre,
		Descripcion:      req.Descripcion,
		Estado:           model.EstadoProducto(req.Estado),
		TarifaRenta:      tarifa,
		FechaAdquisicion: time.Now().UTC(),
		Imagen:           &path,
		Stock:            req.Stock,
		UsuarioID:        req.UsuarioID,
		CategoriaID:      req.CategoriaID,
	}
	if err := h.Svc.Create(c.Request().Context(), p); err != nil {
		// The row never landed; drop the orphaned image, best effort.
		if derr := h.Files.Delete(c.Request().Context(), path); derr != nil {
			h.Log.Warn("no se pudo eliminar la imagen huérfana", "path", path, "err", derr)
		}
		switch productosvc.Code(err) {
		case productosvc.ErrBadEstado:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Estado del producto inválido"})
		case productosvc.ErrNegativeStock:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "El stock no puede ser negativo"})
		case productosvc.ErrBadTarifa:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Tarifa de renta inválida"})
		default:
			h.Log.Error("producto create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al crear el producto"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Producto creado exitosamente", "producto_id": p.ID})
}

// GET /productos
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("producto list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener los productos"})
	}
	for i := range rows {
		h.resolveImagen(c, &rows[i])
	}
	return c.JSON(http.StatusOK, echo.Map{"productos": rows})
}

// GET /productos/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de producto inválido"})
	}
	p, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if productosvc.Code(err) == productosvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Producto no encontrado"})
		}
		h.Log.Error("producto detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener el producto"})
	}
	h.resolveImagen(c, p)
	return c.JSON(http.StatusOK, echo.Map{"producto": p})
}

// PUT /productos/:id (multipart, imagen opcional; campos ausentes se conservan)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de producto inválido"})
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Formulario inválido"})
	}

	prev, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if productosvc.Code(err) == productosvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Producto no encontrado"})
		}
		h.Log.Error("producto fetch", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener el producto"})
	}

	up := productosvc.Update{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Stock:       req.Stock,
		UsuarioID:   req.UsuarioID,
		CategoriaID: req.CategoriaID,
	}
	if req.Estado != nil {
		estado := model.EstadoProducto(*req.Estado)
		up.Estado = &estado
	}
	if req.TarifaRenta != nil {
		tarifa, err := decimal.NewFromString(*req.TarifaRenta)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Tarifa de renta inválida"})
		}
		up.TarifaRenta = &tarifa
	}

	var nuevaImagen string
	if data, ext, ferr := upload.ImageFromForm(c, "imagen"); ferr == nil {
		base := prev.Nombre
		if req.Nombre != nil {
			base = *req.Nombre
		}
		path, uerr := h.Files.Upload(c.Request().Context(), "/productos/"+upload.FileName(base, ext), data)
		if uerr != nil {
			h.Log.Error("imagen upload", "err", uerr)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al subir la imagen"})
		}
		nuevaImagen = path
		up.Imagen = &nuevaImagen
	} else if !errors.Is(ferr, upload.ErrNoFile) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": ferr.Error()})
	}

	if err := h.Svc.Update(c.Request().Context(), id, up); err != nil {
		// The row still points at the old image; the fresh upload is the
		// orphan to clean, best effort.
		if nuevaImagen != "" {
			if derr := h.Files.Delete(c.Request().Context(), nuevaImagen); derr != nil {
				h.Log.Warn("no se pudo eliminar la imagen huérfana", "path", nuevaImagen, "err", derr)
			}
		}
		switch productosvc.Code(err) {
		case productosvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Producto no encontrado"})
		case productosvc.ErrBadEstado:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Estado del producto inválido"})
		case productosvc.ErrNegativeStock:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "El stock no puede ser negativo"})
		case productosvc.ErrBadTarifa:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Tarifa de renta inválida"})
		default:
			h.Log.Error("producto update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error desconocido al actualizar el producto"})
		}
	}
	// Update landed; now the previous file is the stale one.
	if nuevaImagen != "" && prev.Imagen != nil {
		if derr := h.Files.Delete(c.Request().Context(), *prev.Imagen); derr != nil {
			h.Log.Warn("no se pudo eliminar la imagen anterior", "path", *prev.Imagen, "err", derr)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Producto actualizado exitosamente"})
}

// DELETE /productos/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de producto inválido"})
	}

	p, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if productosvc.Code(err) == productosvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Producto no encontrado"})
		}
		h.Log.Error("producto fetch", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener el producto"})
	}

	// Stale image first, best effort; the row delete is the operation that
	// may fail the request.
	if p.Imagen != nil {
		if derr := h.Files.Delete(c.Request().Context(), *p.Imagen); derr != nil {
			h.Log.Warn("no se pudo eliminar la imagen", "path", *p.Imagen, "err", derr)
		}
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if productosvc.Code(err) == productosvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Producto no encontrado"})
		}
		h.Log.Error("producto delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al eliminar el producto"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Producto eliminado exitosamente"})
}

func (h *Controller) resolveImagen(c echo.Context, p *model.Producto) {
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
