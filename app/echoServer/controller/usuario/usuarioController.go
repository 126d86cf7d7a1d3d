package usuario

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/Aurosonic7/RentaProductoServer/app/echoServer/jwtx"
	"github.com/Aurosonic7/RentaProductoServer/app/echoServer/upload"
	"github.com/Aurosonic7/RentaProductoServer/model"
	dropboxrepo "github.com/Aurosonic7/RentaProductoServer/repository/dropbox"
	usuariosvc "github.com/Aurosonic7/RentaProductoServer/service/usuario"
)

type Controller struct {
	Svc   usuariosvc.Service
	Files dropboxrepo.Repo
	V     *validator.Validate
	Log   *slog.Logger
}

type createReq struct {
	AdminID     *int64  `form:"admin_id"`
	Nombre      string  `form:"nombre" validate:"required"`
	ApellidoPat string  `form:"apellido_pat" validate:"required"`
	ApellidoMat *string `form:"apellido_mat"`
	Telefono    *string `form:"telefono"`
	Email       string  `form:"email" validate:"required,email"`
	Password    string  `form:"password" validate:"required,min=6"`
}

type updateReq struct {
	AdminID     *int64  `form:"admin_id"`
	Nombre      *string `form:"nombre"`
	ApellidoPat *string `form:"apellido_pat"`
	ApellidoMat *string `form:"apellido_mat"`
	Telefono    *string `form:"telefono"`
	Email       *string `form:"email"`
	Password    *string `form:"password"`
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// POST /usuarios (multipart, avatar opcional)
func (h *Controller) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Formulario inválido"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "La validación de los datos ha fallado"})
	}

	u := &model.Usuario{
		AdminID:     req.AdminID,
		Nombre:      req.Nombre,
		ApellidoPat: req.ApellidoPat,
		ApellidoMat: req.ApellidoMat,
		Telefono:    req.Telefono,
		Email:       req.Email,
	}

	var avatarPath string
	if data, ext, ferr := upload.ImageFromForm(c, "avatar"); ferr == nil {
		path, uerr := h.Files.Upload(c.Request().Context(), "/avatars/"+upload.FileName(req.Nombre, ext), data)
		if uerr != nil {
			h.Log.Error("avatar upload", "err", uerr)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al subir el avatar"})
		}
		avatarPath = path
		u.Avatar = &avatarPath
	} else if !errors.Is(ferr, upload.ErrNoFile) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": ferr.Error()})
	}

	if err := h.Svc.Create(c.Request().Context(), u, req.Password); err != nil {
		if avatarPath != "" {
			if derr := h.Files.Delete(c.Request().Context(), avatarPath); derr != nil {
				h.Log.Warn("no se pudo eliminar el avatar huérfano", "path", avatarPath, "err", derr)
			}
		}
		if isUniqueViolation(err) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "El correo electrónico ya está registrado"})
		}
		h.Log.Error("usuario create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al crear el usuario"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Usuario creado exitosamente", "usuario_id": u.ID})
}

// GET /perfil — identity taken from the token, not from the URL.
func (h *Controller) Perfil(c echo.Context) error {
	id, err := jwtx.UsuarioIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"auth": false, "message": "Failed to authenticate token."})
	}
	u, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usuariosvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
		}
		h.Log.Error("perfil", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener el perfil"})
	}
	h.resolveAvatar(c, u)
	return c.JSON(http.StatusOK, echo.Map{"usuario": u})
}

// GET /usuarios
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("usuario list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener los usuarios"})
	}
	for i := range rows {
		h.resolveAvatar(c, &rows[i])
	}
	return c.JSON(http.StatusOK, echo.Map{"usuarios": rows})
}

// GET /usuarios/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de usuario inválido"})
	}
	u, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usuariosvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
		}
		h.Log.Error("usuario detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener el usuario"})
	}
	h.resolveAvatar(c, u)
	return c.JSON(http.StatusOK, echo.Map{"usuario": u})
}

// PUT /usuarios/:id (multipart, avatar opcional; campos ausentes se conservan)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de usuario inválido"})
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Formulario inválido"})
	}

	prev, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usuariosvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
		}
		h.Log.Error("usuario fetch", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener el usuario"})
	}

	up := usuariosvc.Update{
		AdminID:     req.AdminID,
		Nombre:      req.Nombre,
		ApellidoPat: req.ApellidoPat,
		ApellidoMat: req.ApellidoMat,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Password:    req.Password,
	}

	var nuevoAvatar string
	if data, ext, ferr := upload.ImageFromForm(c, "avatar"); ferr == nil {
		base := prev.Nombre
		if req.Nombre != nil {
			base = *req.Nombre
		}
		path, uerr := h.Files.Upload(c.Request().Context(), "/avatars/"+upload.FileName(base, ext), data)
		if uerr != nil {
			h.Log.Error("avatar upload", "err", uerr)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al subir el avatar"})
		}
		nuevoAvatar = path
		up.Avatar = &nuevoAvatar
	} else if !errors.Is(ferr, upload.ErrNoFile) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": ferr.Error()})
	}

	if err := h.Svc.Update(c.Request().Context(), id, up); err != nil {
		// The row still points at the old avatar; clean the fresh upload,
		// best effort.
		if nuevoAvatar != "" {
			if derr := h.Files.Delete(c.Request().Context(), nuevoAvatar); derr != nil {
				h.Log.Warn("no se pudo eliminar el avatar huérfano", "path", nuevoAvatar, "err", derr)
			}
		}
		switch {
		case errors.Is(err, usuariosvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
		case isUniqueViolation(err):
			return c.JSON(http.StatusConflict, echo.Map{"message": "El correo electrónico ya está registrado"})
		default:
			h.Log.Error("usuario update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al actualizar el usuario"})
		}
	}
	// Update landed; now the previous file is the stale one.
	if nuevoAvatar != "" && prev.Avatar != nil {
		if derr := h.Files.Delete(c.Request().Context(), *prev.Avatar); derr != nil {
			h.Log.Warn("no se pudo eliminar el avatar anterior", "path", *prev.Avatar, "err", derr)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Usuario actualizado exitosamente"})
}

// DELETE /usuarios/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ID de usuario inválido"})
	}

	u, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usuariosvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
		}
		h.Log.Error("usuario fetch", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al obtener el usuario"})
	}

	if u.Avatar != nil {
		if derr := h.Files.Delete(c.Request().Context(), *u.Avatar); derr != nil {
			h.Log.Warn("no se pudo eliminar el avatar", "path", *u.Avatar, "err", derr)
		}
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, usuariosvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Usuario no encontrado"})
		}
		h.Log.Error("usuario delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error al eliminar el usuario"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Usuario eliminado exitosamente"})
}

func (h *Controller) resolveAvatar(c echo.Context, u *model.Usuario) {
	if u.Avatar == nil {
		return
	}
	link, err := h.Files.TemporaryLink(c.Request().Context(), *u.Avatar)
	if err != nil {
		h.Log.Warn("no se pudo resolver el avatar", "path", *u.Avatar, "err", err)
		return
	}
	u.Avatar = &link
}
