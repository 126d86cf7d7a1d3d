package producto

// Multipart form fields; tarifa_renta travels as text and is parsed into a
// decimal in the handler.
type createReq struct {
	Nombre      string  `form:"nombre" validate:"required"`
	Descripcion *string `form:"descripcion"`
	Estado      string  `form:"estado" validate:"required"`
	TarifaRenta string  `form:"tarifa_renta" validate:"required"`
	Stock       int     `form:"stock" validate:"gte=0"`
	UsuarioID   int64   `form:"usuario_id" validate:"required,gt=0"`
	CategoriaID int64   `form:"categoria_id" validate:"required,gt=0"`
}

type updateReq struct {
	Nombre      *string `form:"nombre"`
	Descripcion *string `form:"descripcion"`
	Estado      *string `form:"estado"`
	TarifaRenta *string `form:"tarifa_renta"`
	Stock       *int    `form:"stock"`
	UsuarioID   *int64  `form:"usuario_id"`
	CategoriaID *int64  `form:"categoria_id"`
}
