package model

type Categoria struct {
	ID          int64   `json:"categoria_id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
}
