package model

import "time"

type Usuario struct {
	ID           int64     `json:"usuario_id"`
	AdminID      *int64    `json:"admin_id,omitempty"`
	Nombre       string    `json:"nombre"`
	ApellidoPat  string    `json:"apellido_pat"`
	ApellidoMat  *string   `json:"apellido_mat,omitempty"`
	Telefono     *string   `json:"telefono,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterReq is the public registration payload.
type RegisterReq struct {
	Nombre      string  `json:"nombre" validate:"required"`
	ApellidoPat string  `json:"apellido_pat" validate:"required"`
	ApellidoMat *string `json:"apellido_mat,omitempty"`
	Telefono    *string `json:"telefono,omitempty"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
