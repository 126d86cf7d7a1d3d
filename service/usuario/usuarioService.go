package usuariosvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Aurosonic7/RentaProductoServer/model"
	usuariorepo "github.com/Aurosonic7/RentaProductoServer/repository/usuario"
	"github.com/Aurosonic7/RentaProductoServer/util/hash"
)

var ErrNotFound = errors.New("usuario not found")

// Update mirrors the repository's partial-replacement shape but takes the
// plain password; hashing happens here.
type Update struct {
	AdminID     *int64
	Nombre      *string
	ApellidoPat *string
	ApellidoMat *string
	Telefono    *string
	Email       *string
	Password    *string
	Avatar      *string
}

type Service interface {
	Create(ctx context.Context, u *model.Usuario, password string) error
	ByID(ctx context.Context, id int64) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, id int64, up Update) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ ur usuariorepo.Repo }

func New(ur usuariorepo.Repo) Service { return &service{ur: ur} }

func (s *service) Create(ctx context.Context, u *model.Usuario, password string) error {
	hashed, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	return s.ur.Create(ctx, u)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Usuario, error) {
	u, err := s.ur.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]model.Usuario, error) {
	return s.ur.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, up Update) error {
	var passwordHash *string
	if up.Password != nil && *up.Password != "" {
		hashed, err := hash.HashPassword(*up.Password)
		if err != nil {
			return err
		}
		passwordHash = &hashed
	}
	err := s.ur.Update(ctx, id, usuariorepo.Update{
		AdminID:      up.AdminID,
		Nombre:       up.Nombre,
		ApellidoPat:  up.ApellidoPat,
		ApellidoMat:  up.ApellidoMat,
		Telefono:     up.Telefono,
		Email:        up.Email,
		PasswordHash: passwordHash,
		Avatar:       up.Avatar,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.ur.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
