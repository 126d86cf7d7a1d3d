package categoriasvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Aurosonic7/RentaProductoServer/model"
	categoriarepo "github.com/Aurosonic7/RentaProductoServer/repository/categoria"
)

var (
	ErrNotFound = errors.New("categoria not found")
	ErrBadInput = errors.New("invalid categoria payload")
)

type Service interface {
	Create(ctx context.Context, c *model.Categoria) error
	ByID(ctx context.Context, id int64) (*model.Categoria, error)
	List(ctx context.Context) ([]model.Categoria, error)
	Update(ctx context.Context, id int64, up categoriarepo.Update) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ cr categoriarepo.Repo }

func New(cr categoriarepo.Repo) Service { return &service{cr: cr} }

func (s *service) Create(ctx context.Context, c *model.Categoria) error {
	if c.Nombre == "" {
		return ErrBadInput
	}
	return s.cr.Create(ctx, c)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Categoria, error) {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]model.Categoria, error) {
	return s.cr.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, up categoriarepo.Update) error {
	err := s.cr.Update(ctx, id, up)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.cr.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
