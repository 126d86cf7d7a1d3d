package productosvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Aurosonic7/RentaProductoServer/model"
	productorepo "github.com/Aurosonic7/RentaProductoServer/repository/producto"
)

type ErrCode string

const (
	ErrNotFound      ErrCode = "PRODUCTO_NOT_FOUND"
	ErrBadEstado     ErrCode = "ESTADO_INVALIDO"
	ErrNegativeStock ErrCode = "STOCK_NEGATIVO"
	ErrBadTarifa     ErrCode = "TARIFA_INVALIDA"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Update = productorepo.Update

type Service interface {
	Create(ctx context.Context, p *model.Producto) error
	ByID(ctx context.Context, id int64) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, id int64, up Update) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ pr productorepo.Repo }

func New(pr productorepo.Repo) Service { return &service{pr: pr} }

func (s *service) Create(ctx context.Context, p *model.Producto) error {
	if !model.EstadoProductoValido(p.Estado) {
		return makeErr(ErrBadEstado)
	}
	if p.Stock < 0 {
		return makeErr(ErrNegativeStock)
	}
	if p.TarifaRenta.IsNegative() {
		return makeErr(ErrBadTarifa)
	}
	return s.pr.Create(ctx, p)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Producto, error) {
	p, err := s.pr.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]model.Producto, error) {
	return s.pr.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, up Update) error {
	if up.Estado != nil && !model.EstadoProductoValido(*up.Estado) {
		return makeErr(ErrBadEstado)
	}
	if up.Stock != nil && *up.Stock < 0 {
		return makeErr(ErrNegativeStock)
	}
	if up.TarifaRenta != nil && up.TarifaRenta.IsNegative() {
		return makeErr(ErrBadTarifa)
	}
	err := s.pr.Update(ctx, id, up)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.pr.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}
