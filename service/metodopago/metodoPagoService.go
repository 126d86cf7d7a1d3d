package metodopagosvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Aurosonic7/RentaProductoServer/model"
	metodopagorepo "github.com/Aurosonic7/RentaProductoServer/repository/metodopago"
)

type ErrCode string

const (
	ErrNotFound     ErrCode = "METODOPAGO_NOT_FOUND"
	ErrRentaMissing ErrCode = "RENTA_NOT_FOUND"
	ErrBadMetodo    ErrCode = "METODO_INVALIDO"
	ErrBadEstado    ErrCode = "ESTADO_PAGO_INVALIDO"
	ErrBadMonto     ErrCode = "MONTO_INVALIDO"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Update = metodopagorepo.Update

type Service interface {
	Create(ctx context.Context, mp *model.MetodoPago) error
	ByID(ctx context.Context, id int64) (*model.MetodoPagoDetalle, error)
	List(ctx context.Context) ([]model.MetodoPago, error)
	Update(ctx context.Context, id int64, up Update) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ mr metodopagorepo.Repo }

func New(mr metodopagorepo.Repo) Service { return &service{mr: mr} }

func (s *service) Create(ctx context.Context, mp *model.MetodoPago) error {
	if !model.MetodoValido(mp.Metodo) {
		return makeErr(ErrBadMetodo)
	}
	if !model.EstadoPagoValido(mp.Estado) {
		return makeErr(ErrBadEstado)
	}
	if !mp.Monto.IsPositive() {
		return makeErr(ErrBadMonto)
	}
	// Amounts are a 2-decimal contract.
	mp.Monto = mp.Monto.Round(2)

	ok, err := s.mr.ExistsRenta(ctx, mp.RentaID)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrRentaMissing)
	}
	return s.mr.Create(ctx, mp)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.MetodoPagoDetalle, error) {
	d, err := s.mr.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return d, nil
}

func (s *service) List(ctx context.Context) ([]model.MetodoPago, error) {
	return s.mr.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, up Update) error {
	if up.Metodo != nil && !model.MetodoValido(*up.Metodo) {
		return makeErr(ErrBadMetodo)
	}
	if up.Estado != nil && !model.EstadoPagoValido(*up.Estado) {
		return makeErr(ErrBadEstado)
	}
	if up.Monto != nil {
		if !up.Monto.IsPositive() {
			return makeErr(ErrBadMonto)
		}
		rounded := up.Monto.Round(2)
		up.Monto = &rounded
	}
	err := s.mr.Update(ctx, id, up)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.mr.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}
