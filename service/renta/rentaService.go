package rentasvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

type ErrCode string

const (
	ErrNotFound       ErrCode = "RENTA_NOT_FOUND"
	ErrUsuarioMissing ErrCode = "USUARIO_NOT_FOUND"
	ErrFechaFin       ErrCode = "FECHA_FIN_INVALIDA"
	ErrFechaDev       ErrCode = "FECHA_DEVOLUCION_INVALIDA"
	ErrBadTotal       ErrCode = "TOTAL_INVALIDO"
	ErrBadEstado      ErrCode = "ESTADO_INVALIDO"
	ErrNotFinalizable ErrCode = "ESTADO_NO_FINALIZABLE"
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

// Repo is the slice of the renta repository this service needs.
type Repo interface {
	Create(ctx context.Context, re *model.Renta) error
	ByID(ctx context.Context, id int64) (*model.Renta, error)
	List(ctx context.Context) ([]model.Renta, error)
	UpdateEstado(ctx context.Context, id int64, estado model.EstadoRenta) error
	Delete(ctx context.Context, id int64) error

	ExistsUsuario(ctx context.Context, usuarioID int64) (bool, error)

	EstadoForUpdate(ctx context.Context, tx *sql.Tx, id int64) (model.EstadoRenta, error)
	SetEstado(ctx context.Context, tx *sql.Tx, id int64, estado model.EstadoRenta) error
	RestoreStock(ctx context.Context, tx *sql.Tx, rentaID int64) error
}

type Service interface {
	// Create validates the usuario reference, the strict date ordering
	// (inicio < fin < devolucion) and the positive total before touching
	// storage.
	Create(ctx context.Context, re *model.Renta) error
	ByID(ctx context.Context, id int64) (*model.Renta, error)
	List(ctx context.Context) ([]model.Renta, error)
	// UpdateEstado checks membership in the recognized status set only;
	// transition edges are not restricted.
	UpdateEstado(ctx context.Context, id int64, estado model.EstadoRenta) error
	Delete(ctx context.Context, id int64) error
	// Finalizar moves the renta to finalizada and returns every reserved
	// quantity to product stock, atomically.
	Finalizar(ctx context.Context, id int64) error
}

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

func (s *service) Create(ctx context.Context, re *model.Renta) error {
	if !re.FechaInicio.Before(re.FechaFin) {
		return makeErr(ErrFechaFin)
	}
	if !re.FechaDevolucion.After(re.FechaFin) {
		return makeErr(ErrFechaDev)
	}
	if !re.Total.IsPositive() {
		return makeErr(ErrBadTotal)
	}
	if re.Estado == "" {
		re.Estado = model.RentaPendiente
	}
	if !model.EstadoRentaValido(re.Estado) {
		return makeErr(ErrBadEstado)
	}

	ok, err := s.r.ExistsUsuario(ctx, re.UsuarioID)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrUsuarioMissing)
	}
	return s.r.Create(ctx, re)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Renta, error) {
	re, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return re, nil
}

func (s *service) List(ctx context.Context) ([]model.Renta, error) {
	return s.r.List(ctx)
}

func (s *service) UpdateEstado(ctx context.Context, id int64, estado model.EstadoRenta) error {
	if !model.EstadoRentaValido(estado) {
		return makeErr(ErrBadEstado)
	}
	err := s.r.UpdateEstado(ctx, id, estado)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func (s *service) Finalizar(ctx context.Context, id int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	estado, err := s.r.EstadoForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if estado == model.RentaFinalizada || estado == model.RentaCancelada {
		return makeErr(ErrNotFinalizable)
	}

	if err = s.r.RestoreStock(ctx, tx, id); err != nil {
		return err
	}
	if err = s.r.SetEstado(ctx, tx, id, model.RentaFinalizada); err != nil {
		return err
	}
	return tx.Commit()
}
