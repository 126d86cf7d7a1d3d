package metodopagorepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

type Update struct {
	Monto     *decimal.Decimal
	FechaPago *time.Time
	Metodo    *model.Metodo
	Estado    *model.EstadoPago
}

type Repo interface {
	Create(ctx context.Context, mp *model.MetodoPago) error
	ByID(ctx context.Context, id int64) (*model.MetodoPagoDetalle, error)
	List(ctx context.Context) ([]model.MetodoPago, error)
	Update(ctx context.Context, id int64, up Update) error
	Delete(ctx context.Context, id int64) error
	ExistsRenta(ctx context.Context, rentaID int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, mp *model.MetodoPago) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO metodos_pago (renta_id, monto, fecha_pago, metodo, estado)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING metodopago_id`,
		mp.RentaID, mp.Monto, mp.FechaPago, mp.Metodo, mp.Estado,
	).Scan(&mp.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.MetodoPagoDetalle, error) {
	d := &model.MetodoPagoDetalle{}
	err := r.db.QueryRowContext(ctx, `
		SELECT mp.metodopago_id, mp.renta_id, mp.monto, mp.fecha_pago, mp.metodo, mp.estado,
		       r.estado, r.total,
		       u.usuario_id, u.nombre || ' ' || u.apellido_pat, u.email
		FROM metodos_pago mp
		JOIN rentas r ON r.renta_id = mp.renta_id
		JOIN usuarios u ON u.usuario_id = r.usuario_id
		WHERE mp.metodopago_id = $1`,
		id,
	).Scan(&d.ID, &d.RentaID, &d.Monto, &d.FechaPago, &d.Metodo, &d.Estado,
		&d.EstadoRenta, &d.TotalRenta,
		&d.UsuarioID, &d.NombreUsuario, &d.EmailUsuario)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *repo) List(ctx context.Context) ([]model.MetodoPago, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT metodopago_id, renta_id, monto, fecha_pago, metodo, estado
		FROM metodos_pago
		ORDER BY metodopago_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MetodoPago
	for rows.Next() {
		var mp model.MetodoPago
		if err := rows.Scan(&mp.ID, &mp.RentaID, &mp.Monto, &mp.FechaPago, &mp.Metodo, &mp.Estado); err != nil {
			return nil, err
		}
		out = append(out, mp)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, id int64, up Update) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE metodos_pago SET
			monto      = COALESCE($2, monto),
			fecha_pago = COALESCE($3, fecha_pago),
			metodo     = COALESCE($4, metodo),
			estado     = COALESCE($5, estado)
		WHERE metodopago_id = $1`,
		id, up.Monto, up.FechaPago, up.Metodo, up.Estado,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM metodos_pago WHERE metodopago_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ExistsRenta(ctx context.Context, rentaID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM rentas WHERE renta_id = $1)`, rentaID,
	).Scan(&ok)
	return ok, err
}
