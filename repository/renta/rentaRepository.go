package rentarepo

import (
	"context"
	"database/sql"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

type Repo interface {
	Create(ctx context.Context, re *model.Renta) error
	ByID(ctx context.Context, id int64) (*model.Renta, error)
	List(ctx context.Context) ([]model.Renta, error)
	UpdateEstado(ctx context.Context, id int64, estado model.EstadoRenta) error
	Delete(ctx context.Context, id int64) error

	ExistsUsuario(ctx context.Context, usuarioID int64) (bool, error)

	// Finalize plumbing; callers own the transaction.
	EstadoForUpdate(ctx context.Context, tx *sql.Tx, id int64) (model.EstadoRenta, error)
	SetEstado(ctx context.Context, tx *sql.Tx, id int64, estado model.EstadoRenta) error
	RestoreStock(ctx context.Context, tx *sql.Tx, rentaID int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, re *model.Renta) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO rentas (usuario_id, fecha_inicio, fecha_fin, fecha_devolucion, estado, total)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING renta_id`,
		re.UsuarioID, re.FechaInicio, re.FechaFin, re.FechaDevolucion, re.Estado, re.Total,
	).Scan(&re.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Renta, error) {
	re := &model.Renta{}
	err := r.db.QueryRowContext(ctx, `
		SELECT renta_id, usuario_id, fecha_inicio, fecha_fin, fecha_devolucion, estado, total
		FROM rentas
		WHERE renta_id = $1`,
		id,
	).Scan(&re.ID, &re.UsuarioID, &re.FechaInicio, &re.FechaFin, &re.FechaDevolucion, &re.Estado, &re.Total)
	if err != nil {
		return nil, err
	}
	return re, nil
}

func (r *repo) List(ctx context.Context) ([]model.Renta, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT renta_id, usuario_id, fecha_inicio, fecha_fin, fecha_devolucion, estado, total
		FROM rentas
		ORDER BY renta_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Renta
	for rows.Next() {
		var re model.Renta
		if err := rows.Scan(&re.ID, &re.UsuarioID, &re.FechaInicio, &re.FechaFin, &re.FechaDevolucion, &re.Estado, &re.Total); err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, rows.Err()
}

func (r *repo) UpdateEstado(ctx context.Context, id int64, estado model.EstadoRenta) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rentas SET estado = $2 WHERE renta_id = $1`, id, estado)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentas WHERE renta_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ExistsUsuario(ctx context.Context, usuarioID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM usuarios WHERE usuario_id = $1)`, usuarioID,
	).Scan(&ok)
	return ok, err
}

func (r *repo) EstadoForUpdate(ctx context.Context, tx *sql.Tx, id int64) (model.EstadoRenta, error) {
	var estado model.EstadoRenta
	err := tx.QueryRowContext(ctx,
		`SELECT estado FROM rentas WHERE renta_id = $1 FOR UPDATE`, id,
	).Scan(&estado)
	return estado, err
}

func (r *repo) SetEstado(ctx context.Context, tx *sql.Tx, id int64, estado model.EstadoRenta) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE rentas SET estado = $2 WHERE renta_id = $1`, id, estado)
	return err
}

// RestoreStock returns every reserved quantity of the renta back to product
// stock. Row locks on productos are taken by the UPDATE itself.
func (r *repo) RestoreStock(ctx context.Context, tx *sql.Tx, rentaID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE productos p
		SET stock = p.stock + pr.cantidad
		FROM productos_rentas pr
		WHERE pr.renta_id = $1
		  AND pr.producto_id = p.producto_id`,
		rentaID)
	return err
}
