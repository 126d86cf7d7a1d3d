package usuariorepo

import (
	"context"
	"database/sql"

	"github.com/Aurosonic7/RentaProductoServer/model"
)

// Update carries a partial replacement: nil fields keep their stored value.
type Update struct {
	AdminID      *int64
	Nombre       *string
	ApellidoPat  *string
	ApellidoMat  *string
	Telefono     *string
	Email        *string
	PasswordHash *string
	Avatar       *string
}

type Repo interface {
	Create(ctx context.Context, u *model.Usuario) error
	ByID(ctx context.Context, id int64) (*model.Usuario, error)
	ByEmail(ctx context.Context, email string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, id int64, up Update) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO usuarios (admin_id, nombre, apellido_pat, apellido_mat, telefono, email, password_hash, avatar)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING usuario_id, created_at`,
		u.AdminID, u.Nombre, u.ApellidoPat, u.ApellidoMat, u.Telefono, u.Email, u.PasswordHash, u.Avatar,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Usuario, error) {
	u := &model.Usuario{}
	err := r.db.QueryRowContext(ctx, `
		SELECT usuario_id, admin_id, nombre, apellido_pat, apellido_mat, telefono, email, password_hash, avatar, created_at
		FROM usuarios
		WHERE usuario_id = $1`,
		id,
	).Scan(&u.ID, &u.AdminID, &u.Nombre, &u.ApellidoPat, &u.ApellidoMat, &u.Telefono, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	u := &model.Usuario{}
	err := r.db.QueryRowContext(ctx, `
		SELECT usuario_id, admin_id, nombre, apellido_pat, apellido_mat, telefono, email, password_hash, avatar, created_at
		FROM usuarios
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.AdminID, &u.Nombre, &u.ApellidoPat, &u.ApellidoMat, &u.Telefono, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) List(ctx context.Context) ([]model.Usuario, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT usuario_id, admin_id, nombre, apellido_pat, apellido_mat, telefono, email, password_hash, avatar, created_at
		FROM usuarios
		ORDER BY usuario_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Usuario
	for rows.Next() {
		var u model.Usuario
		if err := rows.Scan(&u.ID, &u.AdminID, &u.Nombre, &u.ApellidoPat, &u.ApellidoMat, &u.Telefono, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, id int64, up Update) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE usuarios SET
			admin_id      = COALESCE($2, admin_id),
			nombre        = COALESCE($3, nombre),
			apellido_pat  = COALESCE($4, apellido_pat),
			apellido_mat  = COALESCE($5, apellido_mat),
			telefono      = COALESCE($6, telefono),
			email         = COALESCE($7, email),
			password_hash = COALESCE($8, password_hash),
			avatar        = COALESCE($9, avatar)
		WHERE usuario_id = $1`,
		id, up.AdminID, up.Nombre, up.ApellidoPat, up.ApellidoMat, up.Telefono, up.Email, up.PasswordHash, up.Avatar,
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE usuario_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
