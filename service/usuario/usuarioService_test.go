package usuariosvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aurosonic7/RentaProductoServer/model"
	usuariorepo "github.com/Aurosonic7/RentaProductoServer/repository/usuario"
	"github.com/Aurosonic7/RentaProductoServer/util/hash"
)

type mockRepo struct {
	createFn func(ctx context.Context, u *model.Usuario) error
	updateFn func(ctx context.Context, id int64, up usuariorepo.Update) error
}

var _ usuariorepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.Usuario) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Usuario, error) {
	return nil, sql.ErrNoRows
}

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	return nil, sql.ErrNoRows
}

func (m *mockRepo) List(ctx context.Context) ([]model.Usuario, error) { return nil, nil }

func (m *mockRepo) Update(ctx context.Context, id int64, up usuariorepo.Update) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, id, up)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error { return sql.ErrNoRows }

func TestCreate_HashesPassword(t *testing.T) {
	var stored string
	m := &mockRepo{createFn: func(ctx context.Context, u *model.Usuario) error {
		stored = u.PasswordHash
		return nil
	}}
	svc := New(m)

	u := &model.Usuario{Nombre: "Ana", ApellidoPat: "García", Email: "ana@example.com"}
	require.NoError(t, svc.Create(context.Background(), u, "supersecret"))
	require.NotEmpty(t, stored)
	require.NotEqual(t, "supersecret", stored)
	require.True(t, hash.Check(stored, "supersecret"))
}

func TestUpdate_HashesNewPassword(t *testing.T) {
	var got usuariorepo.Update
	m := &mockRepo{updateFn: func(ctx context.Context, id int64, up usuariorepo.Update) error {
		got = up
		return nil
	}}
	svc := New(m)

	pw := "nuevopass"
	require.NoError(t, svc.Update(context.Background(), 1, Update{Password: &pw}))
	require.NotNil(t, got.PasswordHash)
	require.True(t, hash.Check(*got.PasswordHash, "nuevopass"))
}

func TestUpdate_EmptyPasswordIgnored(t *testing.T) {
	var got usuariorepo.Update
	m := &mockRepo{updateFn: func(ctx context.Context, id int64, up usuariorepo.Update) error {
		got = up
		return nil
	}}
	svc := New(m)

	empty := ""
	require.NoError(t, svc.Update(context.Background(), 1, Update{Password: &empty}))
	require.Nil(t, got.PasswordHash)
}

func TestUpdate_NotFound(t *testing.T) {
	m := &mockRepo{updateFn: func(ctx context.Context, id int64, up usuariorepo.Update) error {
		return sql.ErrNoRows
	}}
	svc := New(m)

	nombre := "Luis"
	err := svc.Update(context.Background(), 404, Update{Nombre: &nombre})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestByID_NotFound(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.ByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc := New(&mockRepo{})

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}
