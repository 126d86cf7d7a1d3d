package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Aurosonic7/RentaProductoServer/model"
	usuariorepo "github.com/Aurosonic7/RentaProductoServer/repository/usuario"
	"github.com/Aurosonic7/RentaProductoServer/util/hash"
)

type mockRepo struct {
	createFn  func(ctx context.Context, u *model.Usuario) error
	byEmailFn func(ctx context.Context, email string) (*model.Usuario, error)
}

var _ usuariorepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.Usuario) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	if m.byEmailFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Usuario, error) {
	return nil, sql.ErrNoRows
}
func (m *mockRepo) List(ctx context.Context) ([]model.Usuario, error)            { return nil, nil }
func (m *mockRepo) Update(ctx context.Context, id int64, up usuariorepo.Update) error { return nil }
func (m *mockRepo) Delete(ctx context.Context, id int64) error                   { return nil }

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.Usuario) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret", 1)

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Nombre:      "Ana",
		ApellidoPat: "García",
		Email:       "  ANA@Example.COM ",
		Password:    "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "ana@example.com", u.Email)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "supersecret", u.PasswordHash)
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.Usuario) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}
	svc := New(m, "test-secret", 1)

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Nombre:      "Ana",
		ApellidoPat: "García",
		Email:       "taken@example.com",
		Password:    "123456",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.Usuario) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret", 1)

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Nombre:      "Ana",
		ApellidoPat: "García",
		Email:       "ok@example.com",
		Password:    "123456",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "supersecret")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return &model.Usuario{ID: 7, Email: "ana@example.com", PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret", 1)

	tok, err := svc.Login(ctx, model.LoginReq{Email: "Ana@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
}

func TestLogin_EmailUnknown(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret", 1)

	_, err := svc.Login(ctx, model.LoginReq{Email: "missing@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrEmailUnknown)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return &model.Usuario{ID: 101, Email: "ana@example.com", PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret", 1)

	_, err := svc.Login(ctx, model.LoginReq{Email: "ana@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrWrongPassword)
}
