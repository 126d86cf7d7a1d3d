package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Aurosonic7/RentaProductoServer/model"
	usuariorepo "github.com/Aurosonic7/RentaProductoServer/repository/usuario"
	"github.com/Aurosonic7/RentaProductoServer/util/hash"
	jwtutil "github.com/Aurosonic7/RentaProductoServer/util/jwt"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrEmailUnknown  = errors.New("email does not exist")
	ErrWrongPassword = errors.New("incorrect password")
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.Usuario, string, error)
	Login(ctx context.Context, req model.LoginReq) (string, error)
}

type service struct {
	ur       usuariorepo.Repo
	secret   string
	ttlHours int
}

func New(ur usuariorepo.Repo, secret string, ttlHours int) Service {
	return &service{ur: ur, secret: secret, ttlHours: ttlHours}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.Usuario, string, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.Usuario{
		Nombre:       req.Nombre,
		ApellidoPat:  req.ApellidoPat,
		ApellidoMat:  req.ApellidoMat,
		Telefono:     req.Telefono,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashed,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Email, s.ttlHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (string, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrEmailUnknown
		}
		return "", err
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return "", ErrWrongPassword
	}
	return jwtutil.Issue(s.secret, u.ID, u.Email, s.ttlHours)
}
