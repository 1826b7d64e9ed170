package client

import (
	"context"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
)

// Client is the typed contract for every remote capability of the cat
// registry API.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error)

	ListCats(ctx context.Context) ([]models.Cat, error)
	ListCatsByOwner(ctx context.Context, ownerID int64) ([]models.Cat, error)
	GetCat(ctx context.Context, id int64) (*models.Cat, error)
	CreateCat(ctx context.Context, cat models.Cat) (*models.Cat, error)
	UpdateCat(ctx context.Context, id int64, cat models.Cat) (*models.Cat, error)
	DeleteCat(ctx context.Context, id int64) (*models.Message, error)

	Ping(ctx context.Context) error
}

// SessionStore is where a successful login is remembered. The same store
// feeds the Gateway's identity hook.
type SessionStore interface {
	IdentitySource
	Save(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}
