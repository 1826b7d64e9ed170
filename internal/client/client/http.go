package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/logging"
)

// Operation names used in generic error messages.
const (
	opRegister        = "register"
	opLogin           = "login"
	opGetUserDetail   = "get user detail"
	opListCats        = "list cats"
	opListCatsByOwner = "list cats by owner"
	opGetCat          = "get cat"
	opCreateCat       = "create cat"
	opUpdateCat       = "update cat"
	opDeleteCat       = "delete cat"
	opPing            = "ping"
)

// HTTPClient implements Client over a Gateway.
type HTTPClient struct {
	gw       *Gateway
	sessions SessionStore
	log      logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// New builds a Gateway for baseURL whose identity comes from sessions and
// wraps it in an HTTPClient.
func New(baseURL string, sessions SessionStore, log logging.Logger, opts ...GatewayOption) (*HTTPClient, error) {
	if log == nil {
		log = logging.Nop()
	}
	opts = append([]GatewayOption{WithLogger(log)}, opts...)
	gw, err := NewGateway(baseURL, sessions, opts...)
	if err != nil {
		return nil, err
	}
	return NewHTTPClient(gw, sessions, log), nil
}

func NewHTTPClient(gw *Gateway, sessions SessionStore, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{gw: gw, sessions: sessions, log: log.With("component", "client")}
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Country = strings.TrimSpace(req.Country)
	req.Hobby = strings.TrimSpace(req.Hobby)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	var user models.User
	if err := c.gw.Do(ctx, http.MethodPost, "/users/register", req, &user); err != nil {
		return nil, withOp(opRegister, err)
	}
	c.log.Info(ctx, "user registered", "user_id", user.ID)
	return &user, nil
}

// Login authenticates and, on success, remembers the user in the session
// store so later requests carry their identity.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	var user models.User
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.gw.Do(ctx, http.MethodPost, "/users/login", req, &user); err != nil {
		return nil, withOp(opLogin, err)
	}

	if c.sessions != nil {
		if err := c.sessions.Save(ctx, models.SessionFromUser(user)); err != nil {
			return nil, withOp(opLogin, err)
		}
	}
	c.log.Info(ctx, "logged in", "user_id", user.ID)
	return &user, nil
}

// Logout forgets the signed-in user. It makes no request.
func (c *HTTPClient) Logout(ctx context.Context) error {
	if c.sessions == nil {
		return nil
	}
	return c.sessions.Clear(ctx)
}

func (c *HTTPClient) GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var user models.UserDetail
	if err := c.gw.Do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, &user); err != nil {
		return nil, withOp(opGetUserDetail, err)
	}
	return &user, nil
}

// ListCats returns cats in server order.
func (c *HTTPClient) ListCats(ctx context.Context) ([]models.Cat, error) {
	cats, err := c.listCats(ctx)
	if err != nil {
		return nil, withOp(opListCats, err)
	}
	return cats, nil
}

// ListCatsByOwner returns the cats owned by ownerID, in server order.
// An owner without cats yields an empty slice.
func (c *HTTPClient) ListCatsByOwner(ctx context.Context, ownerID int64) ([]models.Cat, error) {
	if err := checkID(ownerID); err != nil {
		return nil, err
	}
	cats, err := c.listCats(ctx)
	if err != nil {
		return nil, withOp(opListCatsByOwner, err)
	}

	owned := make([]models.Cat, 0, len(cats))
	for _, cat := range cats {
		if id, ok := cat.OwnerID(); ok && id == ownerID {
			owned = append(owned, cat)
		}
	}
	return owned, nil
}

func (c *HTTPClient) listCats(ctx context.Context) ([]models.Cat, error) {
	var cats []models.Cat
	if err := c.gw.Do(ctx, http.MethodGet, "/cats", nil, &cats); err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []models.Cat{}
	}
	return cats, nil
}

func (c *HTTPClient) GetCat(ctx context.Context, id int64) (*models.Cat, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var cat models.Cat
	if err := c.gw.Do(ctx, http.MethodGet, catPath(id), nil, &cat); err != nil {
		return nil, withOp(opGetCat, err)
	}
	return &cat, nil
}

// CreateCat sends only the writable fields of cat; the owner is assigned by
// the server from the identity header.
func (c *HTTPClient) CreateCat(ctx context.Context, cat models.Cat) (*models.Cat, error) {
	fields := cat.Fields()
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	var created models.Cat
	if err := c.gw.Do(ctx, http.MethodPost, "/cats", fields, &created); err != nil {
		return nil, withOp(opCreateCat, err)
	}
	c.log.Info(ctx, "cat created", "cat_id", created.ID)
	return &created, nil
}

func (c *HTTPClient) UpdateCat(ctx context.Context, id int64, cat models.Cat) (*models.Cat, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	fields := cat.Fields()
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	var updated models.Cat
	if err := c.gw.Do(ctx, http.MethodPut, catPath(id), fields, &updated); err != nil {
		return nil, withOp(opUpdateCat, err)
	}
	c.log.Info(ctx, "cat updated", "cat_id", id)
	return &updated, nil
}

func (c *HTTPClient) DeleteCat(ctx context.Context, id int64) (*models.Message, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var msg models.Message
	if err := c.gw.Do(ctx, http.MethodDelete, catPath(id), nil, &msg); err != nil {
		return nil, withOp(opDeleteCat, err)
	}
	c.log.Info(ctx, "cat deleted", "cat_id", id)
	return &msg, nil
}

// Ping probes GET /health.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.gw.Do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return withOp(opPing, err)
	}
	if resp.Status != "healthy" {
		return &APIError{Op: opPing, Err: fmt.Errorf("%w: status %q", ErrUnavailable, resp.Status)}
	}
	return nil
}

func checkID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrValidation, id)
	}
	return nil
}

func catPath(id int64) string {
	return "/cats/" + strconv.FormatInt(id, 10)
}
