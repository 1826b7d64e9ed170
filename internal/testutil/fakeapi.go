// Package testutil provides an in-process fake of the cat registry API for
// tests of the client layers.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/common"
	"github.com/dmitrijs2005/nekolist/internal/timex"
)

// RecordedRequest is what the fake saw on the wire.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type fakeUser struct {
	user     models.User
	password string
}

type failure struct {
	status int
	body   string
}

// FakeAPI serves the cat registry endpoints from memory.
type FakeAPI struct {
	Server *httptest.Server

	mu         sync.Mutex
	users      []fakeUser
	cats       []models.Cat
	nextUserID int64
	nextCatID  int64
	requests   []RecordedRequest
	failures   []failure
	health     string
}

// NewFakeAPI starts a fake API server that is closed when t finishes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{nextUserID: 1, nextCatID: 1, health: "healthy"}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Use(f.injectFailures)

	r.Get("/health", f.handleHealth)
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", f.handleRegister)
		r.Post("/login", f.handleLogin)
		r.Get("/{id}", f.handleGetUser)
	})
	r.Route("/cats", func(r chi.Router) {
		r.Get("/", f.handleListCats)
		r.Post("/", f.handleCreateCat)
		r.Get("/{id}", f.handleGetCat)
		r.Put("/{id}", f.handleUpdateCat)
		r.Delete("/{id}", f.handleDeleteCat)
	})

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// SeedUser registers a user directly.
func (f *FakeAPI) SeedUser(name, email, password string) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addUser(models.RegisterRequest{Name: name, Email: email, Password: password})
}

// SeedCat stores cat with a fresh id. A set UserID gets the owner embedded.
func (f *FakeAPI) SeedCat(cat models.Cat) models.Cat {
	f.mu.Lock()
	defer f.mu.Unlock()

	cat.ID = f.nextCatID
	f.nextCatID++
	now := stamp()
	cat.CreatedAt, cat.UpdatedAt = &now, &now
	cat.User = nil
	if cat.UserID != nil {
		cat.User = f.ownerInfo(*cat.UserID)
	}
	f.cats = append(f.cats, cat)
	return cat
}

// Cats returns a copy of the stored cats.
func (f *FakeAPI) Cats() []models.Cat {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Cat(nil), f.cats...)
}

func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request; ok is false if none arrived.
func (f *FakeAPI) LastRequest() (RecordedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}, false
	}
	return f.requests[len(f.requests)-1], true
}

// Count returns how many requests matched method and path.
func (f *FakeAPI) Count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// FailNext makes the next request answer with status and the raw body.
func (f *FakeAPI) FailNext(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, failure{status: status, body: body})
}

func (f *FakeAPI) SetHealth(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.health = status
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		var fail *failure
		if len(f.failures) > 0 {
			fail = &f.failures[0]
			f.failures = f.failures[1:]
		}
		f.mu.Unlock()

		if fail != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fail.status)
			_, _ = io.WriteString(w, fail.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	status := f.health
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (f *FakeAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeValidation(w, "field required")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.user.Email == req.Email {
			writeDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
	}
	writeJSON(w, http.StatusOK, f.addUser(req))
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.user.Email == req.Email && u.password == req.Password {
			writeJSON(w, http.StatusOK, u.user)
			return
		}
	}
	writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
}

func (f *FakeAPI) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.user.ID == id {
			writeJSON(w, http.StatusOK, models.UserDetail{
				ID:        u.user.ID,
				Name:      u.user.Name,
				Email:     u.user.Email,
				Country:   u.user.Country,
				Hobby:     u.user.Hobby,
				CreatedAt: u.user.CreatedAt,
			})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "User not found")
}

func (f *FakeAPI) handleListCats(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Cat, len(f.cats))
	copy(out, f.cats)
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) handleGetCat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.catIndex(id); i >= 0 {
		writeJSON(w, http.StatusOK, f.cats[i])
		return
	}
	writeDetail(w, http.StatusNotFound, "Cat not found")
}

func (f *FakeAPI) handleCreateCat(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := stamp()
	cat := catFromFields(fields)
	cat.ID = f.nextCatID
	f.nextCatID++
	cat.CreatedAt, cat.UpdatedAt = &now, &now
	if uid, err := strconv.ParseInt(r.Header.Get(common.UserIDHeaderName), 10, 64); err == nil {
		cat.UserID = &uid
		cat.User = f.ownerInfo(uid)
	}
	f.cats = append(f.cats, cat)
	writeJSON(w, http.StatusOK, cat)
}

func (f *FakeAPI) handleUpdateCat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.catIndex(id)
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Cat not found")
		return
	}

	prev := f.cats[i]
	now := stamp()
	cat := catFromFields(fields)
	cat.ID = prev.ID
	cat.UserID, cat.User = prev.UserID, prev.User
	cat.CreatedAt, cat.UpdatedAt = prev.CreatedAt, &now
	f.cats[i] = cat
	writeJSON(w, http.StatusOK, cat)
}

func (f *FakeAPI) handleDeleteCat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.catIndex(id)
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Cat not found")
		return
	}
	f.cats = append(f.cats[:i], f.cats[i+1:]...)
	writeJSON(w, http.StatusOK, models.Message{Message: "Cat deleted successfully"})
}

// addUser must be called with f.mu held.
func (f *FakeAPI) addUser(req models.RegisterRequest) models.User {
	now := stamp()
	u := models.User{
		ID:        f.nextUserID,
		Name:      req.Name,
		Email:     req.Email,
		Country:   req.Country,
		Hobby:     req.Hobby,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	f.nextUserID++
	f.users = append(f.users, fakeUser{user: u, password: req.Password})
	return u
}

// ownerInfo must be called with f.mu held.
func (f *FakeAPI) ownerInfo(id int64) *models.UserInfo {
	for _, u := range f.users {
		if u.user.ID == id {
			return &models.UserInfo{ID: id, Name: u.user.Name, Country: u.user.Country, Hobby: u.user.Hobby}
		}
	}
	return nil
}

// catIndex must be called with f.mu held.
func (f *FakeAPI) catIndex(id int64) int {
	for i, c := range f.cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func decodeFields(w http.ResponseWriter, r *http.Request) (models.CatFields, bool) {
	var fields models.CatFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return fields, false
	}
	if strings.TrimSpace(fields.Name) == "" || strings.TrimSpace(fields.Breed) == "" || strings.TrimSpace(fields.Personality) == "" {
		writeValidation(w, "field required")
		return fields, false
	}
	return fields, true
}

func catFromFields(f models.CatFields) models.Cat {
	return models.Cat{
		Name:        f.Name,
		Breed:       f.Breed,
		Personality: f.Personality,
		Origin:      f.Origin,
		Age:         f.Age,
		Color:       f.Color,
		Weight:      f.Weight,
		Description: f.Description,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeValidation(w, "value is not a valid integer")
		return 0, false
	}
	return id, true
}

func stamp() timex.Timestamp {
	return timex.Timestamp{Time: time.Now().UTC().Truncate(time.Microsecond)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeValidation(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{"loc": []string{"body"}, "msg": msg, "type": "value_error"}},
	})
}
