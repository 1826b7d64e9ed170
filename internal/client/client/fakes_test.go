package client

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/testutil"
)

type fakeSessions struct {
	mu      sync.Mutex
	sess    *models.Session
	saveErr error
	saves   int
	clears  int
}

func (f *fakeSessions) Load(context.Context) (models.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sess == nil {
		return models.Session{}, false
	}
	return *f.sess, true
}

func (f *fakeSessions) Save(_ context.Context, s models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sess = &s
	return nil
}

func (f *fakeSessions) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.sess = nil
	return nil
}

func signedIn(id int64) *fakeSessions {
	return &fakeSessions{sess: &models.Session{ID: id, Name: "Ann", Email: "ann@example.com"}}
}

func newTestClient(t *testing.T, sessions SessionStore) (*HTTPClient, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	c, err := New(api.URL(), sessions, nil)
	require.NoError(t, err)
	return c, api
}

func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }
