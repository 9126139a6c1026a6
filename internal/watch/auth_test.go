package watch

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/carelfelix2/scrapper/internal/models"
	"github.com/carelfelix2/scrapper/internal/session"
)

type fakeProber struct {
	user  *models.User
	err   error
	calls int
}

func (f *fakeProber) CurrentUser(ctx context.Context) (*models.User, error) {
	f.calls++
	return f.user, f.err
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.New(filepath.Join(t.TempDir(), "token"))
}

func TestCheckAuthNoTokenSkipsNetwork(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	prober := &fakeProber{user: &models.User{ID: 1}}

	u := CheckAuth(context.Background(), store, prober)
	if u != nil {
		t.Errorf("user = %+v, want nil", u)
	}
	if prober.calls != 0 {
		t.Errorf("probe issued %d requests with no token held", prober.calls)
	}
}

func TestCheckAuthValidTokenCachesUser(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	store.SetToken("t1")
	want := &models.User{ID: 7, Email: "demo@scrapper.com", Username: "demo_user"}
	prober := &fakeProber{user: want}

	u := CheckAuth(context.Background(), store, prober)
	if u != want {
		t.Errorf("user = %+v, want %+v", u, want)
	}
	if store.User() != want {
		t.Error("user not cached in the store")
	}
	if store.Token() != "t1" {
		t.Error("token cleared on a successful probe")
	}
}

func TestCheckAuthFailedProbeClearsSession(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	store.SetToken("expired")
	store.SetUser(&models.User{ID: 1})
	prober := &fakeProber{err: errors.New("401 unauthorized")}

	u := CheckAuth(context.Background(), store, prober)
	if u != nil {
		t.Errorf("user = %+v, want nil", u)
	}
	if store.Token() != "" {
		t.Error("token survived a failed probe")
	}
	if store.User() != nil {
		t.Error("user survived a failed probe")
	}
}
