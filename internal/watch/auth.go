package watch

import (
	"context"

	"github.com/carelfelix2/scrapper/internal/models"
	"github.com/carelfelix2/scrapper/internal/session"
)

// UserProber is the one facade call the auth check needs.
type UserProber interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// CheckAuth validates the persisted session on startup. With no token held it
// short-circuits to nil without a network call. With a token it probes the
// current-user endpoint: success caches the user in the store and returns it;
// any failure clears the session entirely. A failed probe is a state change,
// not an error, so none is returned — the caller sees an unauthenticated
// store and redirects to login. Transient transport failures log out the same
// as remote rejections; retrying is a product decision this layer does not
// take.
func CheckAuth(ctx context.Context, store *session.Store, prober UserProber) *models.User {
	if !store.Authenticated() {
		return nil
	}
	u, err := prober.CurrentUser(ctx)
	if err != nil {
		store.Logout()
		return nil
	}
	store.SetUser(u)
	return u
}
