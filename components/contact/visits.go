package contact

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	pkgcontact "github.com/goliatone/go-admaiora/pkg/contact"
)

// visitStore maps visit ids to their form controller. Entries expire after
// ttl without activity; evicted controllers are closed.
type visitStore struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, *pkgcontact.Controller]
	factory func() *pkgcontact.Controller
}

func newVisitStore(size int, ttl time.Duration, factory func() *pkgcontact.Controller) *visitStore {
	onEvict := func(_ string, ctrl *pkgcontact.Controller) {
		if ctrl != nil {
			ctrl.Close()
		}
	}
	return &visitStore{
		entries: expirable.NewLRU[string, *pkgcontact.Controller](size, onEvict, ttl),
		factory: factory,
	}
}

// resolve returns the controller for id, creating a new visit when id is
// empty, malformed, expired or unknown. The returned id is the one to send
// back to the client.
func (s *visitStore) resolve(id string) (string, *pkgcontact.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if ctrl, ok := s.entries.Get(id); ok {
			// Add on an existing key refreshes its expiry.
			s.entries.Add(id, ctrl)
			return id, ctrl
		}
	}
	return s.createLocked()
}

// renew replaces whatever is stored under id with a fresh visit.
func (s *visitStore) renew(id string) (string, *pkgcontact.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.Remove(id)
	return s.createLocked()
}

func (s *visitStore) createLocked() (string, *pkgcontact.Controller) {
	id := uuid.NewString()
	ctrl := s.factory()
	s.entries.Add(id, ctrl)
	return id, ctrl
}

func (s *visitStore) len() int {
	return s.entries.Len()
}

// purge discards every visit.
func (s *visitStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.Purge()
}

func visitID(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setVisitCookie(w http.ResponseWriter, opts Options, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(opts.VisitTTL / time.Second),
		HttpOnly: true,
		Secure:   opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
