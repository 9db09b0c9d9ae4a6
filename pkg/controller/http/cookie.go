package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SharedSession is the namespace every visitor reads in shared cache scope
const SharedSession = "shared"

const (
	sessionCookie = "ff_session"
	visitorCookie = "ff_visitor"

	preferenceMaxAge = 365 * 24 * time.Hour
)

// cookieStore keeps durable values in cookies of the same name. Values set
// during the request are visible to later reads of that request.
type cookieStore struct {
	r       *http.Request
	w       http.ResponseWriter
	written map[string]string
}

func newCookieStore(w http.ResponseWriter, r *http.Request) *cookieStore {
	return &cookieStore{r: r, w: w, written: map[string]string{}}
}

func (s *cookieStore) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.written[key]; ok {
		return v, true, nil
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false, nil
	}
	return c.Value, true, nil
}

func (s *cookieStore) Set(ctx context.Context, key, value string) error {
	s.written[key] = value
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(preferenceMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.r.TLS != nil,
	})
	return nil
}

// ensureID returns the value of cookie name, issuing a new random id when
// missing or malformed. maxAge 0 makes it a browser session cookie.
func ensureID(w http.ResponseWriter, r *http.Request, name string, maxAge time.Duration) string {
	if c, err := r.Cookie(name); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	return id
}
