package server

import (
	"net/http"
	"time"
)

// sessionMaxIdle is the sliding inactivity window after which a session is
// dropped.
const sessionMaxIdle = 30 * time.Minute

// requireAuth guards an operation behind an authenticated session. Each
// passing request refreshes the activity timestamp.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := s.store.Get(r, sessionName)

		if _, ok := session.Values["user_id"].(int64); !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		lastActivity, ok := session.Values["last_activity"].(int64)
		if !ok || time.Now().Unix()-lastActivity > int64(sessionMaxIdle.Seconds()) {
			session.Options.MaxAge = -1
			session.Save(r, w)
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}

		session.Values["last_activity"] = time.Now().Unix()
		session.Save(r, w)

		next(w, r)
	}
}

// currentUserID resolves the caller identity from the session. The second
// return is false for unauthenticated requests.
func (s *Server) currentUserID(r *http.Request) (int64, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values["user_id"].(int64)
	return id, ok
}
