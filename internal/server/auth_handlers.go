package server

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type userView struct {
	UserID   int64   `json:"user_id"`
	Username string  `json:"username"`
	Role     *string `json:"role"`
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if credentials.Username == "" || credentials.Password == "" {
		http.Error(w, "Missing credentials", http.StatusBadRequest)
		return
	}

	user, err := s.users.GetByUsername(r.Context(), credentials.Username)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	session, _ := s.store.Get(r, sessionName)
	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	session.Values["last_activity"] = time.Now().Unix()
	session.Save(r, w)

	respondJSON(w, userView{UserID: user.ID, Username: user.Username, Role: user.Role})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := s.store.Get(r, sessionName)
	session.Values["user_id"] = nil
	session.Options.MaxAge = -1
	session.Save(r, w)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) checkAuthHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUserID(r)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	session, _ := s.store.Get(r, sessionName)
	session.Values["last_activity"] = time.Now().Unix()
	session.Save(r, w)

	respondJSON(w, userView{UserID: user.ID, Username: user.Username, Role: user.Role})
}
