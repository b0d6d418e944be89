package services

import (
	"errors"

	"modahaus/internal/domain"
	"modahaus/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// IdentityListener is notified whenever the signed-in identity of a
// session changes. An empty new id means sign-out.
type IdentityListener func(prevUserID, userID string)

type AuthService struct {
	Users *repos.UserRepo

	listeners []IdentityListener
}

// OnIdentityChange registers a listener; the cart service uses this to
// load or drop its state when the user changes. Not safe to call after
// the app starts serving.
func (s *AuthService) OnIdentityChange(fn IdentityListener) {
	s.listeners = append(s.listeners, fn)
}

func (s *AuthService) notify(prevID, userID string) {
	for _, fn := range s.listeners {
		fn(prevID, userID)
	}
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	var prevID string
	if prev, err := s.Users.SessionUser(sid); err == nil && prev != nil {
		prevID = prev.ID
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	s.notify(prevID, u.ID)
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	var prevID string
	if prev, err := s.Users.SessionUser(sid); err == nil && prev != nil {
		prevID = prev.ID
	}
	if err := s.Users.UnbindSession(sid); err != nil {
		return err
	}
	s.notify(prevID, "")
	return nil
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
