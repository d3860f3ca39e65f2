package http

import (
	"time"

	"github.com/wavechat/wavechat-backend/internal/users"
)

type Handler struct {
	users    *users.Repo
	secret   string
	tokenTTL time.Duration
}

func New(repo *users.Repo, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		users:    repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Color     int    `json:"color"`
}
