package users

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrRequestPending  = errors.New("friend request already pending")
	ErrAlreadyFriends  = errors.New("users are already friends")
	ErrRequestNotFound = errors.New("friend request not found")
)
