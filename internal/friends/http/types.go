package http

import "github.com/wavechat/wavechat-backend/internal/friends/service"

type Handler struct {
	friends *service.FriendService
}

func New(friends *service.FriendService) *Handler {
	return &Handler{friends: friends}
}

type createRequest struct {
	FriendRequest string `json:"friendRequest"`
}

type rejectRequest struct {
	FriendRequest string `json:"friendRequest"`
}

type acceptRequest struct {
	FriendEmail string `json:"friendEmail"`
}

type searchRequest struct {
	SearchTerm     string          `json:"searchTerm"`
	FriendRequests []candidateUser `json:"friendRequests"`
}

type candidateUser struct {
	Email string `json:"email"`
}
