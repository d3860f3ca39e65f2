package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wavechat/wavechat-backend/internal/auth"
	"github.com/wavechat/wavechat-backend/internal/friends/service"
	"github.com/wavechat/wavechat-backend/internal/users"
)

// Create sends a friend request to the user named by email in the body.
func (h *Handler) Create(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FriendRequest == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request email is required"})
		return
	}

	res, err := h.friends.CreateRequest(c.Request.Context(), userID, req.FriendRequest)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Current user not found"})
		case errors.Is(err, service.ErrTargetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User with this email does not exist. Please make sure the email address is correct and the user has signed up for the application."})
		case errors.Is(err, users.ErrRequestPending):
			c.JSON(http.StatusConflict, gin.H{"error": "Friend request already sent to this user"})
		case errors.Is(err, users.ErrAlreadyFriends):
			c.JSON(http.StatusConflict, gin.H{"error": "You are already friends with this user"})
		default:
			log.Printf("[friends] create request: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Friend request added successfully",
		"target":    res.Target,
		"requester": res.Requester,
	})
}

// Reject removes a pending request from the caller's list.
func (h *Handler) Reject(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FriendRequest == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request email is required"})
		return
	}

	requester, err := h.friends.RejectRequest(c.Request.Context(), userID, req.FriendRequest)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("[friends] reject request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Friend request deleted successfully",
		"deletedRequest": requester,
	})
}

// Accept confirms a pending request and establishes the friendship.
func (h *Handler) Accept(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req acceptRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FriendEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Friend's email is required"})
		return
	}

	friend, err := h.friends.AcceptRequest(c.Request.Context(), userID, req.FriendEmail)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrTargetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User with this email does not exist"})
		case errors.Is(err, users.ErrRequestNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request not found"})
		default:
			log.Printf("[friends] accept request: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Friend request accepted successfully",
		"newFriend": friend,
	})
}

// List returns the caller's pending requests, newest first. An empty list is
// reported with a message rather than an empty array; clients key off it.
func (h *Handler) List(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.friends.ListRequests(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("[friends] list requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No friend requests found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"friendRequests": records})
}

// Search filters a client-supplied candidate set by a literal search term.
func (h *Handler) Search(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SearchTerm == "" || req.FriendRequests == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "searchTerm and friendRequests are required"})
		return
	}

	emails := make([]string, 0, len(req.FriendRequests))
	for _, fr := range req.FriendRequests {
		emails = append(emails, fr.Email)
	}

	matched, err := h.friends.SearchRequests(c.Request.Context(), req.SearchTerm, emails)
	if err != nil {
		log.Printf("[friends] search requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"searchedFriendRequests": matched})
}
