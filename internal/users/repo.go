package users

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix    = "user:"       // User document: user:{id}
	emailIndexPrefix = "user:email:" // Email -> id index: user:email:{email}
	requestKeySuffix = ":requests"   // Pending requests zset: user:{id}:requests
	friendKeySuffix  = ":friends"    // Confirmed friends set: user:{id}:friends
)

// Repo stores user documents and their relation lists in Redis.
//
// Documents are JSON values keyed by id, with a unique email index key per
// user. Pending requests live in a sorted set scored by arrival time, so
// insertion order is recoverable; confirmed friends live in a plain set.
type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

// Create inserts a new user document. The email index key doubles as the
// uniqueness guard: claiming it with SETNX is atomic, so two concurrent
// signups for the same email cannot both succeed.
func (r *Repo) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	claimed, err := r.client.SetNX(ctx, r.emailKey(u.Email), u.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("claim email index: %w", err)
	}
	if !claimed {
		return ErrEmailTaken
	}

	doc, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	if err := r.client.Set(ctx, r.userKey(u.ID), doc, 0).Err(); err != nil {
		return fmt.Errorf("store user: %w", err)
	}

	return nil
}

// GetByID retrieves a user document by id.
func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	data, err := r.client.Get(ctx, r.userKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var u User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user document through the email index.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	id, err := r.client.Get(ctx, r.emailKey(email)).Result()
	if err == redis.Nil {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get email index: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update rewrites an existing user document. SET XX refuses to create the
// key, so updating a user that was deleted underneath us fails cleanly.
func (r *Repo) Update(ctx context.Context, u *User) error {
	doc, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	stored, err := r.client.SetXX(ctx, r.userKey(u.ID), doc, 0).Result()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if !stored {
		return ErrUserNotFound
	}

	return nil
}

// AddRequest appends requesterEmail to the user's pending requests.
// ZADD NX is the idempotent set-add: a duplicate under a race is a no-op,
// and the original arrival score is kept.
func (r *Repo) AddRequest(ctx context.Context, userID, requesterEmail string) (bool, error) {
	added, err := r.client.ZAddNX(ctx, r.requestKey(userID), redis.Z{
		Score:  float64(time.Now().UnixNano()),
		Member: requesterEmail,
	}).Result()
	if err != nil {
		return false, fmt.Errorf("add request: %w", err)
	}

	return added > 0, nil
}

// HasRequest reports whether requesterEmail is pending for the user.
func (r *Repo) HasRequest(ctx context.Context, userID, requesterEmail string) (bool, error) {
	_, err := r.client.ZScore(ctx, r.requestKey(userID), requesterEmail).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check request: %w", err)
	}

	return true, nil
}

// RemoveRequest deletes requesterEmail from the user's pending requests.
// Removing an absent entry is a no-op, not an error.
func (r *Repo) RemoveRequest(ctx context.Context, userID, requesterEmail string) error {
	if err := r.client.ZRem(ctx, r.requestKey(userID), requesterEmail).Err(); err != nil {
		return fmt.Errorf("remove request: %w", err)
	}

	return nil
}

// PendingRequests returns the user's pending requester emails, oldest first.
func (r *Repo) PendingRequests(ctx context.Context, userID string) ([]string, error) {
	emails, err := r.client.ZRange(ctx, r.requestKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	return emails, nil
}

// IsFriend reports whether email is in the user's confirmed friends.
func (r *Repo) IsFriend(ctx context.Context, userID, email string) (bool, error) {
	member, err := r.client.SIsMember(ctx, r.friendKey(userID), email).Result()
	if err != nil {
		return false, fmt.Errorf("check friend: %w", err)
	}

	return member, nil
}

// Friends returns the user's confirmed friend emails.
func (r *Repo) Friends(ctx context.Context, userID string) ([]string, error) {
	emails, err := r.client.SMembers(ctx, r.friendKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}

	return emails, nil
}

// ConfirmFriendship removes the pending request and records the friendship
// on both sides in a single MULTI/EXEC transaction, so a crash cannot leave
// the relationship half-established.
func (r *Repo) ConfirmFriendship(ctx context.Context, user *User, friend *User) error {
	pipe := r.client.TxPipeline()
	pipe.ZRem(ctx, r.requestKey(user.ID), friend.Email)
	pipe.SAdd(ctx, r.friendKey(user.ID), friend.Email)
	pipe.SAdd(ctx, r.friendKey(friend.ID), user.Email)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("confirm friendship: %w", err)
	}

	return nil
}

func (r *Repo) userKey(id string) string {
	return userKeyPrefix + id
}

func (r *Repo) emailKey(email string) string {
	return emailIndexPrefix + email
}

func (r *Repo) requestKey(id string) string {
	return userKeyPrefix + id + requestKeySuffix
}

func (r *Repo) friendKey(id string) string {
	return userKeyPrefix + id + friendKeySuffix
}
