package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/wavechat/wavechat-backend/internal/users"
)

// ErrTargetNotFound signals that the email named in a request does not belong
// to any directory user, as opposed to the caller themselves being missing.
var ErrTargetNotFound = errors.New("no user with this email")

// FriendService implements the friend-request workflow over the user
// directory: create, reject, accept, list and search pending requests.
type FriendService struct {
	users *users.Repo
}

func NewFriendService(repo *users.Repo) *FriendService {
	return &FriendService{users: repo}
}

// CreateResult carries both sides of a newly created request.
type CreateResult struct {
	Target    *users.User
	Requester *users.User
}

// CreateRequest records a pending friend request from the caller on the
// target user. The duplicate and already-friends checks are advisory reads;
// the final add is idempotent, so a racing duplicate degrades to a no-op.
func (s *FriendService) CreateRequest(ctx context.Context, callerID, targetEmail string) (*CreateResult, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	pending, err := s.users.HasRequest(ctx, target.ID, caller.Email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, users.ErrRequestPending
	}

	already, err := s.users.IsFriend(ctx, target.ID, caller.Email)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, users.ErrAlreadyFriends
	}

	if _, err := s.users.AddRequest(ctx, target.ID, caller.Email); err != nil {
		return nil, err
	}

	return &CreateResult{Target: target, Requester: caller}, nil
}

// RejectRequest drops requesterEmail from the caller's pending requests.
// The requester record is fetched only to enrich the response; a requester
// that no longer exists yields a nil record, not an error, and removing an
// absent request is a no-op.
func (s *FriendService) RejectRequest(ctx context.Context, callerID, requesterEmail string) (*users.User, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	requester, err := s.users.GetByEmail(ctx, requesterEmail)
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		return nil, err
	}

	if err := s.users.RemoveRequest(ctx, caller.ID, requesterEmail); err != nil {
		return nil, err
	}

	return requester, nil
}

// AcceptRequest confirms a pending request: the entry leaves the caller's
// pending list and both users gain each other as friends, transactionally.
func (s *FriendService) AcceptRequest(ctx context.Context, callerID, friendEmail string) (*users.User, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	friend, err := s.users.GetByEmail(ctx, friendEmail)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	has, err := s.users.HasRequest(ctx, caller.ID, friendEmail)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, users.ErrRequestNotFound
	}

	if err := s.users.ConfirmFriendship(ctx, caller, friend); err != nil {
		return nil, err
	}

	return friend, nil
}

// ListRequests returns display records for the caller's pending requests,
// most recently received first. Emails whose user has since disappeared are
// skipped rather than surfaced as an error.
func (s *FriendService) ListRequests(ctx context.Context, callerID string) ([]users.PublicUser, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	emails, err := s.users.PendingRequests(ctx, callerID)
	if err != nil {
		return nil, err
	}

	records := make([]users.PublicUser, 0, len(emails))
	for i := len(emails) - 1; i >= 0; i-- {
		u, err := s.users.GetByEmail(ctx, emails[i])
		if errors.Is(err, users.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, u.Public())
	}

	return records, nil
}

// SearchRequests filters a caller-supplied candidate set by a free-text term.
// The term is matched literally and case-insensitively against first name,
// last name, email, and the full "first last" display name.
func (s *FriendService) SearchRequests(ctx context.Context, term string, candidateEmails []string) ([]users.PublicUser, error) {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return nil, err
	}

	matched := make([]users.PublicUser, 0, len(candidateEmails))
	seen := make(map[string]bool, len(candidateEmails))
	for _, email := range candidateEmails {
		if seen[email] {
			continue
		}
		seen[email] = true

		u, err := s.users.GetByEmail(ctx, email)
		if errors.Is(err, users.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		fullName := strings.TrimSpace(u.FirstName + " " + u.LastName)
		if re.MatchString(u.FirstName) || re.MatchString(u.LastName) ||
			re.MatchString(u.Email) || re.MatchString(fullName) {
			matched = append(matched, u.Public())
		}
	}

	return matched, nil
}
