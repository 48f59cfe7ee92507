package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/issue-bridge/internal/domain"
)

// ErrNotFound reports an absent correlation key. Callers must distinguish it
// from backend failures: an absent key means "no linked issue", a backend
// failure means "unknown".
var ErrNotFound = errors.New("correlation not found")

// CorrelationRepository encapsulates the bidirectional message ↔ issue links.
// Links are created once and read forever; there is no update or delete.
type CorrelationRepository interface {
	Link(ctx context.Context, key domain.CorrelationKey, issue domain.CreatedIssue) error
	ResolveIssueForMessage(ctx context.Context, teamID, channelID, threadTS string) (string, error)
	ResolveMessageForIssue(ctx context.Context, issueKey string) (domain.CorrelationKey, error)
}

type correlationRepository struct {
	client *redis.Client
}

// NewCorrelationRepository instantiates the repository.
func NewCorrelationRepository(client *redis.Client) CorrelationRepository {
	return &correlationRepository{client: client}
}

// Link writes both directions in one MSET round trip. A single combined write
// means a backend-side failure can never leave one direction linked and the
// other not.
func (r *correlationRepository) Link(ctx context.Context, key domain.CorrelationKey, issue domain.CreatedIssue) error {
	messageKey := key.String()
	issueValue := issue.ID + "," + issue.Key
	if err := r.client.MSet(ctx, messageKey, issueValue, issue.Key, messageKey).Err(); err != nil {
		return fmt.Errorf("link correlation: %w", err)
	}
	return nil
}

// ResolveIssueForMessage looks up the issue linked to a thread message. The
// stored value may be a comma-joined composite; only the segment after the
// last comma is the effective issue key.
func (r *correlationRepository) ResolveIssueForMessage(ctx context.Context, teamID, channelID, threadTS string) (string, error) {
	key := domain.NewCorrelationKey(teamID, channelID, threadTS).String()
	stored, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve issue for %s: %w", key, err)
	}
	return domain.EffectiveIssueKey(stored), nil
}

// ResolveMessageForIssue looks up the thread message linked to an issue.
func (r *correlationRepository) ResolveMessageForIssue(ctx context.Context, issueKey string) (domain.CorrelationKey, error) {
	stored, err := r.client.Get(ctx, issueKey).Result()
	if errors.Is(err, redis.Nil) {
		return domain.CorrelationKey{}, ErrNotFound
	}
	if err != nil {
		return domain.CorrelationKey{}, fmt.Errorf("resolve message for %s: %w", issueKey, err)
	}
	parts := [3]string{}
	segment := 0
	start := 0
	for i := 0; i <= len(stored); i++ {
		if i == len(stored) || stored[i] == ',' {
			if segment < 3 {
				parts[segment] = stored[start:i]
			}
			segment++
			start = i + 1
		}
	}
	if segment != 3 {
		return domain.CorrelationKey{}, fmt.Errorf("malformed correlation value for %s", issueKey)
	}
	return domain.NewCorrelationKey(parts[0], parts[1], parts[2]), nil
}
