package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aarya06/Bookwizard/internal/cart"
)

// TTL matches the browser session cookie lifetime: a session and everything
// stored under it expires after 24 hours.
const TTL = 24 * time.Hour

var (
	ErrNoCart = errors.New("no cart in session")
	ErrNoUser = errors.New("no user in session")
)

// Store keeps per-session state in redis, keyed by session id. Reads and
// writes are plain GET/SET with no locking: two concurrent requests on the
// same session are last-write-wins, same as the original cookie-session
// behavior.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("session:%s:cart", sessionID)
}

func userKey(sessionID string) string {
	return fmt.Sprintf("session:%s:user", sessionID)
}

// Cart loads the session's cart. A session with no cart yet returns
// ErrNoCart.
func (s *Store) Cart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoCart
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session cart: %w", err)
	}

	c, err := cart.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session cart: %w", err)
	}
	return c, nil
}

// PutCart serializes the cart back into the session after a mutation and
// refreshes the TTL.
func (s *Store) PutCart(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, cartKey(sessionID), data, TTL).Err(); err != nil {
		return fmt.Errorf("failed to store session cart: %w", err)
	}
	return nil
}

// Clear discards the session's cart.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session cart: %w", err)
	}
	return nil
}

// SetUser binds a logged-in user to the session.
func (s *Store) SetUser(ctx context.Context, sessionID, userID string) error {
	if err := s.client.Set(ctx, userKey(sessionID), userID, TTL).Err(); err != nil {
		return fmt.Errorf("failed to store session user: %w", err)
	}
	return nil
}

// User returns the user id bound to the session, or ErrNoUser for an
// anonymous session.
func (s *Store) User(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, userKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoUser
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session user: %w", err)
	}
	return userID, nil
}

// ClearUser logs the session out. The cart survives a logout.
func (s *Store) ClearUser(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, userKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session user: %w", err)
	}
	return nil
}
