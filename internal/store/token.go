package store

import "fmt"

// TokenKey is the fixed storage key of the bearer token.
const TokenKey = "outreach_token"

// Tokens persists the bearer token of the signed-in user.
type Tokens struct {
	db *DB
}

// NewTokens returns a token store backed by db.
func NewTokens(db *DB) *Tokens {
	return &Tokens{db: db}
}

// Token returns the stored token, or "" when none is stored.
func (t *Tokens) Token() (string, error) {
	v, _, err := t.db.Get(TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return v, nil
}

// SetToken persists token.
func (t *Tokens) SetToken(token string) error {
	if err := t.db.Set(TokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// ClearToken forgets the stored token.
func (t *Tokens) ClearToken() error {
	if err := t.db.Remove(TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
