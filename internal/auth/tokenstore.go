package auth

import (
	"strconv"
	"time"

	"github.com/vmvarela/ghoten-ui/internal/logger"
	"github.com/vmvarela/ghoten-ui/internal/storage"
)

const (
	keyToken      = "github_token"
	keyTimestamp  = "token_timestamp"
	keyOAuthState = "oauth_state"
)

// TokenStore owns the access token lifecycle on top of the key-value
// store. Nothing else writes the token keys.
type TokenStore struct {
	store storage.Store
}

func NewTokenStore(store storage.Store) *TokenStore {
	return &TokenStore{store: store}
}

// Set persists the token with the current timestamp. An empty token is
// a no-op so a failed exchange can never blank a valid credential. The
// timestamp is written first and restored if the token write fails, so
// AgeMinutes never describes a token that was not stored.
func (t *TokenStore) Set(token string) error {
	if token == "" {
		return nil
	}

	prevStamp, hadStamp := t.store.Get(keyTimestamp)

	if err := t.store.Set(keyTimestamp, strconv.FormatInt(time.Now().UnixMilli(), 10)); err != nil {
		return err
	}

	if err := t.store.Set(keyToken, token); err != nil {
		var restoreErr error
		if hadStamp {
			restoreErr = t.store.Set(keyTimestamp, prevStamp)
		} else {
			restoreErr = t.store.Delete(keyTimestamp)
		}
		if restoreErr != nil {
			logger.LogError("TOKEN_SET", "timestamp restore", restoreErr)
		}
		return err
	}
	return nil
}

func (t *TokenStore) Get() (string, bool) {
	token, ok := t.store.Get(keyToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// Clear removes the token, its timestamp, and any pending OAuth state.
func (t *TokenStore) Clear() error {
	logger.Log("Clearing stored credentials")
	if err := t.store.Delete(keyToken); err != nil {
		return err
	}
	if err := t.store.Delete(keyTimestamp); err != nil {
		return err
	}
	return t.store.Delete(keyOAuthState)
}

// AgeMinutes returns whole minutes since the token was issued, or false
// if no token has ever been stored.
func (t *TokenStore) AgeMinutes() (int, bool) {
	raw, ok := t.store.Get(keyTimestamp)
	if !ok {
		return 0, false
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return int(time.Since(time.UnixMilli(millis)).Minutes()), true
}
