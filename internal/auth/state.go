package auth

import (
	"net/url"

	"github.com/google/uuid"
)

// GenerateState produces a fresh random state value for the redirect
// variant of the authorization flow and stores it transiently.
func (f *DeviceFlow) GenerateState() (string, error) {
	state := uuid.NewString()
	if err := f.tokens.store.Set(keyOAuthState, state); err != nil {
		return "", err
	}
	return state, nil
}

// VerifyState compares a callback state value against the stored one.
// The stored value is deleted regardless of outcome: state is single-use.
func (f *DeviceFlow) VerifyState(received string) bool {
	saved, ok := f.tokens.store.Get(keyOAuthState)
	_ = f.tokens.store.Delete(keyOAuthState)
	return ok && received != "" && saved == received
}

// AuthorizationURL builds the redirect-variant authorization URL,
// generating and embedding a fresh CSRF state.
func (f *DeviceFlow) AuthorizationURL(redirectURI string) (string, error) {
	state, err := f.GenerateState()
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("client_id", f.clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("scope", Scope)
	params.Set("state", state)

	return f.authorizeURL + "?" + params.Encode(), nil
}
