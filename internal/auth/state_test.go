package auth

import (
	"strings"
	"testing"
)

func TestVerifyStateSingleUse(t *testing.T) {
	flow, _ := newTestFlow(t, "http://unused", "http://unused")

	state, err := flow.GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	if state == "" {
		t.Fatal("GenerateState() returned empty state")
	}

	if !flow.VerifyState(state) {
		t.Error("VerifyState() = false on first use, want true")
	}
	if flow.VerifyState(state) {
		t.Error("VerifyState() = true on second use, want false")
	}
}

func TestVerifyStateMismatchConsumesState(t *testing.T) {
	flow, store := newTestFlow(t, "http://unused", "http://unused")

	if _, err := flow.GenerateState(); err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}

	if flow.VerifyState("forged-value") {
		t.Error("VerifyState() = true for forged value, want false")
	}
	if _, ok := store.Get(keyOAuthState); ok {
		t.Error("state survived a failed verification")
	}
}

func TestVerifyStateEmpty(t *testing.T) {
	flow, _ := newTestFlow(t, "http://unused", "http://unused")

	if flow.VerifyState("") {
		t.Error("VerifyState(\"\") = true, want false")
	}
}

func TestGenerateStateReplacesPrevious(t *testing.T) {
	flow, _ := newTestFlow(t, "http://unused", "http://unused")

	first, err := flow.GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	second, err := flow.GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	if first == second {
		t.Fatal("GenerateState() returned the same value twice")
	}

	if flow.VerifyState(first) {
		t.Error("VerifyState() accepted a superseded state")
	}
}

func TestAuthorizationURL(t *testing.T) {
	flow, _ := newTestFlow(t, "http://unused", "http://unused")

	authURL, err := flow.AuthorizationURL("https://example.com/callback")
	if err != nil {
		t.Fatalf("AuthorizationURL() error = %v", err)
	}

	if !strings.HasPrefix(authURL, authorizeURL+"?") {
		t.Errorf("AuthorizationURL() = %q, want %s prefix", authURL, authorizeURL)
	}
	for _, fragment := range []string{"client_id=test-client", "state=", "redirect_uri="} {
		if !strings.Contains(authURL, fragment) {
			t.Errorf("AuthorizationURL() = %q, missing %q", authURL, fragment)
		}
	}
}
