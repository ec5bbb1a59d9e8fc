package scan

import "testing"

func TestCancelToken(t *testing.T) {
	tok := NewCancelToken()
	if tok.Cancelled() {
		t.Fatal("fresh token must not be cancelled")
	}
	tok.Cancel()
	if !tok.Cancelled() {
		t.Fatal("token must report cancelled after Cancel")
	}
	tok.Cancel() // idempotent
	if !tok.Cancelled() {
		t.Fatal("token must remain cancelled")
	}
}
