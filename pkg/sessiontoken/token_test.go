package sessiontoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCodecIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("top-secret", 3600)
	userID := uuid.New()

	token, err := codec.Issue(userID, Claims{Email: "user@example.com", Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %q, want user@example.com", claims.Email)
	}

	gotID, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id parse: %v", err)
	}
	if gotID != userID {
		t.Errorf("user id = %s, want %s", gotID, userID)
	}
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	codec := NewCodec("secret-a", 3600)
	token, err := codec.Issue(uuid.New(), Claims{})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewCodec("secret-b", 3600)
	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Errorf("verify with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	codec := NewCodec("secret", -1)
	token, err := codec.Issue(uuid.New(), Claims{})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	if _, err := codec.Verify(token); err != ErrInvalidToken {
		t.Errorf("verify expired = %v, want ErrInvalidToken", err)
	}
}

func TestCodecRejectsMalformedToken(t *testing.T) {
	codec := NewCodec("secret", 3600)
	if _, err := codec.Verify("not-a-jwt"); err != ErrInvalidToken {
		t.Errorf("verify malformed = %v, want ErrInvalidToken", err)
	}
}
