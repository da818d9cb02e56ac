package authpayload

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"
)

const testBotToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

func signPayload(t *testing.T, botToken string, fields map[string]string, authDate time.Time) string {
	t.Helper()

	fields["auth_date"] = strconv.FormatInt(authDate.Unix(), 10)

	pairs := make([]string, 0, len(fields))
	for k, v := range fields {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	keyMac := hmac.New(sha256.New, []byte("WebAppData"))
	keyMac.Write([]byte(botToken))
	secretKey := keyMac.Sum(nil)

	sigMac := hmac.New(sha256.New, secretKey)
	sigMac.Write([]byte(dataCheckString))
	hash := hex.EncodeToString(sigMac.Sum(nil))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

func TestVerifyAcceptsValidPayload(t *testing.T) {
	v := NewVerifier(testBotToken)
	raw := signPayload(t, testBotToken, map[string]string{
		"user":  `{"id":1,"first_name":"Jane"}`,
		"query_id": "AAHdF6IQAAAAAN0XohDhrOrc",
	}, time.Now())

	userJSON, err := v.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userJSON != `{"id":1,"first_name":"Jane"}` {
		t.Errorf("user json = %q", userJSON)
	}
}

func TestVerifyRejectsTamperedHash(t *testing.T) {
	v := NewVerifier(testBotToken)
	raw := signPayload(t, testBotToken, map[string]string{"user": `{"id":1}`}, time.Now())
	raw = strings.Replace(raw, "hash=", "hash=ff", 1)

	if _, err := v.Verify(raw); err != ErrBadSignature && err != ErrMissingHash {
		t.Errorf("verify tampered = %v, want signature mismatch", err)
	}
}

func TestVerifyRejectsWrongBotToken(t *testing.T) {
	v := NewVerifier("different-token")
	raw := signPayload(t, testBotToken, map[string]string{"user": `{"id":1}`}, time.Now())

	if _, err := v.Verify(raw); err != ErrBadSignature {
		t.Errorf("verify wrong token = %v, want ErrBadSignature", err)
	}
}

func TestVerifyRejectsExpiredAuthDate(t *testing.T) {
	v := NewVerifier(testBotToken)
	raw := signPayload(t, testBotToken, map[string]string{"user": `{"id":1}`}, time.Now().Add(-3601*time.Second))

	if _, err := v.Verify(raw); err != ErrPayloadExpired {
		t.Errorf("verify expired = %v, want ErrPayloadExpired", err)
	}
}

func TestVerifyAcceptsAuthDateAtBoundary(t *testing.T) {
	v := NewVerifier(testBotToken)
	raw := signPayload(t, testBotToken, map[string]string{"user": `{"id":1}`}, time.Now().Add(-3600*time.Second))

	if _, err := v.Verify(raw); err != nil {
		t.Errorf("verify boundary = %v, want nil", err)
	}
}

func TestVerifyRejectsOversizedPayload(t *testing.T) {
	v := NewVerifier(testBotToken)
	raw := strings.Repeat("a", maxPayloadLen+1)

	if _, err := v.Verify(raw); err != ErrPayloadTooLarge {
		t.Errorf("verify oversized = %v, want ErrPayloadTooLarge", err)
	}
}

func TestVerifyRejectsMissingHash(t *testing.T) {
	v := NewVerifier(testBotToken)
	if _, err := v.Verify("auth_date=1700000000&user=%7B%22id%22%3A1%7D"); err != ErrMissingHash {
		t.Errorf("verify missing hash = %v, want ErrMissingHash", err)
	}
}

func TestVerifyRejectsDisallowedCharacters(t *testing.T) {
	v := NewVerifier(testBotToken)
	raw := signPayload(t, testBotToken, map[string]string{"user": `{"id":1}`}, time.Now())
	raw += "\x01"

	if _, err := v.Verify(raw); err != ErrInvalidCharacters {
		t.Errorf("verify disallowed characters = %v, want ErrInvalidCharacters", err)
	}
}

func TestCheckTimestampWithinWindow(t *testing.T) {
	now := time.Now()
	ts := strconv.FormatInt(now.Add(-29*time.Second).Unix(), 10)
	if err := CheckTimestamp(ts, now); err != nil {
		t.Errorf("check timestamp within window: %v", err)
	}
}

func TestCheckTimestampOutsideWindow(t *testing.T) {
	now := time.Now()
	ts := strconv.FormatInt(now.Add(-31*time.Second).Unix(), 10)
	if err := CheckTimestamp(ts, now); err != ErrReplayed {
		t.Errorf("check timestamp outside window = %v, want ErrReplayed", err)
	}
}
