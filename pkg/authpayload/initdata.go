// Package authpayload verifies the signed init-data payload a client sends
// on every request, and guards against replay via a coarse timestamp
// window. The algorithm is the two-layer HMAC-SHA256 scheme: a secret key
// derived once from the bot token, then used to sign the sorted
// key=value pairs of the payload itself.
package authpayload

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// maxPayloadLen bounds the raw init-data string before it is even
	// parsed, so a hostile caller can't force large allocations.
	maxPayloadLen = 1024

	// maxAuthAge is how long a signed payload remains acceptable after
	// its own auth_date claim.
	maxAuthAge = 3600 * time.Second

	// replayWindow bounds the clock skew tolerated between the
	// x-timestamp header and the server's own clock.
	replayWindow = 30 * time.Second
)

var (
	ErrPayloadTooLarge   = errors.New("authpayload: payload exceeds maximum length")
	ErrInvalidCharacters = errors.New("authpayload: payload contains disallowed characters")
	ErrMissingHash       = errors.New("authpayload: payload missing hash field")
	ErrBadSignature      = errors.New("authpayload: signature mismatch")
	ErrMissingAuthDate   = errors.New("authpayload: payload missing or invalid auth_date")
	ErrPayloadExpired    = errors.New("authpayload: payload auth_date too old")
	ErrReplayed          = errors.New("authpayload: timestamp outside replay window")
)

// Verifier checks init-data payloads against a bot-token-derived secret.
type Verifier struct {
	secretKey []byte
}

// NewVerifier derives the verification key once at construction, the way
// a lazily-initialized static would in a long-running process.
func NewVerifier(botToken string) *Verifier {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return &Verifier{secretKey: mac.Sum(nil)}
}

// Verify checks raw (a URL-decoded init-data query string) against the
// bot-token-derived key and returns the "user" field's raw JSON value on
// success. Control characters are stripped from each value before the
// data-check string is built; the character predicate keeps the reference
// implementation's '&' and '=' clause even though it is redundant.
func (v *Verifier) Verify(raw string) (userJSON string, err error) {
	if len(raw) > maxPayloadLen {
		return "", ErrPayloadTooLarge
	}
	if !isAllowedPayload(raw) {
		return "", ErrInvalidCharacters
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", fmt.Errorf("authpayload: parse payload: %w", err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return "", ErrMissingHash
	}

	authDateStr := values.Get("auth_date")
	authDateUnix, err := strconv.ParseInt(authDateStr, 10, 64)
	if err != nil {
		return "", ErrMissingAuthDate
	}
	if time.Now().Unix()-authDateUnix > int64(maxAuthAge/time.Second) {
		return "", ErrPayloadExpired
	}

	pairs := make([]string, 0, len(values))
	for key, vals := range values {
		if key == "hash" {
			continue
		}
		for _, val := range vals {
			pairs = append(pairs, key+"="+sanitize(val))
		}
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	mac := hmac.New(sha256.New, v.secretKey)
	mac.Write([]byte(dataCheckString))
	computed := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computed), []byte(strings.ToLower(hash))) {
		return "", ErrBadSignature
	}

	return values.Get("user"), nil
}

// isAllowedPayload rejects the whole raw payload up front when any byte
// falls outside the reference implementation's character class, mirroring
// its pre-parse guard rather than silently dropping bad bytes later.
func isAllowedPayload(s string) bool {
	for _, c := range s {
		if c == '&' || c == '=' {
			continue
		}
		if c < 0x20 || c >= 0x7f {
			return false
		}
	}
	return true
}

// sanitize strips control characters from a value before it enters the
// data-check string. The '&'/'=' clause is carried over from the reference
// filter for parity; it is redundant, since both characters already pass
// the control-character test.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if !((c >= 0x20 && c != 0x7f) || c == '&' || c == '=') {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// CheckTimestamp enforces the replay guard on the x-timestamp header,
// independent of and in addition to the payload's own auth_date.
func CheckTimestamp(headerValue string, now time.Time) error {
	ts, err := strconv.ParseInt(headerValue, 10, 64)
	if err != nil {
		return fmt.Errorf("authpayload: parse timestamp header: %w", err)
	}
	delta := now.Sub(time.Unix(ts, 0))
	if delta < 0 {
		delta = -delta
	}
	if delta > replayWindow {
		return ErrReplayed
	}
	return nil
}
