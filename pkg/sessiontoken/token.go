// Package sessiontoken issues and verifies the signed session token a
// client presents after completing the OAuth exchange. Unlike the
// access/refresh pair the gateway's habit-tracker ancestor used, a session
// here is a single HS256 token carrying the full identity claim set; it is
// re-issued wholesale on the next login rather than refreshed in place.
package sessiontoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims mirrors the fields an OAuth userinfo response carries, so the
// codec needs no separate user-fetch to answer "who is this".
type Claims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned for any parse, signature, or expiry failure;
// callers don't need to distinguish the cause beyond "reject the request".
var ErrInvalidToken = errors.New("sessiontoken: invalid or expired token")

// Codec signs and verifies session tokens with a single shared secret.
type Codec struct {
	secret []byte
	expiry time.Duration
}

func NewCodec(secret string, expirySeconds int64) *Codec {
	return &Codec{secret: []byte(secret), expiry: time.Duration(expirySeconds) * time.Second}
}

// Issue signs a new token for the given user id and claim set.
func (c *Codec) Issue(userID uuid.UUID, claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
		Issuer:    "lingua-gateway",
	}
	// Claims.Subject shares the "sub" JSON key with the embedded
	// RegisteredClaims.Subject and shadows it, so it must carry the id too.
	claims.Subject = userID.String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses and validates a token, returning its claims.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserID parses the subject claim back into the internal user id.
func (claims *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(claims.Subject)
}

// VerifyUserID validates tokenString and returns the internal user id its
// subject claim carries. This is the signature the gateway's bearer-token
// middleware drives; callers needing the full claim set call Verify
// directly.
func (c *Codec) VerifyUserID(tokenString string) (uuid.UUID, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return uuid.UUID{}, err
	}
	return claims.UserID()
}

// GoogleUserInfo is the subset of Google's userinfo response
// ClaimsFromGoogleUser needs; kept minimal so pkg/sessiontoken doesn't
// depend on the oauth package.
type GoogleUserInfo struct {
	Email      string
	Name       string
	GivenName  string
	FamilyName string
	Picture    string
}

// ClaimsFromGoogleUser builds the claim set a session token carries after
// a successful OAuth exchange, mirroring the original implementation's
// GoogleUser claim-set builder.
func ClaimsFromGoogleUser(u GoogleUserInfo) Claims {
	return Claims{
		Email:      u.Email,
		Name:       u.Name,
		GivenName:  u.GivenName,
		FamilyName: u.FamilyName,
		Picture:    u.Picture,
	}
}
