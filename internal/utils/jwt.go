package utils // package utils provides helper functions for viewer token creation

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ViewerToken represents a signed JWT identifying one browsing viewer
// along with its expiry.  The surrounding platform issues tokens for
// logged-in buyers; guest viewers get one from the guest endpoint so
// holds and self-hold normalization still have a stable identity to
// compare against.
type ViewerToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewViewerToken builds and signs an HS256 JWT whose subject is the
// viewer id.  The JWT includes the standard claims: subject (sub),
// expiration (exp) and issued at (iat).
func NewViewerToken(secret, viewerID string, ttlMin int) (ViewerToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": viewerID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return ViewerToken{}, err
    }
    return ViewerToken{Token: signed, Exp: exp}, nil
}
