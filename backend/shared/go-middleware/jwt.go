package middleware

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer identifies the service that issues all editor access tokens.
const TokenIssuer = "Newsroom"

// IssueAccessToken signs an RS256 token for an editor, bound to the client IP
// the login came from.
func IssueAccessToken(
	privateKey *rsa.PrivateKey,
	editorID string,
	role string,
	clientIP string,
	ttl time.Duration,
	now time.Time,
) (string, error) {
	claims := jwt.MapClaims{
		"sub":  editorID,
		"role": role,
		"ip":   clientIP,
		"iss":  TokenIssuer,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
}

// ValidateToken checks the token's signature, standard claims and IP binding.
//
// Any deviation returns a descriptive error.
func ValidateToken(
	tokenString string,
	clientIP string,
	publicKey *rsa.PublicKey,
) (*jwt.Token, error) {

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	// ─── Standard claim checks ────────────────────────────────────────────────────
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}

	iss, ok := claims["iss"].(string)
	if !ok {
		return nil, errors.New("missing issuer claim")
	}
	if iss != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}

	// ─── IP binding ───────────────────────────────────────────────────────────────
	ipClaim, hasIP := claims["ip"].(string)
	if !hasIP {
		return nil, errors.New("missing IP claim in token")
	}
	if ipClaim != clientIP {
		return nil, errors.New("IP address mismatch")
	}

	return token, nil
}
