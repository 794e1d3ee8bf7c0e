package jwt

import (
	"errors"
	"fmt"
	jwtGo "github.com/golang-jwt/jwt/v5"
	"time"
)

const tokenTypeAccess = "access"

var (
	ErrInvalidToken = errors.New("invalid or expired access token")
	ErrWrongType    = errors.New("token is not an access token")
)

// Claims is what the service needs from an access token.
type Claims struct {
	UserID int64
	Email  string
}

// NewAccessToken signs an HS256 access token carrying uid and email.
func NewAccessToken(userID int64, email, secret string, ttl time.Duration) (string, error) {
	token := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, jwtGo.MapClaims{
		"uid":   userID,
		"email": email,
		"typ":   tokenTypeAccess,
		"exp":   time.Now().Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature, expiry and token type.
func ParseAccessToken(tokenString, secret string) (Claims, error) {
	token, err := jwtGo.ParseWithClaims(tokenString, jwtGo.MapClaims{}, func(token *jwtGo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtGo.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwtGo.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if typ, ok := claims["typ"].(string); !ok || typ != tokenTypeAccess {
		return Claims{}, ErrWrongType
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("%w: uid claim missing", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)

	return Claims{UserID: int64(uid), Email: email}, nil
}
