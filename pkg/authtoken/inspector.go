// Package authtoken проверяет сохраненный bearer-токен перед обращением к API:
// истек ли он и какая у пользователя роль.
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("authtoken: token is invalid")
	ErrTokenExpired = errors.New("authtoken: token has expired")
)

type Claims struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type customClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Inspector разбирает JWT. С пустым секретом подпись не проверяется
// (её проверяет backend), но срок действия проверяется всегда.
type Inspector struct {
	secret []byte
	now    func() time.Time
}

func NewInspector(secret string) *Inspector {
	return &Inspector{secret: []byte(secret), now: time.Now}
}

func (i *Inspector) Inspect(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	claims := &customClaims{}
	if len(i.secret) > 0 {
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return i.secret, nil
		}, jwt.WithTimeFunc(i.now))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, ErrTokenExpired
			}
			return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
		}
		if claims.ExpiresAt != nil && !i.now().Before(claims.ExpiresAt.Time) {
			return nil, ErrTokenExpired
		}
	}

	out := &Claims{Subject: claims.UserID, Email: claims.Email, Role: claims.Role}
	if out.Subject == "" {
		out.Subject = claims.Subject
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// HasRole сообщает, входит ли роль из токена в список разрешенных.
func (c *Claims) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
