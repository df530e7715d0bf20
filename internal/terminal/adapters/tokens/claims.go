// Package tokens читает утверждения из JWT, выданных бэкендом.
// Подпись не проверяется: терминал не владеет ключом, а результат
// используется только для локального отображения сессии и телеметрии.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"posterminal/internal/terminal/domain/entities"
)

// Ошибки разбора токена.
var (
	ErrEmptyToken     = errors.New("token is empty")
	ErrMalformedToken = errors.New("token is malformed")
)

// Claims - утверждения токена доступа бэкенда.
type Claims struct {
	Role     entities.Role `json:"role"`
	Username string        `json:"username"`
	jwt.RegisteredClaims
}

// Peek разбирает токен без проверки подписи.
func Peek(token string) (*entities.SessionInfo, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	info := &entities.SessionInfo{
		Role:      claims.Role,
		SubjectID: claims.Subject,
		Username:  claims.Username,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// ExpiresIn возвращает время до истечения токена относительно now.
// Нулевое значение без ошибки означает, что срок не указан.
func ExpiresIn(token string, now time.Time) (time.Duration, error) {
	info, err := Peek(token)
	if err != nil {
		return 0, err
	}
	if info.ExpiresAt.IsZero() {
		return 0, nil
	}
	return info.ExpiresAt.Sub(now), nil
}

// Issue подписывает токен с указанными утверждениями алгоритмом HS256.
// Используется тестовыми бэкендами и локальным режимом разработки.
func Issue(secret []byte, subject, username string, role entities.Role, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		Role:     role,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			ID:        fmt.Sprintf("%s-%d", subject, issuedAt.UnixNano()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
