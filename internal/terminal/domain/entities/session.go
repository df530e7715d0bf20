package entities

import "time"

// Credentials - пара сохраненных токенов. Пустая строка означает отсутствие токена.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// HasAccessToken сообщает, есть ли токен доступа.
func (c Credentials) HasAccessToken() bool {
	return c.AccessToken != ""
}

// HasRefreshToken сообщает, есть ли refresh-токен.
func (c Credentials) HasRefreshToken() bool {
	return c.RefreshToken != ""
}

// TokenPair - ответ бэкенда на вход и обновление токенов.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionInfo описывает текущую сессию по данным /auth/me.
type SessionInfo struct {
	Role      Role      `json:"role"`
	SubjectID string    `json:"subjectId"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
