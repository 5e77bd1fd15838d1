package models

// LoginRequest запрос на вход администратора
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest создание администратора (используется утилитой createadmin)
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginResponse выданный токен и данные администратора
type LoginResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"` // секунды
}
