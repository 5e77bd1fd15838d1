package auth

import "errors"

var (
	// ErrInvalidCredentials неверный email или пароль (не уточняем, что именно)
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken токен не прошёл проверку подписи, истёк или повреждён
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrEmailTaken администратор с таким email уже существует
	ErrEmailTaken = errors.New("admin with this email already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
