package userservice

// User модель пользователя из UserService
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"` // student, mentor, admin
	IsActive  bool   `json:"is_active"`
}

// HasRole проверяет роль пользователя
func (u *User) HasRole(role string) bool {
	return u.Role == role
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
