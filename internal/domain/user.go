package domain

// User 当前登录的员工
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	RestaurantID string `json:"restaurant_id,omitempty"`
}

// Session 用户 + bearer token
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
