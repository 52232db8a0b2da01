package dto

import "task_backend/internal/feature/auth/domain/entity"

// MessageResponse is the generic single-message response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse carries the public user fields. The password hash and
// reset-token state are never serialized.
type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Country      string `json:"country"`
	City         string `json:"city"`
	State        string `json:"state"`
	Gender       string `json:"gender"`
}

// AuthResponse is returned on successful register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse maps a user entity onto its public representation.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		Country:      u.Country,
		City:         u.City,
		State:        u.State,
		Gender:       u.Gender,
	}
}
