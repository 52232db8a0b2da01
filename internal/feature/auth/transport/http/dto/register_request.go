// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /api/auth/register endpoint.
// It uses Gin's binding tags for validation (required fields, email format,
// gender enumeration).
type RegisterReq struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Country      string `json:"country" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Gender       string `json:"gender" binding:"required,oneof=Male Female Other"`
}
