package dto

import (
	"strings"
	"time"

	"litrato/infras/jwt"
	userModel "litrato/internal/domains/user/model"
	"litrato/shared/constant"
	gModel "litrato/shared/model"
	"litrato/shared/timezone"

	"github.com/google/uuid"
)

// RegisterRequest signs up a customer. The phone number is the one staff
// call on the event day.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Phone    string `json:"phone"     validate:"required,max=20"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Level:    constant.RoleCustomer,
		FullName: &r.FullName,
		Phone:    &r.Phone,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ContextGuest,
			ModifiedBy: constant.ContextGuest,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

// TokenResponse is returned by login and refresh alike.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

func (r *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair, role string) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
	r.Role = role
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
