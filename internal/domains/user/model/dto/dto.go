package dto

import (
	"strings"

	"litrato/internal/domains/user/model"
	"litrato/shared"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	gModel "litrato/shared/model"
	"litrato/shared/timezone"

	"github.com/google/uuid"
)

// CreateUserRequest is used by admins to open staff and admin accounts.
// Customers sign themselves up through the auth endpoints.
type CreateUserRequest struct {
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	Level    string  `json:"level"               validate:"omitempty,oneof=admin staff customer"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,max=20"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	level := r.Level
	if level == "" {
		level = constant.RoleStaff
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Level:    level,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Level     string  `json:"level"`
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	LastLogin string  `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Active = model.Active

	if model.LastLogin != nil {
		r.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	Level    *string `db:"level"     json:"level,omitempty"     validate:"omitempty,oneof=admin staff customer"`
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,max=20"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

// UpdateProfileRequest is what users may change about themselves.
type UpdateProfileRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,max=20"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
