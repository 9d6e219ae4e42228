package dtos

import "github.com/justsurfingit/govconnect/internal/models"

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	UserType    string `json:"userType" binding:"required,oneof=student company"`
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileInput carries the editable profile fields of both user types.
// Fields that do not belong to the caller's type are ignored.
type ProfileInput struct {
	FullName   *string `json:"fullName" binding:"omitempty,max=100"`
	FatherName *string `json:"fatherName" binding:"omitempty,max=100"`
	MotherName *string `json:"motherName" binding:"omitempty,max=100"`
	College    *string `json:"college" binding:"omitempty,max=200"`
	Education  *string `json:"education" binding:"omitempty,max=200"`
	Interest   *string `json:"interest" binding:"omitempty,max=500"`
	LinkedIn   *string `json:"linkedIn" binding:"omitempty,url"`
	Github     *string `json:"github" binding:"omitempty,url"`

	CompanyName  *string `json:"companyName" binding:"omitempty,max=200"`
	Location     *string `json:"location" binding:"omitempty,max=200"`
	WorkType     *string `json:"workType" binding:"omitempty,oneof=On-site Hybrid Remote"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
	CompanyImage *string `json:"companyImage" binding:"omitempty,max=500"`
}

type ProfileUpdateRequest struct {
	Profile ProfileInput `json:"profile" binding:"required"`
}

type UserView struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	UserType string         `json:"userType"`
	Profile  models.Profile `json:"profile"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

func NewUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, UserType: u.UserType, Profile: u.Profile}
}
