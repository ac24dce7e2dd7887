package dto

type RegisterDTO struct {
	FullName string `form:"fullname" json:"fullname" validate:"required"`
	Email    string `form:"email"    json:"email"    validate:"required,email"`
	Username string `form:"username" json:"username" validate:"required,alphanum,min=3,max=20"`
	Password string `form:"password" json:"password" validate:"required,strongpwd"`
}

// LoginDTO carries the identifier as either username or email; at least
// one must be present. Checked in the service, not by tag, to keep the
// reported failure a 400 rather than a per-field validation error.
type LoginDTO struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strongpwd"`
}

type UpdateAccountDTO struct {
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}
