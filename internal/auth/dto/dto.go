package dto

type RegisterDTO struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128,strongpwd"`
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	Detail      string `json:"detail"`
}

// UsageHint accompanies a freshly minted access token.
const UsageHint = "Use the access_token in the 'Authorization' header " +
	"in the format 'Bearer <token>' to access the API functions"
