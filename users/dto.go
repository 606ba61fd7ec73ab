package users

// SignupRequest represents the registration request payload. The username is
// an email-shaped identity key; all fields are required.
type SignupRequest struct {
	Username  string `json:"username" validate:"required,email,min=3,max=30" example:"user@example.com"`
	Password  string `json:"password" validate:"required,min=6" example:"strongpassword123"`
	FirstName string `json:"firstName" validate:"required,max=50" example:"John"`
	LastName  string `json:"lastName" validate:"required,max=50" example:"Doe"`
}

// SigninRequest represents the login request payload.
type SigninRequest struct {
	Username string `json:"username" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// UpdateRequest represents a partial profile update. Pointers distinguish
// "field absent" from "field set"; a nil field is left untouched. There is no
// at-least-one-field requirement. Username and id are never updatable.
type UpdateRequest struct {
	Password  *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=50"`
}

// TokenResponse is returned on successful registration or signin.
type TokenResponse struct {
	Message string `json:"message,omitempty" example:"User created successfully"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// MessageResponse is a generic confirmation payload.
type MessageResponse struct {
	Message string `json:"message" example:"Updated successfully"`
}

// UserSummary is the public projection of a user returned by search.
// It deliberately carries no password field.
type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SearchResponse wraps the search results.
type SearchResponse struct {
	User []UserSummary `json:"user"`
}
