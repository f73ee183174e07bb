package models

// CredentialsRequest carries a username and password. It is the request body
// for login, account creation, and password updates.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate returns field errors for missing credentials.
func (r *CredentialsRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required", Code: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required", Code: "required"})
	}
	return errs
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
