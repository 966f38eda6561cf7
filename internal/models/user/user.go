package user

// User is the account cached next to the session token. The backend's
// nickname is exposed as Handle.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Handle string `json:"nickname"`
	Role   string `json:"role"`
}

const RoleAdmin = "ADMIN"

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName prefers the handle, then the name, then the email.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.Handle != "":
		return u.Handle
	case u.Name != "":
		return u.Name
	}
	return u.Email
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration body. ConfirmPassword is checked
// locally and never sent.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Nickname        string `json:"nickname"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}
