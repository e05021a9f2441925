package domain

import "time"

// Role identifies which kind of account a session belongs to. The backend
// keys several endpoint families off this value.
type Role string

const (
	RoleFarmer  Role = "farmer"
	RoleExpert  Role = "expert"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleExpert, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// UserData is the role-tagged profile payload the backend returns at login.
type UserData struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	UserType     Role   `json:"userType"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Session is the client-held record of the current authenticated identity.
// At most one exists per client; presence implies User.UserType is set.
type Session struct {
	Token          string    `json:"token"`
	User           UserData  `json:"user"`
	RememberMe     bool      `json:"rememberMe"`
	LastActivityAt time.Time `json:"lastActivityAt"`
}

// AdminSession is the parallel admin credential. It carries a bare token,
// never refreshes, and lives in its own storage namespace so the two
// authentication domains cannot be conflated.
type AdminSession struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	AdminName string    `json:"adminName,omitempty"`
}
