package models

// Role is the access level of an ops API operator.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDispatcher Role = "dispatcher"
	RoleViewer     Role = "viewer"
)

// Claims holds the validated identity extracted from a JWT.
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// CanDispatch reports whether the role may mutate fleet state.
func (c *Claims) CanDispatch() bool {
	return c.Role == RoleAdmin || c.Role == RoleDispatcher
}

// TokenRequest is the login payload of the ops API.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries an issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}
