package domain

// Session keys as persisted in the client key/value store.
const (
	KeyToken         = "token"
	KeyRole          = "role"
	KeyUserID        = "userId"
	KeyUsername      = "username"
	KeyEmail         = "email"
	KeyDashboardPath = "dashboardPath"
	KeyTheme         = "theme"
)

// SessionKeys lists the keys owned by an authenticated session. The theme
// preference is deliberately absent: it outlives logout.
var SessionKeys = []string{
	KeyToken,
	KeyRole,
	KeyUserID,
	KeyUsername,
	KeyEmail,
	KeyDashboardPath,
}

// SessionState is the authentication state of a client session.
type SessionState int

const (
	Unauthenticated SessionState = iota
	Authenticated
)

func (s SessionState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Session is the client-held record of the current authenticated user.
type Session struct {
	ID            string `json:"id"`
	Token         string `json:"-"`
	Role          Role   `json:"role"`
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Email         string `json:"email,omitempty"`
	DashboardPath string `json:"dashboard_path"`
	Theme         string `json:"theme,omitempty"`
}

// Login is what the backend hands back after a successful authentication.
type Login struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
