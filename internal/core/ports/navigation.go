package ports

import "time"

// Routes the access gate redirects to.
const (
	RouteLanding          = "/"
	RouteLogin            = "/login"
	RouteRegister         = "/register"
	RouteBookNow          = "/book-now"
	RouteUserAppointments = "/user-appointments"
	RouteAdmin            = "/admin"
	RouteLogout           = "/api/session/logout"
)

// NavItem is one entry of the header menu. Anchor is set for items that
// scroll to a section of the landing page.
type NavItem struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Anchor string `json:"anchor,omitempty"`
}

// Menu is the header composition for a session.
type Menu struct {
	Items         []NavItem `json:"items"`
	Authenticated bool      `json:"authenticated"`
	Admin         bool      `json:"admin"`
	DisplayName   string    `json:"display_name,omitempty"`
}

// Access is the requirement a view places on the session.
type Access int

const (
	AccessPublic Access = iota
	AccessUser
	AccessAdmin
)

// Decision is the gate's verdict for a view. When Allowed is false the
// caller must redirect to Redirect without rendering anything.
type Decision struct {
	Allowed  bool
	Redirect string
	// Intent is the path to resume after login; empty when none should be stored.
	Intent string
}

// LogoutOutcome tells the view what to show and where to go afterwards.
type LogoutOutcome struct {
	Message  string        `json:"message"`
	Delay    time.Duration `json:"-"`
	DelayMS  int64         `json:"delay_ms"`
	Redirect string        `json:"redirect"`
}
