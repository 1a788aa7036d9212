package models

// CountWindow is the page size used for dashboard counts. A count equal to
// the window means "at least this many".
const CountWindow = 100

// Summary is the dashboard overview.
type Summary struct {
	Venues     int `json:"venues" example:"4"`
	Facilities int `json:"facilities" example:"23"`
	Bookings   int `json:"bookings" example:"100"`
	Users      int `json:"users" example:"57"`
	// Window is the page size the counts were taken with.
	Window int `json:"window" example:"100"`
} // @name DashboardSummary

// Capped reports whether n filled the whole count window.
func (s Summary) Capped(n int) bool {
	return s.Window > 0 && n >= s.Window
}
