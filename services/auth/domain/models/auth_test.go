package models

import "testing"

func TestUserProfile_IsAdmin(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  bool
	}{
		{"admin", []string{"MEMBER", RoleAdmin}, true},
		{"super admin", []string{RoleSuperAdmin}, true},
		{"venue admin only", []string{"VENUE_ADMIN"}, false},
		{"member", []string{"MEMBER"}, false},
		{"no roles", nil, false},
		{"case sensitive", []string{"admin"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (UserProfile{Roles: tt.roles}).IsAdmin(); got != tt.want {
				t.Fatalf("IsAdmin(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestUserProfile_FullName(t *testing.T) {
	tests := []struct {
		p    UserProfile
		want string
	}{
		{UserProfile{FirstName: "Dana", LastName: "Reyes"}, "Dana Reyes"},
		{UserProfile{FirstName: "Dana"}, "Dana"},
		{UserProfile{LastName: "Reyes"}, "Reyes"},
		{UserProfile{}, ""},
	}
	for _, tt := range tests {
		if got := tt.p.FullName(); got != tt.want {
			t.Errorf("FullName() = %q, want %q", got, tt.want)
		}
	}
}
