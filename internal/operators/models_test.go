package operators

import "testing"

func TestIsValidRole(t *testing.T) {
	for role, want := range map[string]bool{
		"OWNER": true,
		"STAFF": true,
		"staff": false,
		"ADMIN": false,
		"":      false,
	} {
		if got := IsValidRole(role); got != want {
			t.Errorf("IsValidRole(%q) = %v, want %v", role, got, want)
		}
	}
}
