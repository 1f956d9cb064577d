package enums

import "testing"

func TestRoleNameIsValid(t *testing.T) {
	if !RoleUser.IsValid() {
		t.Fatal("ROLE_USER should be valid")
	}
	if !RoleAdmin.IsValid() {
		t.Fatal("ROLE_ADMIN should be valid")
	}
	if RoleName("ROLE_CHEF").IsValid() {
		t.Fatal("unknown role should be invalid")
	}
}

func TestParseRoleName(t *testing.T) {
	role, err := ParseRoleName("ROLE_ADMIN")
	if err != nil {
		t.Fatalf("parse role: %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("expected ROLE_ADMIN, got %s", role)
	}

	if _, err := ParseRoleName("nonsense"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
