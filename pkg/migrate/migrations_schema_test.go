package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FamilyDinnerTime/backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestInitSchemaContainsUniqueConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CONSTRAINT uq_users_username UNIQUE (username)",
		"CONSTRAINT uq_users_email UNIQUE (email)",
		"CONSTRAINT uq_roles_name UNIQUE (name)",
		"CONSTRAINT uq_group_memberships_group_user UNIQUE (group_id, user_id)",
		"CONSTRAINT uq_dish_ingredients_dish_ingredient UNIQUE (dish_id, ingredient_id)",
		"CONSTRAINT uq_dish_steps_dish_step UNIQUE (dish_id, step_id)",
		"CONSTRAINT uq_voting_options_voting_dish UNIQUE (menu_id, dish_id)",
		"CHECK (quantity > 0)",
		"CHECK (step_number > 0)",
		"DROP TABLE IF EXISTS voting_options",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
