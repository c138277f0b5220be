package finance

import (
	"testing"

	"github.com/arefin-dev/messwallet/internal/models"
)

func member(name string, role models.Role, pos int) models.Member {
	return models.Member{FullName: name, Role: role, SerialPosition: pos}
}

func assertOrder(t *testing.T, members []models.Member, want []string) {
	t.Helper()
	if len(members) != len(want) {
		t.Fatalf("got %d members, want %d", len(members), len(want))
	}
	for i, name := range want {
		if members[i].FullName != name {
			t.Errorf("position %d: got %q, want %q", i, members[i].FullName, name)
		}
	}
}

func TestSortMembers(t *testing.T) {
	t.Run("founder always first regardless of position", func(t *testing.T) {
		members := []models.Member{
			member("bob", models.RoleMember, 1),
			member("founder", models.RoleFounder, 50),
			member("alice", models.RoleMember, 2),
		}
		SortMembers(members)
		assertOrder(t, members, []string{"founder", "bob", "alice"})
	})

	t.Run("ascending serial position", func(t *testing.T) {
		members := []models.Member{
			member("third", models.RoleMember, 3),
			member("first", models.RoleMember, 1),
			member("second", models.RoleTertiaryAdmin, 2),
		}
		SortMembers(members)
		assertOrder(t, members, []string{"first", "second", "third"})
	})

	t.Run("unset position sorts last among non-founders", func(t *testing.T) {
		members := []models.Member{
			member("unpositioned", models.RoleMember, 0),
			member("positioned", models.RoleMember, 7),
		}
		SortMembers(members)
		assertOrder(t, members, []string{"positioned", "unpositioned"})
	})

	t.Run("position ties fall back to role priority", func(t *testing.T) {
		members := []models.Member{
			member("plain", models.RoleMember, 0),
			member("tertiary", models.RoleTertiaryAdmin, 0),
			member("secondary", models.RoleSecondaryAdmin, 0),
		}
		SortMembers(members)
		assertOrder(t, members, []string{"secondary", "tertiary", "plain"})
	})
}
