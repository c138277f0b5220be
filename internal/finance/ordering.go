package finance

import (
	"sort"

	"github.com/arefin-dev/messwallet/internal/models"
)

// UnsetSerialPosition stands in for a missing serial position; it sorts
// unpositioned members after every manually-positioned one.
const UnsetSerialPosition = 999

// SortMembers orders the member list for display: founder first, then
// ascending serial position (unset treated as 999), ties broken by role
// priority.
func SortMembers(members []models.Member) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]

		if a.Role == models.RoleFounder {
			return b.Role != models.RoleFounder
		}
		if b.Role == models.RoleFounder {
			return false
		}

		ap, bp := effectivePosition(a.SerialPosition), effectivePosition(b.SerialPosition)
		if ap != bp {
			return ap < bp
		}

		return a.Role.Priority() < b.Role.Priority()
	})
}

func effectivePosition(pos int) int {
	if pos <= 0 {
		return UnsetSerialPosition
	}
	return pos
}
