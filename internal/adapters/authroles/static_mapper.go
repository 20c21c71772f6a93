// Package authroles maps backend roles and provider groups to application roles.
package authroles

import (
	"strings"

	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
)

// StaticRoleMapper grants admin to AdminRole and user to any other named role.
// An empty role list or an explicit "guest" yields guest.
type StaticRoleMapper struct {
	AdminRole string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	role := domainauth.RoleGuest
	for _, g := range groups {
		g = strings.TrimSpace(g)
		switch {
		case g == "":
			continue
		case m.AdminRole != "" && strings.EqualFold(g, m.AdminRole):
			return domainauth.RoleAdmin
		case strings.EqualFold(g, string(domainauth.RoleGuest)):
			continue
		default:
			role = domainauth.RoleUser
		}
	}
	return role
}
