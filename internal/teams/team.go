// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package teams extracts team compositions from game-guide HTML tables.
//
// A team page holds one or more sections, each introduced by a heading and
// followed by tables. A table is either subgrouped (spanning banner rows
// such as "F2P", an optional role header, then member rows) or flat (a role
// header followed by one member row). Locator pairs headings with tables,
// Classify tags each row, and Walk runs the state machine that turns rows
// into Team and Membership records.
package teams

import (
	"fmt"
	"strings"

	"github.com/pdiddy/hsr-graph/internal/registry"
)

// Role is the functional slot a member occupies in a team.
type Role string

const (
	RoleDPS     Role = "DPS"
	RoleSupport Role = "Support"
	RoleSustain Role = "Sustain"
	RoleMember  Role = "Member"
)

// positionalRoles is the column convention for subgrouped tables.
var positionalRoles = []Role{RoleDPS, RoleSupport, RoleSupport, RoleSustain}

// PositionalRole returns the role for a zero-based column in a subgrouped
// table. Columns past the convention become Role_<column+1>.
func PositionalRole(col int) Role {
	if col < len(positionalRoles) {
		return positionalRoles[col]
	}
	return Role(fmt.Sprintf("Role_%d", col+1))
}

// HeaderRole maps role-header text to a role by case-insensitive
// substring match. Anything unrecognized is a generic member.
func HeaderRole(text string) Role {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "DPS"):
		return RoleDPS
	case strings.Contains(upper, "SUPPORT"):
		return RoleSupport
	case strings.Contains(upper, "SUSTAIN"):
		return RoleSustain
	default:
		return RoleMember
	}
}

// Team is one accepted team composition.
type Team struct {
	registry.Resolution

	// Page is the section label the team was found under.
	Page string
	// Subgroup is the banner text, empty for flat tables.
	Subgroup string
	// Index disambiguates teams sharing page and subgroup; 0 for the first.
	Index int
}

// Membership is a typed edge from a team to one member.
type Membership struct {
	// Team is the key of the owning team.
	Team string
	Role Role
	// Column is the zero-based source column.
	Column int
	Member registry.Resolution
}

// Shape describes which table layout the walker recognized.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeUnrecognized
	ShapeFlat
	ShapeSubgrouped
)

func (s Shape) String() string {
	switch s {
	case ShapeUnrecognized:
		return "unrecognized"
	case ShapeFlat:
		return "flat"
	case ShapeSubgrouped:
		return "subgrouped"
	default:
		return "empty"
	}
}

// Result is everything one table walk produced.
type Result struct {
	Page        string
	Shape       Shape
	Teams       []Team
	Memberships []Membership

	// Dropped counts member rows that no team accepted.
	Dropped int
	// EmptyCells counts member cells skipped for lack of link text.
	EmptyCells int
}

// MembershipsOf returns the memberships of the team with key, in column order.
func (r Result) MembershipsOf(key string) []Membership {
	var out []Membership
	for _, m := range r.Memberships {
		if m.Team == key {
			out = append(out, m)
		}
	}
	return out
}

// TeamLabel composes the display label of a team: "<page> — <subgroup>"
// (or just page), with " (<index>)" appended when index is positive.
func TeamLabel(page, subgroup string, index int) string {
	label := page
	if subgroup != "" {
		label = page + " — " + subgroup
	}
	if index > 0 {
		label = fmt.Sprintf("%s (%d)", label, index)
	}
	return label
}
