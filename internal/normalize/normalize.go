// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns display text into stable entity keys.
// Every ingester (teams, characters, light cones, relics) derives keys
// through Key so the same display name always lands on the same entity.
package normalize

import (
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[^0-9A-Za-z_]`)
	underscores = regexp.MustCompile(`_+`)
)

// Key returns the normalized identifier fragment for text. It strips a
// leading "The ", maps "%" to "_percent", replaces anything outside
// [0-9A-Za-z_] with "_", collapses underscore runs and trims underscores
// from both ends. Empty input yields "".
func Key(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "The "))
	s = strings.ReplaceAll(s, "%", "_percent")
	s = unsafeChars.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
