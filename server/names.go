// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/finnbear/moderation"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameLength = 24

// Brackets are used in formatting, * in censoring.
var nameRemovals = strings.NewReplacer("(", "", ")", "", "[", "", "]", "", "{", "", "}", "", "*", "")

// sanitizeName makes a body name safe to show to viewers. Inappropriate names
// are censored, or rejected if they are too bad to censor.
func sanitizeName(name string) (string, bool) {
	if !utf8.ValidString(name) {
		return "", false
	}

	name = nameRemovals.Replace(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, name)

	// NOTE: U+2800 and U+200B are not detected by unicode.IsSpace() but show up as blank
	name = strings.TrimFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == 0x2800 || r == 0x200B
	})

	// Too long but can resize down
	if len(name) > maxNameLength {
		var builder strings.Builder
		for _, r := range name {
			if builder.Len()+utf8.RuneLen(r) > maxNameLength {
				break
			}
			builder.WriteRune(r)
		}
		name = strings.TrimRightFunc(builder.String(), unicode.IsSpace)
	}

	if name == "" {
		return "", false
	}

	result := moderation.Scan(name)
	if result.Is(moderation.Inappropriate) {
		if result.Is(moderation.Inappropriate & moderation.Moderate) {
			return "", false
		}
		name, _ = moderation.Censor(name, moderation.Inappropriate)
	}

	return name, true
}
