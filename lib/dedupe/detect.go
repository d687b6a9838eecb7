// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package dedupe

import (
	"sort"
	"strings"
)

// minimumStemLength is the shortest stem (member name without ".o")
// that can act as a duplicate root. A one-character stem truncates to
// an empty root, which every other name would match.
const minimumStemLength = 2

// FindDuplicates returns the member names to remove so that one member
// remains per logical object.
//
// Names are sorted, then each non-empty name in turn is a root: its
// stem with the final character dropped. Every later sorted name that
// starts with that root and has the same total length as the root's
// name is marked. The lexicographically first name of a group is never
// marked by the group itself. Blank names are never roots and never
// match. Names with a stem shorter than two characters are never
// roots.
func FindDuplicates(memberNames []string) map[string]struct{} {
	sorted := append([]string(nil), memberNames...)
	sort.Strings(sorted)

	duplicates := make(map[string]struct{})
	for i, name := range sorted {
		root, ok := commonRoot(name)
		if !ok {
			continue
		}
		for j := i + 1; j < len(sorted) && strings.HasPrefix(sorted[j], root); j++ {
			if len(sorted[j]) == len(name) {
				duplicates[sorted[j]] = struct{}{}
			}
		}
	}
	return duplicates
}

// commonRoot strips ".o" and then the final character from name.
// Returns false for names that cannot act as a root.
func commonRoot(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	stem := strings.TrimSuffix(name, ".o")
	if len(stem) < minimumStemLength {
		return "", false
	}
	return stem[:len(stem)-1], true
}
