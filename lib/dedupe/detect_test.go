// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package dedupe

import (
	"math/rand/v2"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func set(names ...string) map[string]struct{} {
	result := make(map[string]struct{}, len(names))
	for _, name := range names {
		result[name] = struct{}{}
	}
	return result
}

func TestFindDuplicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		members []string
		want    map[string]struct{}
	}{
		{
			name:    "incremented final character keeps first",
			members: []string{"stdafx.o", "stdafy.o", "stdafz.o"},
			want:    set("stdafy.o", "stdafz.o"),
		},
		{
			name:    "unsorted input",
			members: []string{"stdafz.o", "stdafx.o", "stdafy.o"},
			want:    set("stdafy.o", "stdafz.o"),
		},
		{
			name:    "shared prefix with different length",
			members: []string{"foo.o", "foobar.o"},
			want:    set(),
		},
		{
			name:    "blank entry skipped",
			members: []string{"a.o", "", "a.o"},
			want:    set(),
		},
		{
			name:    "single character stems never roots",
			members: []string{"a.o", "b.o"},
			want:    set(),
		},
		{
			name:    "two character stems",
			members: []string{"ab.o", "ac.o", "b.o"},
			want:    set("ac.o"),
		},
		{
			name:    "independent groups",
			members: []string{"engine.o", "enginf.o", "mixer.o", "mixes.o", "voice.o"},
			want:    set("enginf.o", "mixes.o"),
		},
		{
			name:    "same length name sharing truncated root",
			members: []string{"stream1.o", "stream2.o", "streamer.o"},
			want:    set("stream2.o"),
		},
		{
			name:    "names without object suffix",
			members: []string{"__.SYMDEF", "__.SYMDEG"},
			want:    set("__.SYMDEG"),
		},
		{
			name:    "empty listing",
			members: nil,
			want:    set(),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := FindDuplicates(test.members)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("FindDuplicates(%q) = %v, want %v", test.members, got, test.want)
			}
		})
	}
}

func TestFindDuplicates_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	members := []string{"stdafz.o", "stdafx.o"}
	FindDuplicates(members)
	if members[0] != "stdafz.o" || members[1] != "stdafx.o" {
		t.Errorf("input reordered: %q", members)
	}
}

// randomMembers builds a member listing from a small alphabet so that
// prefix collisions are frequent.
func randomMembers(random *rand.Rand) []string {
	count := random.IntN(12)
	members := make([]string, count)
	for i := range members {
		if random.IntN(10) == 0 {
			continue // blank entry
		}
		length := 1 + random.IntN(5)
		var builder strings.Builder
		for range length {
			builder.WriteByte("abc"[random.IntN(3)])
		}
		builder.WriteString(".o")
		members[i] = builder.String()
	}
	return members
}

// naiveDuplicates restates the rule without relying on sorted names
// sharing a prefix being adjacent: every later name is checked.
func naiveDuplicates(members []string) map[string]struct{} {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	result := make(map[string]struct{})
	for i, root := range sorted {
		prefix, ok := commonRoot(root)
		if !ok {
			continue
		}
		for _, candidate := range sorted[i+1:] {
			if strings.HasPrefix(candidate, prefix) && len(candidate) == len(root) {
				result[candidate] = struct{}{}
			}
		}
	}
	return result
}

func TestFindDuplicates_Properties(t *testing.T) {
	t.Parallel()

	random := rand.New(rand.NewPCG(1, 2))
	for iteration := range 2000 {
		members := randomMembers(random)
		duplicates := FindDuplicates(members)

		if !reflect.DeepEqual(duplicates, naiveDuplicates(members)) {
			t.Fatalf("iteration %d: FindDuplicates(%q) = %v, want %v",
				iteration, members, duplicates, naiveDuplicates(members))
		}

		// Only names from the input are marked, never blanks.
		present := set(members...)
		for name := range duplicates {
			if name == "" {
				t.Fatalf("iteration %d: blank name marked in %q", iteration, members)
			}
			if _, ok := present[name]; !ok {
				t.Fatalf("iteration %d: %q marked but not in input %q", iteration, name, members)
			}
		}

		// The lexicographically smallest non-blank name is never marked,
		// unless it appears twice and the later copy matches itself.
		if !hasRepeats(members) {
			sorted := append([]string(nil), members...)
			sort.Strings(sorted)
			for _, name := range sorted {
				if name == "" {
					continue
				}
				if _, marked := duplicates[name]; marked {
					t.Fatalf("iteration %d: smallest name %q marked in %q", iteration, name, members)
				}
				break
			}
		}

		// Removing the duplicates leaves nothing to remove.
		remaining := removeAll(members, duplicates)
		if again := FindDuplicates(remaining); len(again) != 0 {
			t.Fatalf("iteration %d: second pass over %q found %v", iteration, remaining, again)
		}
	}
}

func removeAll(members []string, names map[string]struct{}) []string {
	var remaining []string
	for _, member := range members {
		if _, ok := names[member]; !ok {
			remaining = append(remaining, member)
		}
	}
	return remaining
}

func hasRepeats(members []string) bool {
	seen := make(map[string]bool)
	for _, member := range members {
		if member != "" && seen[member] {
			return true
		}
		seen[member] = true
	}
	return false
}
