package store

import "sort"

// ReconcileTags compares the tag names currently linked to a post with a
// submitted list. unlink holds names only in current, link holds names only in
// submitted. Both are sorted and free of duplicates, so the order of either
// input does not matter.
func ReconcileTags(current, submitted []string) (unlink, link []string) {
	have := set(current)
	want := set(submitted)

	for name := range have {
		if !want[name] {
			unlink = append(unlink, name)
		}
	}
	for name := range want {
		if !have[name] {
			link = append(link, name)
		}
	}
	sort.Strings(unlink)
	sort.Strings(link)
	return unlink, link
}

// Dedupe returns names without repeats, keeping first occurrences in order.
func Dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func set(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
