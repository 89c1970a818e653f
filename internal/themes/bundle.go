package themes

import "strings"

// Bundle holds the theme/trope/mood tags resolved for one movie reference.
type Bundle struct {
	Themes []string `json:"themes"`
	Tropes []string `json:"tropes"`
	Mood   []string `json:"mood"`
}

// IsEmpty reports whether the bundle carries no tags at all.
func (b Bundle) IsEmpty() bool {
	return len(b.Themes) == 0 && len(b.Tropes) == 0 && len(b.Mood) == 0
}

// Merge combines bundles into one, deduplicating tags case-insensitively
// while preserving first-seen order.
func Merge(bundles []Bundle) Bundle {
	var merged Bundle
	merged.Themes = mergeLists(bundles, func(b Bundle) []string { return b.Themes })
	merged.Tropes = mergeLists(bundles, func(b Bundle) []string { return b.Tropes })
	merged.Mood = mergeLists(bundles, func(b Bundle) []string { return b.Mood })
	return merged
}

func mergeLists(bundles []Bundle, pick func(Bundle) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, bundle := range bundles {
		for _, tag := range pick(bundle) {
			key := strings.ToLower(strings.TrimSpace(tag))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
