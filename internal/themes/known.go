package themes

// knownTitles maps well-known movie and show titles (lowercased) to
// hand-curated bundles, used when the metadata service has no match or is
// unavailable.
var knownTitles = map[string]Bundle{
	"inception": {
		Themes: []string{"dreams", "reality", "grief"},
		Tropes: []string{"heist", "mind bending", "nested narrative"},
		Mood:   []string{"cerebral", "tense"},
	},
	"spirited away": {
		Themes: []string{"coming of age", "spirit world", "courage"},
		Tropes: []string{"hidden world", "found family"},
		Mood:   []string{"whimsical", "atmospheric"},
	},
	"the grand budapest hotel": {
		Themes: []string{"friendship", "nostalgia", "lost worlds"},
		Tropes: []string{"caper", "mentor and protege"},
		Mood:   []string{"whimsical", "bittersweet"},
	},
	"blade runner": {
		Themes: []string{"identity", "humanity", "memory"},
		Tropes: []string{"dystopia", "noir detective"},
		Mood:   []string{"moody", "atmospheric"},
	},
	"knives out": {
		Themes: []string{"family secrets", "inheritance", "justice"},
		Tropes: []string{"whodunit", "eccentric detective", "locked room"},
		Mood:   []string{"witty", "twisty"},
	},
	"arrival": {
		Themes: []string{"language", "time", "loss"},
		Tropes: []string{"first contact", "nonlinear narrative"},
		Mood:   []string{"contemplative", "melancholy"},
	},
	"the princess bride": {
		Themes: []string{"true love", "adventure", "storytelling"},
		Tropes: []string{"fairy tale", "swashbuckler", "framing device"},
		Mood:   []string{"charming", "funny"},
	},
	"pride and prejudice": {
		Themes: []string{"class", "love", "first impressions"},
		Tropes: []string{"enemies to lovers", "slow burn"},
		Mood:   []string{"romantic", "witty"},
	},
	"howl's moving castle": {
		Themes: []string{"war", "transformation", "self acceptance"},
		Tropes: []string{"curse", "magical castle", "found family"},
		Mood:   []string{"whimsical", "cozy"},
	},
	"before sunrise": {
		Themes: []string{"connection", "chance", "time"},
		Tropes: []string{"strangers to lovers", "single night"},
		Mood:   []string{"intimate", "wistful"},
	},
}

// KnownBundle returns the curated bundle for a title, if one exists.
func KnownBundle(title string) (Bundle, bool) {
	bundle, ok := knownTitles[cacheKey(title)]
	return bundle, ok
}
