package categorize

import "bookscout/internal/catalog"

// Category names, in the fixed order every allocation pass follows.
const (
	CategoryAtmosphere = "atmosphere"
	CategoryCharacters = "characters"
	CategoryPlot       = "plot"
)

var categoryOrder = []string{CategoryAtmosphere, CategoryCharacters, CategoryPlot}

// booksPerCategory caps each bucket.
const booksPerCategory = 2

// BookPick is one categorized recommendation.
type BookPick struct {
	Book            catalog.BookRecord  `json:"book"`
	MatchPercentage int                 `json:"matchPercentage"`
	MatchReasons    map[string][]string `json:"matchReasons"`
}

// Bucket is one category's picks and descriptive tags.
type Bucket struct {
	Books []BookPick `json:"books"`
	Tags  []string   `json:"tags"`
}

// Categories is the complete categorized result.
type Categories struct {
	Atmosphere Bucket `json:"atmosphere"`
	Characters Bucket `json:"characters"`
	Plot       Bucket `json:"plot"`
}

func (c *Categories) bucket(name string) *Bucket {
	switch name {
	case CategoryAtmosphere:
		return &c.Atmosphere
	case CategoryCharacters:
		return &c.Characters
	case CategoryPlot:
		return &c.Plot
	}
	return nil
}

// TotalBooks counts picks across all three buckets.
func (c *Categories) TotalBooks() int {
	return len(c.Atmosphere.Books) + len(c.Characters.Books) + len(c.Plot.Books)
}
