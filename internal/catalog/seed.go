package catalog

import "context"

// SampleBooks returns a small fixture catalog covering several genres and
// moods, used by 'bookscout catalog seed' and by tests.
func SampleBooks() []BookRecord {
	return []BookRecord{
		{
			ID:     "bk-001",
			Title:  "The Lantern Keeper",
			Author: "Mara Ellison",
			Genres: []string{"fantasy", "mystery"},
			Tropes: []string{"found family", "hidden world"},
			Mood:   []string{"cozy", "atmospheric"},
			Themes: []string{"belonging", "small towns"},
			Synopsis: "A lighthouse keeper discovers the lamps she tends hold " +
				"the memories of everyone who ever sailed past.",
			PageCount:   342,
			PublishYear: 2019,
		},
		{
			ID:     "bk-002",
			Title:  "Glass Orbit",
			Author: "Theo Nakamura",
			Genres: []string{"science fiction"},
			Tropes: []string{"generation ship", "unreliable narrator"},
			Mood:   []string{"tense", "cerebral"},
			Themes: []string{"isolation", "identity"},
			Synopsis: "Aboard a ship that left Earth three centuries ago, an " +
				"archivist finds the mission logs have been rewritten.",
			PageCount:   410,
			PublishYear: 2021,
		},
		{
			ID:     "bk-003",
			Title:  "The Bookshop at Wyndham Lane",
			Author: "Clara Penhaligon",
			Genres: []string{"mystery", "cozy"},
			Tropes: []string{"amateur sleuth", "small village"},
			Mood:   []string{"cozy", "charming"},
			Themes: []string{"community", "second chances"},
			Synopsis: "A retired archivist inherits a failing bookshop and a " +
				"ledger of debts someone is willing to kill over.",
			PageCount:   298,
			PublishYear: 2020,
		},
		{
			ID:     "bk-004",
			Title:  "Salt and Cinder",
			Author: "Ivo Reyes",
			Genres: []string{"fantasy", "adventure"},
			Tropes: []string{"enemies to allies", "heist"},
			Mood:   []string{"fast-paced", "witty"},
			Themes: []string{"loyalty", "class divides"},
			Synopsis: "Two rival smugglers must pull one last job together " +
				"before the harbor freezes and the navy closes in.",
			PageCount:   376,
			PublishYear: 2018,
		},
		{
			ID:     "bk-005",
			Title:  "A Quiet Arithmetic",
			Author: "Hana Sorenson",
			Genres: []string{"literary fiction"},
			Tropes: []string{"slow burn", "epistolary"},
			Mood:   []string{"melancholy", "reflective"},
			Themes: []string{"grief", "mathematics"},
			Synopsis: "A widowed professor corresponds with her late " +
				"husband's final doctoral student, one proof at a time.",
			PageCount:   264,
			PublishYear: 2022,
		},
		{
			ID:     "bk-006",
			Title:  "The Hollow Chorus",
			Author: "Dmitri Vance",
			Genres: []string{"horror", "gothic"},
			Tropes: []string{"haunted house", "unreliable narrator"},
			Mood:   []string{"eerie", "atmospheric"},
			Themes: []string{"memory", "inheritance"},
			Synopsis: "The last heir of a singing family returns to a house " +
				"where the walls still rehearse.",
			PageCount:   331,
			PublishYear: 2017,
		},
		{
			ID:     "bk-007",
			Title:  "Meridian Express",
			Author: "June Okafor",
			Genres: []string{"thriller"},
			Tropes: []string{"locked room", "race against time"},
			Mood:   []string{"tense", "propulsive"},
			Themes: []string{"trust", "surveillance"},
			Synopsis: "A night train crosses three borders carrying four " +
				"passengers who all bought tickets under the same name.",
			PageCount:   352,
			PublishYear: 2023,
		},
		{
			ID:     "bk-008",
			Title:  "Ondine's Ledger",
			Author: "Petra Hallström",
			Genres: []string{"historical fiction", "romance"},
			Tropes: []string{"forbidden romance", "dual timeline"},
			Mood:   []string{"sweeping", "bittersweet"},
			Themes: []string{"war", "letters"},
			Synopsis: "An accountant in occupied Rotterdam hides more than " +
				"numbers in her immaculate books.",
			PageCount:   389,
			PublishYear: 2016,
		},
	}
}

// Seed loads the sample catalog and a demo profile into the store.
func (s *Store) Seed(ctx context.Context) error {
	for _, book := range SampleBooks() {
		if err := s.UpsertBook(ctx, book); err != nil {
			return err
		}
	}
	return s.UpsertProfile(ctx, UserProfile{
		UserID:         "demo",
		FavoriteGenres: []string{"mystery", "fantasy"},
		FavoriteTropes: []string{"found family"},
		DislikedTropes: []string{"love triangle"},
		PreferredMood:  []string{"cozy", "atmospheric"},
		RatingHistory: []Rating{
			{BookID: "bk-003", Score: 4.5},
		},
	})
}
