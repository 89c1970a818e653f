package categorize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookscout/internal/catalog"
	"bookscout/internal/logging"
	"bookscout/internal/matching"
	"bookscout/internal/services"
	"bookscout/internal/services/llm"
	"bookscout/internal/textutil"
)

const (
	defaultCategorizeTimeout = 12 * time.Second
	categorizeMaxTokens      = 600
	maxTagsPerCategory       = 3
)

// Categorizer runs the generative categorization call and normalizes its
// suggestions into valid buckets. A failed call or unusable JSON is returned
// as an error so the caller can switch to the deterministic fallback.
type Categorizer struct {
	generator llm.Generator
	logger    *slog.Logger
	timeout   time.Duration
}

func NewCategorizer(generator llm.Generator, logger *slog.Logger, timeout time.Duration) *Categorizer {
	if timeout <= 0 {
		timeout = defaultCategorizeTimeout
	}
	return &Categorizer{
		generator: generator,
		logger:    logging.NewComponentLogger(logger, "categorizer"),
		timeout:   timeout,
	}
}

const categorizeSystemPrompt = `You group recommended books into three categories for a reader: atmosphere, characters, plot.

Rules:
- Assign exactly 2 books to each category.
- Never assign the same book to more than one category.
- Give each category 2-3 short lowercase tags describing it.

Respond with JSON only, of the exact shape:
{"atmosphere":{"books":[{"index":0,"reasons":["..."]}],"tags":["..."]},"characters":{...},"plot":{...}}
where index refers to the numbered candidate list.`

// suggestion mirrors the JSON the model is asked to produce. Indices refer
// to positions in the ranked candidate list, not catalog positions.
type suggestion struct {
	Atmosphere suggestedBucket `json:"atmosphere"`
	Characters suggestedBucket `json:"characters"`
	Plot       suggestedBucket `json:"plot"`
}

type suggestedBucket struct {
	Books []suggestedPick `json:"books"`
	Tags  []string        `json:"tags"`
}

type suggestedPick struct {
	Index   int      `json:"index"`
	Reasons []string `json:"reasons"`
}

func (s *suggestion) bucket(name string) suggestedBucket {
	switch name {
	case CategoryAtmosphere:
		return s.Atmosphere
	case CategoryCharacters:
		return s.Characters
	case CategoryPlot:
		return s.Plot
	}
	return suggestedBucket{}
}

// Categorize asks the model to distribute the candidates, then repairs the
// result deterministically. candidates must already be sorted by score
// descending; books is the catalog the candidate indices point into.
func (c *Categorizer) Categorize(ctx context.Context, query string, candidates []matching.Candidate, books []catalog.BookRecord) (Categories, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Reader query: %s\n\nCandidates:\n", query)
	for i, candidate := range candidates {
		book := books[candidate.Index]
		fmt.Fprintf(&prompt, "%d|%s|%s|%s\n", i, book.Title, book.Author, strings.Join(candidate.Reasons, "; "))
	}

	response, err := c.generator.Complete(ctx, llm.Request{
		SystemPrompt: categorizeSystemPrompt,
		UserPrompt:   prompt.String(),
		MaxTokens:    categorizeMaxTokens,
		JSONOutput:   true,
	})
	if err != nil {
		return Categories{}, services.Wrap(services.ErrUpstream, "categorize", "complete", "categorization call failed", err)
	}

	var suggested suggestion
	if err := llm.DecodeJSON(response, &suggested); err != nil {
		return Categories{}, services.Wrap(services.ErrParse, "categorize", "decode", "categorization response is not usable JSON", err)
	}

	c.logger.Debug("categorization suggestions received", logging.Int("candidates", len(candidates)))
	return allocate(&suggested, candidates, books), nil
}

// allocate turns validated suggestions into final buckets via the repair and
// top-up passes, then the book transform. It only ever sees parsed data.
func allocate(suggested *suggestion, candidates []matching.Candidate, books []catalog.BookRecord) Categories {
	used := make(map[int]bool)
	drafts := make(map[string][]suggestedPick)

	// Repair pass: honor the model's picks where valid, substitute the
	// lowest unused candidate index where not, drop the slot when nothing
	// remains.
	for _, name := range categoryOrder {
		bucket := suggested.bucket(name)
		picks := bucket.Books
		if len(picks) > booksPerCategory {
			picks = picks[:booksPerCategory]
		}
		for _, pick := range picks {
			index := pick.Index
			if index < 0 || index >= len(candidates) || used[index] {
				index = lowestUnused(used, len(candidates))
				if index < 0 {
					continue
				}
			}
			reasons := pick.Reasons
			if len(reasons) == 0 {
				reasons = candidates[index].Reasons
			}
			used[index] = true
			drafts[name] = append(drafts[name], suggestedPick{Index: index, Reasons: reasons})
		}
	}

	// Top-up pass: fill every bucket to target in fixed category order.
	target := topUpTarget(len(candidates))
	for {
		progressed := false
		complete := true
		for _, name := range categoryOrder {
			if len(drafts[name]) >= target {
				continue
			}
			complete = false
			index := lowestUnused(used, len(candidates))
			if index < 0 {
				continue
			}
			used[index] = true
			drafts[name] = append(drafts[name], suggestedPick{Index: index, Reasons: candidates[index].Reasons})
			progressed = true
		}
		if complete || !progressed {
			break
		}
	}

	var result Categories
	for _, name := range categoryOrder {
		out := result.bucket(name)
		for _, draft := range drafts[name] {
			if len(out.Books) == booksPerCategory {
				break
			}
			if draft.Index < 0 || draft.Index >= len(candidates) {
				continue
			}
			candidate := candidates[draft.Index]
			out.Books = append(out.Books, BookPick{
				Book:            books[candidate.Index],
				MatchPercentage: candidate.Score,
				MatchReasons:    map[string][]string{name: draft.Reasons},
			})
		}
		out.Tags = normalizeTags(suggested.bucket(name).Tags, out.Books, name)
	}
	return result
}

func topUpTarget(candidateCount int) int {
	if candidateCount >= 6 {
		return booksPerCategory
	}
	target := candidateCount / 3
	if target < 1 {
		target = 1
	}
	if target > booksPerCategory {
		target = booksPerCategory
	}
	return target
}

func lowestUnused(used map[int]bool, count int) int {
	for i := 0; i < count; i++ {
		if !used[i] {
			return i
		}
	}
	return -1
}

// normalizeTags keeps the model's tags when present, otherwise derives them
// from the bucket's reasons the same way the fallback does.
func normalizeTags(tags []string, picks []BookPick, category string) []string {
	var cleaned []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		cleaned = append(cleaned, tag)
		if len(cleaned) == maxTagsPerCategory {
			break
		}
	}
	if len(cleaned) > 0 {
		return cleaned
	}
	var reasons []string
	for _, pick := range picks {
		reasons = append(reasons, pick.MatchReasons[category]...)
	}
	return textutil.DistinctTokens(reasons, 4, maxTagsPerCategory)
}
