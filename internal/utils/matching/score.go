package matching

import (
	"strings"
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
)

// Config holds the tuning knobs of the confidence scorer.
type Config struct {
	DateToleranceDays int // Candidate window around the item's value date
	DateDecayPerDay   int // Confidence points subtracted per day of offset
	MinConfidence     int // Candidates scoring below this are discarded
	TextBoostMax      int // Maximum confidence points added by text similarity
}

// DefaultConfig returns the scorer defaults used when no deployment
// configuration overrides them.
func DefaultConfig() Config {
	return Config{
		DateToleranceDays: 3,
		DateDecayPerDay:   15,
		MinConfidence:     60,
		TextBoostMax:      10,
	}
}

// DateDistanceDays returns the absolute calendar-day distance between two dates.
func DateDistanceDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	diff := int(da.Sub(db).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// SignCompatible reports whether a movement can pair with an item at all:
// the amounts must have equal magnitude and consistent direction (a credit
// item pairs with an inflow, a debit item with an outflow).
func SignCompatible(item domain.StatementItem, movement domain.TreasuryMovement) bool {
	return item.SignedAmount().Equal(movement.Amount)
}

// Confidence scores one candidate movement for one statement item.
// 100 means exact amount and exact date. Date offset decays the score
// linearly; text similarity between the item's description/reference and the
// movement's description adds back up to TextBoostMax points. Any non-exact
// pair is capped at 99 so only exact pairs classify as AUTO_EXACT.
func Confidence(item domain.StatementItem, movement domain.TreasuryMovement, cfg Config) int {
	if !SignCompatible(item, movement) {
		return 0
	}

	days := DateDistanceDays(item.ValueDate, movement.ValueDate)
	if days == 0 {
		return 100
	}
	if days > cfg.DateToleranceDays {
		return 0
	}

	score := 100 - days*cfg.DateDecayPerDay
	if score < 0 {
		score = 0
	}

	boost := int(TextSimilarity(item.Description+" "+item.Reference, movement.Description) * float64(cfg.TextBoostMax))
	score += boost
	if score > 99 {
		score = 99
	}
	return score
}

// TextSimilarity returns a token-overlap ratio in [0,1] between two free-text
// descriptions. Tokens shorter than three characters are ignored; substring
// containment of the whole reference counts as a full overlap.
func TextSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 1
	}

	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		setB[t] = struct{}{}
	}

	overlap := 0
	for _, t := range tokensA {
		if _, ok := setB[t]; ok {
			overlap++
		}
	}

	smaller := len(tokensA)
	if len(tokensB) < smaller {
		smaller = len(tokensB)
	}
	return float64(overlap) / float64(smaller)
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 3 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
