package matching_test

import (
	"testing"
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/finvela/bank_recon_svc/internal/utils/matching"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func creditItem(amount string, valueDate time.Time, description string) domain.StatementItem {
	return domain.StatementItem{
		CreditAmount: decimal.RequireFromString(amount),
		ValueDate:    valueDate,
		Description:  description,
	}
}

func debitItem(amount string, valueDate time.Time) domain.StatementItem {
	return domain.StatementItem{
		DebitAmount: decimal.RequireFromString(amount),
		ValueDate:   valueDate,
	}
}

func movement(amount string, valueDate time.Time, description string) domain.TreasuryMovement {
	return domain.TreasuryMovement{
		Amount:      decimal.RequireFromString(amount),
		ValueDate:   valueDate,
		Description: description,
	}
}

func TestSignCompatible(t *testing.T) {
	assert.True(t, matching.SignCompatible(creditItem("100.00", day(10), ""), movement("100.00", day(10), "")))
	assert.True(t, matching.SignCompatible(debitItem("250.50", day(10)), movement("-250.50", day(12), "")))

	// A credit item never pairs with an outflow, nor with a different magnitude.
	assert.False(t, matching.SignCompatible(creditItem("100.00", day(10), ""), movement("-100.00", day(10), "")))
	assert.False(t, matching.SignCompatible(creditItem("100.00", day(10), ""), movement("100.01", day(10), "")))
}

func TestConfidence_ExactAmountAndDate(t *testing.T) {
	cfg := matching.DefaultConfig()
	score := matching.Confidence(creditItem("100.00", day(10), "invoice 42"), movement("100.00", day(10), "something else"), cfg)
	assert.Equal(t, 100, score)
}

func TestConfidence_DateDecay(t *testing.T) {
	cfg := matching.DefaultConfig()

	oneDay := matching.Confidence(creditItem("100.00", day(10), ""), movement("100.00", day(11), ""), cfg)
	twoDays := matching.Confidence(creditItem("100.00", day(10), ""), movement("100.00", day(12), ""), cfg)

	assert.Equal(t, 85, oneDay)
	assert.Equal(t, 70, twoDays)
	assert.Greater(t, oneDay, twoDays)
}

func TestConfidence_BeyondToleranceIsZero(t *testing.T) {
	cfg := matching.DefaultConfig()
	score := matching.Confidence(creditItem("100.00", day(10), ""), movement("100.00", day(14), ""), cfg)
	assert.Equal(t, 0, score)
}

func TestConfidence_IncompatibleAmountIsZero(t *testing.T) {
	cfg := matching.DefaultConfig()
	score := matching.Confidence(creditItem("100.00", day(10), ""), movement("99.99", day(10), ""), cfg)
	assert.Equal(t, 0, score)
}

func TestConfidence_TextBoostCappedBelowExact(t *testing.T) {
	cfg := matching.DefaultConfig()

	plain := matching.Confidence(creditItem("100.00", day(10), "xyzzy"), movement("100.00", day(11), "qwerty"), cfg)
	boosted := matching.Confidence(creditItem("100.00", day(10), "ACME payroll march"), movement("100.00", day(11), "acme payroll march"), cfg)

	assert.Greater(t, boosted, plain)
	// A non-exact pair never reaches 100, whatever the text says.
	assert.LessOrEqual(t, boosted, 99)
}

func TestDateDistanceDays_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 11, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, matching.DateDistanceDays(morning, evening))
	assert.Equal(t, 1, matching.DateDistanceDays(evening, morning))
}

func TestTextSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, matching.TextSimilarity("acme corp payment", "ACME CORP PAYMENT"))
	assert.Equal(t, 1.0, matching.TextSimilarity("wire ref 9981", "9981"))
	assert.Equal(t, 0.0, matching.TextSimilarity("", "anything"))
	assert.Equal(t, 0.0, matching.TextSimilarity("alpha beta", "gamma delta"))

	partial := matching.TextSimilarity("acme payroll march", "payroll batch acme")
	assert.Greater(t, partial, 0.0)
	assert.LessOrEqual(t, partial, 1.0)
}
