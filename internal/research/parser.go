package research

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// Cost-signal parsing constants. Amounts are INR per person per day.
const (
	// Amounts outside this band are treated as noise: per-item prices below
	// it, hotel-package or flight totals above it.
	minPlausibleDailyINR = 1000.0
	maxPlausibleDailyINR = 15000.0

	// Fixed conversion for the secondary currency scan.
	usdToINRRate = 83.0

	// Floor used when the text yields nothing usable.
	defaultDailyMinimumINR = 2000.0
)

var (
	// Machine-readable marker some research backends embed, e.g.
	// "extracted minimum: ₹2500".
	markerPattern = regexp.MustCompile(`(?i)extracted[ _-]minimum\s*[:=]\s*(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

	inrPrefixPattern = regexp.MustCompile(`(?i)(?:₹|\brs\.?|\binr\b)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	inrSuffixPattern = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:inr\b|rupees?\b)`)
	usdPrefixPattern = regexp.MustCompile(`(?i)(?:\$|\busd\b)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	usdSuffixPattern = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:usd\b|dollars?\b)`)
)

// ParseDailyMinimum distills one daily-minimum figure from free-form budget
// research text. The fallback chain, first success wins:
//
//  1. a labeled "extracted minimum" marker is trusted verbatim;
//  2. INR amounts in the text, filtered to the plausible daily band, taking
//     the minimum of the survivors;
//  3. USD amounts converted at a fixed rate, same filter, same minimum;
//  4. the hardcoded default.
//
// Preferring the minimum plausible figure is deliberately conservative: prose
// often names several unrelated prices and the smallest in-band one is the
// best guess at a daily floor.
func ParseDailyMinimum(text string) model.CostEstimate {
	if m := markerPattern.FindStringSubmatch(text); m != nil {
		if v, err := parseNumber(m[1]); err == nil {
			return model.CostEstimate{DailyMinimumPerPerson: v, Source: model.SourceExtracted}
		}
	}

	if v, ok := minPlausible(scanAmounts(text, inrPrefixPattern, inrSuffixPattern), 1); ok {
		return model.CostEstimate{DailyMinimumPerPerson: v, Source: model.SourceParsed}
	}

	if v, ok := minPlausible(scanAmounts(text, usdPrefixPattern, usdSuffixPattern), usdToINRRate); ok {
		return model.CostEstimate{DailyMinimumPerPerson: v, Source: model.SourceParsed}
	}

	return model.CostEstimate{DailyMinimumPerPerson: defaultDailyMinimumINR, Source: model.SourceDefault}
}

func scanAmounts(text string, patterns ...*regexp.Regexp) []float64 {
	var out []float64
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if v, err := parseNumber(m[1]); err == nil {
				out = append(out, v)
			}
		}
	}
	return out
}

// minPlausible converts each amount to INR, drops out-of-band values, and
// returns the smallest survivor.
func minPlausible(amounts []float64, rate float64) (float64, bool) {
	best, found := 0.0, false
	for _, a := range amounts {
		inr := a * rate
		if inr < minPlausibleDailyINR || inr > maxPlausibleDailyINR {
			continue
		}
		if !found || inr < best {
			best, found = inr, true
		}
	}
	return best, found
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
