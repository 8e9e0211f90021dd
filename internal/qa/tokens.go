package qa

import (
	"regexp"
	"strconv"
	"strings"
)

// TokenKind classifies an extracted quantitative claim.
type TokenKind string

const (
	KindPercent    TokenKind = "percent"
	KindCurrency   TokenKind = "currency"
	KindMultiplier TokenKind = "multiplier"
	KindCount      TokenKind = "count"
	KindDuration   TokenKind = "duration"
	KindLatency    TokenKind = "latency"
	KindDataVolume TokenKind = "data_volume"
)

// Token is one quantitative claim pulled out of bullet or achievement text.
type Token struct {
	Raw     string
	Kind    TokenKind
	Value   float64
	Numeric bool
}

// The extraction patterns are fixed. Order matters: more specific unit-bearing
// patterns run before the bare-count pattern so "200ms" is latency, not a count.
var tokenPatterns = []struct {
	kind TokenKind
	re   *regexp.Regexp
}{
	{KindPercent, regexp.MustCompile(`(?i)\d[\d,]*(\.\d+)?\s*(%|percent)`)},
	{KindCurrency, regexp.MustCompile(`(?i)[$€£]\s*\d[\d,]*(\.\d+)?\s*(k|m|b|mm|thousand|million|billion)?\b`)},
	{KindMultiplier, regexp.MustCompile(`(?i)\b\d+(\.\d+)?x\b`)},
	{KindLatency, regexp.MustCompile(`(?i)\b\d[\d,]*(\.\d+)?\s*(ms|milliseconds?|microseconds?|µs|ns)\b`)},
	{KindDataVolume, regexp.MustCompile(`(?i)\b\d[\d,]*(\.\d+)?\s*(kb|mb|gb|tb|pb|kilobytes?|megabytes?|gigabytes?|terabytes?|petabytes?)\b`)},
	{KindDuration, regexp.MustCompile(`(?i)\b\d[\d,]*(\.\d+)?\s*(seconds?|minutes?|hours?|days?|weeks?|months?|quarters?|years?)\b`)},
	{KindCount, regexp.MustCompile(`(?i)\b\d[\d,]*(\.\d+)?\+?\s*(users?|customers?|clients?|engineers?|developers?|people|employees|members?|teams?|services?|servers?|nodes?|requests?|transactions?|deployments?|releases?|repositories|repos|stores?|accounts?|regions?|countries|markets?)\b`)},
}

// magnitudeSuffixes scales currency amounts so "$2.5M" and "$2,500,000"
// compare within tolerance.
var magnitudeSuffixes = map[string]float64{
	"k": 1e3, "thousand": 1e3,
	"m": 1e6, "mm": 1e6, "million": 1e6,
	"b": 1e9, "billion": 1e9,
}

var leadingNumber = regexp.MustCompile(`\d[\d,]*(\.\d+)?`)

// ExtractTokens pulls all quantitative tokens from text. Overlapping matches
// are resolved in pattern order: once a span is claimed it is not re-matched
// by a later pattern.
func ExtractTokens(text string) []Token {
	var tokens []Token
	claimed := make([]bool, len(text))

	for _, pattern := range tokenPatterns {
		for _, loc := range pattern.re.FindAllStringIndex(text, -1) {
			if spanClaimed(claimed, loc[0], loc[1]) {
				continue
			}
			markSpan(claimed, loc[0], loc[1])
			raw := strings.TrimSpace(text[loc[0]:loc[1]])
			tokens = append(tokens, newToken(raw, pattern.kind))
		}
	}
	return tokens
}

func newToken(raw string, kind TokenKind) Token {
	token := Token{Raw: raw, Kind: kind}

	numStr := leadingNumber.FindString(raw)
	if numStr == "" {
		return token
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(numStr, ",", ""), 64)
	if err != nil {
		return token
	}

	if kind == KindCurrency {
		value *= currencyScale(raw)
	}

	token.Value = value
	token.Numeric = true
	return token
}

func currencyScale(raw string) float64 {
	lower := strings.ToLower(raw)
	for suffix, scale := range magnitudeSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return scale
		}
	}
	return 1
}

func spanClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end && i < len(claimed); i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func markSpan(claimed []bool, start, end int) {
	for i := start; i < end && i < len(claimed); i++ {
		claimed[i] = true
	}
}
