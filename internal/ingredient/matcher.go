package ingredient

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Matching thresholds and confidence levels. Exact beats alias beats fuzzy.
var (
	confidenceExact = decimal.RequireFromString("1.0")
	confidenceAlias = decimal.RequireFromString("0.95")
	matchThreshold  = decimal.RequireFromString("0.6")
)

// Norwegian brand prefixes stripped during normalization.
var brandPrefixes = []string{
	"tine", "q-", "mills", "gilde", "prior", "nordfjord",
	"first price", "eldorado", "rema", "coop", "xtra",
}

// Quantity, weight and percentage tokens removed from raw names.
var removePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*[xX]\s*`),              // "2x", "3X"
	regexp.MustCompile(`(?i)\d+\s*(g|kg|ml|l|dl|cl)\b`), // "500g", "1L"
	regexp.MustCompile(`(?i)\d+\s*(stk|pk)\b`),       // "6stk", "2pk"
	regexp.MustCompile(`\d+%`),                       // "3.5%"
}

// Accented characters transliterated for matching.
var charReplacer = strings.NewReplacer(
	"æ", "ae", "ø", "o", "å", "a",
	"é", "e", "è", "e", "ê", "e",
)

// Normalize prepares a raw receipt or recipe name for catalog matching.
// Order matters: tokens are stripped before brand prefixes, because the
// prefix check requires the brand to start the remaining string.
func Normalize(rawName string) string {
	name := strings.ToLower(strings.TrimSpace(rawName))

	for _, pattern := range removePatterns {
		name = pattern.ReplaceAllString(name, "")
	}

	for _, brand := range brandPrefixes {
		if strings.HasPrefix(name, brand+" ") {
			name = name[len(brand)+1:]
			break
		}
	}

	name = charReplacer.Replace(name)

	return strings.Join(strings.Fields(name), " ")
}

// Match resolves a raw name to the best-scoring catalog ingredient.
// Returns nil when no candidate reaches the confidence threshold.
// Ties keep the first-found candidate, so catalog order must be stable.
func Match(rawName string, catalog []Ingredient) *MatchResult {
	normalized := Normalize(rawName)

	var best *MatchResult
	for i := range catalog {
		result := matchAgainst(normalized, &catalog[i])
		if result == nil {
			continue
		}
		if best == nil || result.Confidence.GreaterThan(best.Confidence) {
			best = result
		}
	}

	if best != nil && best.Confidence.GreaterThanOrEqual(matchThreshold) {
		return best
	}
	return nil
}

func matchAgainst(normalized string, ing *Ingredient) *MatchResult {
	if normalized == ing.CanonicalName {
		return &MatchResult{
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			Confidence:     confidenceExact,
			Method:         "exact",
		}
	}

	for _, alias := range ing.Aliases {
		if normalized == strings.ToLower(alias) {
			return &MatchResult{
				IngredientID:   ing.ID,
				IngredientName: ing.Name,
				Confidence:     confidenceAlias,
				Method:         "alias",
			}
		}
	}

	// Fuzzy: substring containment either direction plus similarity ratio.
	canonical := ing.CanonicalName
	if strings.Contains(normalized, canonical) || strings.Contains(canonical, normalized) {
		ratio := similarityRatio(normalized, canonical)
		if ratio > 0.5 {
			return &MatchResult{
				IngredientID:   ing.ID,
				IngredientName: ing.Name,
				Confidence:     decimal.NewFromFloat(0.7 + ratio*0.2).Round(2),
				Method:         "fuzzy",
			}
		}
	}

	for _, alias := range ing.Aliases {
		aliasLower := strings.ToLower(alias)
		if strings.Contains(normalized, aliasLower) || strings.Contains(aliasLower, normalized) {
			ratio := similarityRatio(normalized, aliasLower)
			if ratio > 0.5 {
				return &MatchResult{
					IngredientID:   ing.ID,
					IngredientName: ing.Name,
					Confidence:     decimal.NewFromFloat(0.6 + ratio*0.25).Round(2),
					Method:         "fuzzy",
				}
			}
		}
	}

	return nil
}

// similarityRatio returns 2*M / (len(a)+len(b)) where M is the total size of
// the matching blocks between a and b, found by repeatedly taking the longest
// common substring and recursing on the pieces to its left and right.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingSize(ra, rb)) / float64(total)
}

func matchingSize(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return matchingSize(a[:ai], b[:bi]) + size + matchingSize(a[ai+size:], b[bi+size:])
}

func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	// lengths[j] holds the common-suffix length ending at a[i-1], b[j-1]
	// for the current row i.
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					ai = i - size
					bi = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return ai, bi, size
}
