// Package matcher resolves free-text survey names against the canonical
// member roster. Ambiguous or failed resolutions are appended to a
// ReviewLog for human confirmation; they never fail the run.
package matcher

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mhalland/barvakt/pkg/core/model"
)

// Tuned values carried over from the source system; do not re-derive.
const (
	// MinConfidenceThreshold is the score at or above which a match is
	// accepted without review
	MinConfidenceThreshold = 0.8

	// PartialMatchThreshold is the score at or above which a match is
	// accepted provisionally, with a review record
	PartialMatchThreshold = 0.5

	// firstNameMatchScore is awarded when the normalized first tokens are
	// identical. It outranks any token-overlap score so that a matching
	// first name wins over partial surname overlap.
	firstNameMatchScore = 0.95
)

// ReviewLog accumulates review records across a run, in input order.
// Records are only ever appended.
type ReviewLog struct {
	records []model.ReviewRecord
}

// NewReviewLog returns an empty review log
func NewReviewLog() *ReviewLog {
	return &ReviewLog{records: []model.ReviewRecord{}}
}

// Records returns the accumulated records in input order
func (l *ReviewLog) Records() []model.ReviewRecord {
	return l.records
}

// Len returns the number of accumulated records
func (l *ReviewLog) Len() int {
	return len(l.records)
}

func (l *ReviewLog) add(inputName, possibleMatch string, confidence float64) {
	l.records = append(l.records, model.ReviewRecord{
		InputName:     inputName,
		PossibleMatch: possibleMatch,
		Confidence:    fmt.Sprintf("%.2f", confidence),
	})
}

// Match resolves inputName against the canonical member list and returns
// the resolved name with its confidence score.
//
// An exact case-insensitive match short-circuits with confidence 1.0.
// Otherwise every candidate is scored: 1.0 for alphanumeric-normalized
// equality, firstNameMatchScore for an exact first-token match, else the
// Jaccard similarity of the normalized token sets. The best-scoring
// candidate wins, with ties broken by roster order. Scores below
// PartialMatchThreshold leave the input unresolved: the raw input string
// is returned so the caller can tell it never matched the roster.
func Match(inputName string, members []string, log *ReviewLog) (string, float64) {
	for _, member := range members {
		if strings.EqualFold(member, inputName) {
			return member, 1.0
		}
	}

	bestName := ""
	bestScore := 0.0
	for _, member := range members {
		score := similarity(inputName, member)
		if score > bestScore {
			bestName = member
			bestScore = score
		}
	}

	if bestScore >= MinConfidenceThreshold {
		return bestName, bestScore
	}
	if bestScore >= PartialMatchThreshold {
		log.add(inputName, bestName, bestScore)
		return bestName, bestScore
	}

	log.add(inputName, model.NoMatchFound, 0)
	return inputName, 0
}

// similarity scores a single candidate against the input name
func similarity(input, member string) float64 {
	if normalizeName(input) == normalizeName(member) {
		return 1.0
	}

	inputTokens := tokenSet(input)
	memberTokens := tokenSet(member)
	if len(inputTokens) == 0 || len(memberTokens) == 0 {
		return 0
	}

	if normalizeName(firstToken(input)) == normalizeName(firstToken(member)) {
		return firstNameMatchScore
	}

	return jaccard(inputTokens, memberTokens)
}

// normalizeName lowercases and strips everything but letters and digits
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func tokenSet(name string) map[string]bool {
	tokens := make(map[string]bool)
	for _, field := range strings.Fields(name) {
		if normalized := normalizeName(field); normalized != "" {
			tokens[normalized] = true
		}
	}
	return tokens
}

// jaccard returns intersection size over union size, 0 when disjoint
func jaccard(a, b map[string]bool) float64 {
	common := 0
	for token := range a {
		if b[token] {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	union := len(a) + len(b) - common
	return float64(common) / float64(union)
}
