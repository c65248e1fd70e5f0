package service

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

// diacriticsStripper decomposes to NFD and drops combining marks, so that
// "Araújo" and "Araujo" normalize to the same key.
var diacriticsStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName produces the grouping key for patient names: lower-cased,
// diacritics stripped, whitespace runs collapsed to a single space, trimmed.
func NormalizeName(name string) string {
	stripped, _, err := transform.String(diacriticsStripper, name)
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to the
		// raw input rather than losing the record from grouping.
		stripped = name
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// NameMatcher decides whether two normalized names refer to the same person.
// It is the extension point for fuzzy deduplication; grouping by exact
// normalized equality is the default.
type NameMatcher interface {
	Match(a, b string) bool
}

// ExactMatcher matches only byte-identical normalized names.
type ExactMatcher struct{}

func (ExactMatcher) Match(a, b string) bool {
	return a == b
}

// LevenshteinMatcher matches normalized names within an edit-distance
// threshold, catching genuine misspellings that normalization alone misses
// ("saraujo" vs "araujo").
type LevenshteinMatcher struct {
	MaxDistance int
}

func (m LevenshteinMatcher) Match(a, b string) bool {
	if a == b {
		return true
	}
	return levenshtein.ComputeDistance(a, b) <= m.MaxDistance
}

// DuplicateGroup is a set of patient records treated as the same person.
// Members are sorted ascending by CreatedAt; a missing (zero) CreatedAt
// sorts earliest, treating incomplete records as the oldest.
type DuplicateGroup struct {
	NormalizedName string
	Members        []entity.Patient
}

// FindDuplicateGroups buckets patients by normalized name and returns only
// the actionable groups (more than one member). A nil matcher means exact
// grouping; a fuzzy matcher additionally merges buckets whose keys match.
func FindDuplicateGroups(patients []entity.Patient, matcher NameMatcher) []DuplicateGroup {
	buckets := make(map[string][]entity.Patient)
	for _, patient := range patients {
		key := NormalizeName(patient.FullName)
		if key == "" {
			continue
		}
		buckets[key] = append(buckets[key], patient)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if matcher != nil {
		if _, exact := matcher.(ExactMatcher); !exact {
			keys = mergeBuckets(keys, buckets, matcher)
		}
	}

	groups := make([]DuplicateGroup, 0)
	for _, key := range keys {
		members := buckets[key]
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			// time.Time zero value is the minimum, so records without a
			// creation timestamp naturally sort first.
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		})
		groups = append(groups, DuplicateGroup{NormalizedName: key, Members: members})
	}
	return groups
}

// mergeBuckets folds buckets whose keys the matcher considers equal into the
// lexicographically smallest key of each cluster, returning the surviving
// keys in order.
func mergeBuckets(keys []string, buckets map[string][]entity.Patient, matcher NameMatcher) []string {
	merged := make([]string, 0, len(keys))
	for _, key := range keys {
		target := ""
		for _, existing := range merged {
			if matcher.Match(existing, key) {
				target = existing
				break
			}
		}
		if target == "" {
			merged = append(merged, key)
			continue
		}
		buckets[target] = append(buckets[target], buckets[key]...)
		delete(buckets, key)
	}
	return merged
}

// CanonicalStrategy selects which member of a duplicate group survives.
// The two policies exist in practice and must be chosen explicitly by the
// caller, never mixed implicitly.
type CanonicalStrategy string

const (
	// OldestWins keeps the earliest-created record.
	OldestWins CanonicalStrategy = "oldest"
	// MostCompleteWins keeps the first record with both phone and CPF
	// populated, falling back to the oldest when none qualifies.
	MostCompleteWins CanonicalStrategy = "most_complete"
)

// ParseCanonicalStrategy maps a CLI/config value to a strategy, defaulting
// to OldestWins for unknown input.
func ParseCanonicalStrategy(s string) CanonicalStrategy {
	if CanonicalStrategy(s) == MostCompleteWins {
		return MostCompleteWins
	}
	return OldestWins
}

// ChooseCanonical returns the surviving record for the group under the given
// strategy. The group's members must already be sorted by CreatedAt, which
// FindDuplicateGroups guarantees.
func ChooseCanonical(group DuplicateGroup, strategy CanonicalStrategy) entity.Patient {
	if strategy == MostCompleteWins {
		for _, member := range group.Members {
			if member.IsComplete() {
				return member
			}
		}
	}
	return group.Members[0]
}
