package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already normalized", "joao da silva", "joao da silva"},
		{"diacritics and double spaces", "João  da  Silva", "joao da silva"},
		{"uppercase", "JOAO DA SILVA", "joao da silva"},
		{"leading and trailing space", "  Ana Lima ", "ana lima"},
		{"tabs and newlines", "Ana\tLima\n", "ana lima"},
		{"accented surname", "Araújo", "araujo"},
		{"cedilla", "Conceição", "conceicao"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeName_VariantsConverge(t *testing.T) {
	assert.Equal(t, NormalizeName("João  da  Silva"), NormalizeName("joao da silva"))
}

func patientNamed(name string, createdAt time.Time) entity.Patient {
	return entity.Patient{ID: uuid.New(), FullName: name, CreatedAt: createdAt}
}

func TestFindDuplicateGroups_ExactNormalizedGrouping(t *testing.T) {
	newer := patientNamed("Ana Lima", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	older := patientNamed("ana  lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	single := patientNamed("Carlos", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	groups := FindDuplicateGroups([]entity.Patient{newer, older, single}, ExactMatcher{})

	require.Len(t, groups, 1)
	assert.Equal(t, "ana lima", groups[0].NormalizedName)
	require.Len(t, groups[0].Members, 2)
	// Earliest-created member comes first (the default canonical).
	assert.Equal(t, older.ID, groups[0].Members[0].ID)
	assert.Equal(t, newer.ID, groups[0].Members[1].ID)
}

func TestFindDuplicateGroups_MissingCreatedAtSortsEarliest(t *testing.T) {
	dated := patientNamed("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	undated := patientNamed("ana lima", time.Time{})

	groups := FindDuplicateGroups([]entity.Patient{dated, undated}, ExactMatcher{})

	require.Len(t, groups, 1)
	assert.Equal(t, undated.ID, groups[0].Members[0].ID)
}

func TestFindDuplicateGroups_NilMatcherIsExact(t *testing.T) {
	a := patientNamed("Ana Lima", time.Now())
	b := patientNamed("Ana  Líma", time.Now())

	groups := FindDuplicateGroups([]entity.Patient{a, b}, nil)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 2)
}

func TestFindDuplicateGroups_BlankNamesIgnored(t *testing.T) {
	blank := patientNamed("   ", time.Now())
	named := patientNamed("Ana Lima", time.Now())

	groups := FindDuplicateGroups([]entity.Patient{blank, named}, ExactMatcher{})

	assert.Empty(t, groups)
}

func TestFindDuplicateGroups_FuzzyMergesNearMisses(t *testing.T) {
	a := patientNamed("Maria Araujo", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := patientNamed("Maria Araújo", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	typo := patientNamed("Maria SAraujo", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	unrelated := patientNamed("Carlos Souza", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	// Exact matching already folds the accent variant but not the typo.
	exactGroups := FindDuplicateGroups([]entity.Patient{a, b, typo, unrelated}, ExactMatcher{})
	require.Len(t, exactGroups, 1)
	assert.Len(t, exactGroups[0].Members, 2)

	fuzzyGroups := FindDuplicateGroups([]entity.Patient{a, b, typo, unrelated}, LevenshteinMatcher{MaxDistance: 2})
	require.Len(t, fuzzyGroups, 1)
	assert.Len(t, fuzzyGroups[0].Members, 3)
	assert.Equal(t, a.ID, fuzzyGroups[0].Members[0].ID)
}

func TestLevenshteinMatcher(t *testing.T) {
	m := LevenshteinMatcher{MaxDistance: 2}

	assert.True(t, m.Match("maria araujo", "maria araujo"))
	assert.True(t, m.Match("maria araujo", "maria saraujo"))
	assert.False(t, m.Match("maria araujo", "carlos souza"))
}

func TestChooseCanonical(t *testing.T) {
	oldest := entity.Patient{
		ID:        uuid.New(),
		FullName:  "Ana Lima",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	complete := entity.Patient{
		ID:        uuid.New(),
		FullName:  "Ana Lima",
		Phone:     "11999990000",
		CPF:       "12345678901",
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	group := DuplicateGroup{
		NormalizedName: "ana lima",
		Members:        []entity.Patient{oldest, complete},
	}

	assert.Equal(t, oldest.ID, ChooseCanonical(group, OldestWins).ID)
	assert.Equal(t, complete.ID, ChooseCanonical(group, MostCompleteWins).ID)

	// MostCompleteWins falls back to the oldest when nothing is complete.
	incomplete := DuplicateGroup{
		NormalizedName: "ana lima",
		Members:        []entity.Patient{oldest, {ID: uuid.New(), FullName: "Ana Lima"}},
	}
	assert.Equal(t, oldest.ID, ChooseCanonical(incomplete, MostCompleteWins).ID)
}

func TestParseCanonicalStrategy(t *testing.T) {
	assert.Equal(t, OldestWins, ParseCanonicalStrategy("oldest"))
	assert.Equal(t, MostCompleteWins, ParseCanonicalStrategy("most_complete"))
	assert.Equal(t, OldestWins, ParseCanonicalStrategy("whatever"))
}
