package catching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

var (
	itemSin   = domain.Item{Key: "sin", Category: domain.CategoryFunctions, Names: map[string]string{"en": "sine", "fr": "sinus", "de": "Sinus"}}
	itemCos   = domain.Item{Key: "cos", Category: domain.CategoryFunctions, Names: map[string]string{"en": "cosine", "fr": "cosinus", "de": "Kosinus"}}
	itemEuler = domain.Item{Key: "e", Category: domain.CategoryConstants, Names: map[string]string{"en": "euler number", "fr": "nombre d'Euler", "de": "Eulersche Zahl"}}
	itemPi    = domain.Item{Key: "pi", Category: domain.CategoryConstants, Names: map[string]string{"en": "pi", "de": "Kreiszahl"}}
	itemDelta = domain.Item{Key: "Delta", Category: domain.CategoryCapitalGreek, Names: map[string]string{"en": "Delta", "fr": "Delta majuscule"}}
	itemInf   = domain.Item{Key: "inf", Category: domain.CategorySymbols, Names: map[string]string{"en": "∞"}}
	itemNeq   = domain.Item{Key: "neq", Category: domain.CategorySymbols, Names: map[string]string{"en": "≠", "fr": "différent"}}
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SINE!", "sine"},
		{"  Hello,   World ", "hello world"},
		{"nombre d'Euler", "nombre d euler"},
		{"Théorème de Pythagore", "theoreme de pythagore"},
		{"Straße", "strasse"},
		{"x^2 + y^2", "x 2 y 2"},
		{"!!!", ""},
		{"ＳＩＮＥ", "sine"},
		{"∞", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher([]string{"catch", "guess"}, true)

	tests := []struct {
		name        string
		text        string
		item        domain.Item
		wantMatched string
		wantOK      bool
	}{
		{"case and punctuation", "SINE!", itemSin, "sine", true},
		{"inside a sentence", "I think it is sine.", itemSin, "sine", true},
		{"other language", "c'est le Kosinus", itemCos, "Kosinus", true},
		{"multi word phrase", "that's the Euler number", itemEuler, "euler number", true},
		{"accents in message", "nombre d’Éuler", itemEuler, "nombre d'Euler", true},
		{"word boundaries", "using this", itemSin, "", false},
		{"wrong item", "trying to catch cosine", itemSin, "", false},
		{"transposition is two edits", "cosnie", itemCos, "", false},
		{"one edit in medium name", "cosin", itemCos, "cosine", true},
		{"two edits in long name", "euler nmber", itemEuler, "euler number", true},
		{"short names exact only", "po", itemPi, "", false},
		{"short name exact", "pi", itemPi, "pi", true},
		{"joined tokens", "co sine", itemCos, "cosine", true},
		{"capital greek folds", "delta", itemDelta, "Delta", true},
		{"empty", "", itemSin, "", false},
		{"symbol name alone", "∞", itemInf, "∞", true},
		{"symbol name after keyword", "catch ∞", itemInf, "∞", true},
		{"symbol name glued to text", "infinity∞!", itemInf, "∞", true},
		{"symbol name absent", "infinity", itemInf, "", false},
		{"symbol name or word", "c'est différent", itemNeq, "différent", true},
		{"symbol among words", "x ≠ y", itemNeq, "≠", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, ok := m.Match(tt.text, tt.item)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMatched, matched)
		})
	}
}

func TestMatcher_FuzzyDisabled(t *testing.T) {
	m := NewMatcher(nil, false)

	_, ok := m.Match("cosin", itemCos)
	assert.False(t, ok)
	_, ok = m.Match("COSINE?", itemCos)
	assert.True(t, ok)
}

func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher(nil, true)
	first, ok := m.Match("sinus", itemSin)
	assert.True(t, ok)
	for i := 0; i < 50; i++ {
		got, _ := m.Match("sinus", itemSin)
		assert.Equal(t, first, got)
	}
}

func TestMatcher_HasCatchIntent(t *testing.T) {
	m := NewMatcher([]string{"catch", "Guess"}, true)

	assert.True(t, m.HasCatchIntent("trying to catch cosine"))
	assert.True(t, m.HasCatchIntent("CATCHING it"))
	assert.True(t, m.HasCatchIntent("my guess: tan"))
	assert.True(t, m.HasCatchIntent("guessed"))
	assert.False(t, m.HasCatchIntent("nice weather"))
	assert.False(t, m.HasCatchIntent("recatch"), "keyword must start a token")
}

func BenchmarkMatcher_Match(b *testing.B) {
	m := NewMatcher([]string{"catch", "guess"}, true)
	text := "I am quite sure this one is called the eulersche zahl, catch!"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Match(text, itemEuler)
	}
}

func TestFoldSymbols(t *testing.T) {
	assert.Equal(t, "∞", FoldSymbols(" ∞ "))
	assert.Equal(t, "x ≠ y", FoldSymbols("X  ≠\tY"))
	assert.Equal(t, "", FoldSymbols("   "))
}
