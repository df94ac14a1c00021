package catching

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// Matcher decides whether message text names an item. It is deterministic and safe for concurrent use.
type Matcher struct {
	fuzzy    bool
	keywords []string
}

// NewMatcher creates a matcher. keywords are the catch-intent words used for near-miss feedback.
func NewMatcher(keywords []string, fuzzy bool) *Matcher {
	m := &Matcher{fuzzy: fuzzy}
	for _, kw := range keywords {
		if n := Normalize(kw); n != "" {
			m.keywords = append(m.keywords, n)
		}
	}
	return m
}

// Match reports whether text names item in any language and returns the accepted name that matched.
// Names with no letters or digits ("∞", "≠") cannot be tokenized and are matched as a
// case-folded substring instead.
func (m *Matcher) Match(text string, item domain.Item) (string, bool) {
	names := acceptedNames(item)
	nameTokens := make([][]string, len(names))
	var folded string
	for i, name := range names {
		nameTokens[i] = Tokens(Normalize(name))
		if len(nameTokens[i]) > 0 {
			continue
		}
		if folded == "" {
			folded = FoldSymbols(text)
		}
		if sym := FoldSymbols(name); sym != "" && strings.Contains(folded, sym) {
			return name, true
		}
	}

	tokens := Tokens(Normalize(text))
	if len(tokens) == 0 {
		return "", false
	}
	for i, name := range names {
		if containsPhrase(tokens, nameTokens[i]) {
			return name, true
		}
	}
	for i, name := range names {
		if matchesJoined(tokens, nameTokens[i]) {
			return name, true
		}
	}
	if !m.fuzzy {
		return "", false
	}
	for i, name := range names {
		if withinEditDistance(tokens, nameTokens[i]) {
			return name, true
		}
	}
	return "", false
}

// HasCatchIntent reports whether text contains a catch keyword as a token or token prefix
func (m *Matcher) HasCatchIntent(text string) bool {
	for _, tok := range Tokens(Normalize(text)) {
		for _, kw := range m.keywords {
			if strings.HasPrefix(tok, kw) {
				return true
			}
		}
	}
	return false
}

// acceptedNames returns the item's distinct names in language order, English first
func acceptedNames(item domain.Item) []string {
	langs := make([]string, 0, len(item.Names))
	for lang := range item.Names {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if langs[i] == domain.DefaultLanguage || langs[j] == domain.DefaultLanguage {
			return langs[i] == domain.DefaultLanguage
		}
		return langs[i] < langs[j]
	})

	seen := make(map[string]struct{}, len(langs))
	names := make([]string, 0, len(langs))
	for _, lang := range langs {
		name := item.Names[lang]
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// containsPhrase reports whether name occurs as consecutive whole tokens
func containsPhrase(tokens, name []string) bool {
	if len(name) == 0 || len(name) > len(tokens) {
		return false
	}
	for i := 0; i+len(name) <= len(tokens); i++ {
		match := true
		for j := range name {
			if tokens[i+j] != name[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// matchesJoined compares the name with spaces removed against every run of tokens joined together,
// so "co sine" and "e x" style spellings still match
func matchesJoined(tokens, name []string) bool {
	target := strings.Join(name, "")
	if target == "" {
		return false
	}
	for i := range tokens {
		var b strings.Builder
		for j := i; j < len(tokens) && b.Len() < len(target); j++ {
			b.WriteString(tokens[j])
			if b.String() == target {
				return true
			}
		}
	}
	return false
}

// withinEditDistance compares windows of the name's token count against the name
func withinEditDistance(tokens, name []string) bool {
	if len(name) == 0 || len(name) > len(tokens) {
		return false
	}
	target := strings.Join(name, " ")
	limit := editLimit(utf8.RuneCountInString(target))
	if limit == 0 {
		return false
	}
	for i := 0; i+len(name) <= len(tokens); i++ {
		window := strings.Join(tokens[i:i+len(name)], " ")
		if abs(utf8.RuneCountInString(window)-utf8.RuneCountInString(target)) > limit {
			continue
		}
		if levenshtein.ComputeDistance(window, target) <= limit {
			return true
		}
	}
	return false
}

func editLimit(n int) int {
	switch {
	case n <= ExactOnlyMaxLen:
		return 0
	case n <= OneEditMaxLen:
		return 1
	default:
		return MaxEditsLongName
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
