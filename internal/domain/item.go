package domain

// Category groups catalog items for inventory display
type Category string

// Item categories accepted by the catalog loader
const (
	CategoryNumbers1to50   Category = "numbers1-50"
	CategoryNumbers51to100 Category = "numbers51-100"
	CategorySets           Category = "sets"
	CategoryConstants      Category = "constants"
	CategoryFunctions      Category = "functions"
	CategoryTheorems       Category = "theorems"
	CategorySymbols        Category = "symbols"
	CategoryCapitalGreek   Category = "capitalgreek"
	CategorySmallGreek     Category = "smallgreek"
	CategorySequence       Category = "sequence"
)

// Categories lists the valid categories in display order
var Categories = []Category{
	CategoryNumbers1to50,
	CategoryNumbers51to100,
	CategorySets,
	CategoryConstants,
	CategoryFunctions,
	CategoryTheorems,
	CategorySymbols,
	CategoryCapitalGreek,
	CategorySmallGreek,
	CategorySequence,
}

// DefaultLanguage is the language tag used when rendering item names
const DefaultLanguage = "en"

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Item is a catchable object. Items are immutable after the catalog loads them.
type Item struct {
	Key      string            `json:"key"`
	Category Category          `json:"category"`
	Names    map[string]string `json:"names"` // language tag -> accepted name
}

// DisplayName returns the name for lang, falling back to English and then the key
func (i Item) DisplayName(lang string) string {
	if name, ok := i.Names[lang]; ok && name != "" {
		return name
	}
	if name, ok := i.Names[DefaultLanguage]; ok && name != "" {
		return name
	}
	return i.Key
}
