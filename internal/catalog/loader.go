package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// LoadCSV reads a catalog file whose header is key,category followed by one column per language
func LoadCSV(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenFailed, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Default().Info(LogMsgCatalogLoaded, "path", path, "items", c.Len())
	return c, nil
}

// Parse reads catalog CSV from r. All row problems are reported together.
func Parse(r io.Reader) (*Static, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadHeaderFailed, err)
	}

	keyCol, catCol := -1, -1
	langCols := map[int]string{}
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		switch col {
		case ColumnKey:
			keyCol = i
		case ColumnCategory:
			catCol = i
		default:
			if col != "" {
				langCols[i] = col
			}
		}
	}
	if keyCol < 0 {
		return nil, fmt.Errorf("%w: "+ErrMsgMissingColumn, domain.ErrInvalidItem, ColumnKey)
	}
	if catCol < 0 {
		return nil, fmt.Errorf("%w: "+ErrMsgMissingColumn, domain.ErrInvalidItem, ColumnCategory)
	}
	if len(langCols) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidItem, ErrMsgNoLanguageColumns)
	}

	var (
		items []domain.Item
		errs  []error
		seen  = map[string]bool{}
	)
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf(ErrMsgReadRowFailed+": %w", row, err)
		}

		key := strings.TrimSpace(field(record, keyCol))
		category := domain.Category(strings.TrimSpace(field(record, catCol)))
		if key == "" {
			errs = append(errs, fmt.Errorf(ErrMsgEmptyKey, row))
			continue
		}
		if !category.IsValid() {
			errs = append(errs, fmt.Errorf(ErrMsgInvalidCategory, row, category, key))
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf(ErrMsgDuplicateKey, row, key))
			continue
		}

		names := make(map[string]string, len(langCols))
		blank := true
		for idx, lang := range langCols {
			name := strings.TrimSpace(field(record, idx))
			if name == "" {
				continue
			}
			blank = false
			if matchable(name) {
				names[lang] = name
			}
		}
		switch {
		case blank:
			errs = append(errs, fmt.Errorf(ErrMsgNoNames, row, key))
			continue
		case len(names) == 0:
			errs = append(errs, fmt.Errorf(ErrMsgNoMatchableNames, row, key))
			continue
		}

		seen[key] = true
		items = append(items, domain.Item{Key: key, Category: category, Names: names})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItem, errors.Join(errs...))
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	return New(items), nil
}

// matchable reports whether a chat message could ever name this text:
// it needs a letter, digit, symbol or punctuation rune. Names made only of
// combining marks or invisible format characters are dropped.
func matchable(name string) bool {
	return strings.IndexFunc(name, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSymbol(r) || unicode.IsPunct(r)
	}) >= 0
}

func field(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}
