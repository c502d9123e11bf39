package profit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WILDCARD_CATEGORY holds the formula used by categories without their own entry.
const WILDCARD_CATEGORY = "*"

// CategoryFormulas maps a category to its profit formula.
type CategoryFormulas map[Category]string

type categoriesFile struct {
	Categories CategoryFormulas `json:"categories"`
}

// Resolve returns the formula of category, or the wildcard formula when the
// category has no entry.
func (c CategoryFormulas) Resolve(category Category) (string, error) {
	if formula, ok := c[category]; ok {
		return formula, nil
	}

	if formula, ok := c[WILDCARD_CATEGORY]; ok {
		return formula, nil
	}

	return "", fmt.Errorf("category %q: %w", category, ErrMissingWildcardFormula)
}

func (c CategoryFormulas) HasWildcard() bool {
	_, ok := c[WILDCARD_CATEGORY]
	return ok
}

// ParseCategories reads {"categories": {"<category>": "<formula>", ...}}.
func ParseCategories(r io.Reader) (CategoryFormulas, error) {
	var file categoriesFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	if file.Categories == nil {
		return nil, fmt.Errorf("decode categories: missing \"categories\" object")
	}

	return file.Categories, nil
}

func LoadCategories(path string) (CategoryFormulas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	formulas, err := ParseCategories(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return formulas, nil
}
