package questiongen

import (
	"fmt"
	"strings"
)

// Category selects the tone of a generated question.
type Category string

const (
	CategoryFunny      Category = "funny"
	CategoryThoughtful Category = "thoughtful"
	CategoryAnimal     Category = "animal"
	CategoryGross      Category = "gross"
)

// DefaultCategory is loaded on startup.
const DefaultCategory = CategoryFunny

// CategoryInfo is the display metadata for a category.
type CategoryInfo struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
}

var categories = []CategoryInfo{
	{Category: CategoryFunny, Label: "Funny", Icon: "😂", Color: "#EAB308"},
	{Category: CategoryThoughtful, Label: "Thoughtful", Icon: "🤔", Color: "#3B82F6"},
	{Category: CategoryAnimal, Label: "Animal", Icon: "🐾", Color: "#22C55E"},
	{Category: CategoryGross, Label: "Gross", Icon: "🤢", Color: "#EA580C"},
}

// Categories returns every category in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// Info returns the display metadata for c. Unknown categories get a
// label derived from the raw value.
func (c Category) Info() CategoryInfo {
	for _, info := range categories {
		if info.Category == c {
			return info
		}
	}
	return CategoryInfo{Category: c, Label: string(c)}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryPrompts[c]
	return ok
}

// ParseCategory converts user input (case-insensitive) into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Options is the two-choice result of a generation.
type Options struct {
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`

	// Fallback marks the fixed pair substituted for a malformed payload.
	Fallback bool `json:"-"`
}

// String renders the pair the way it is fed back as history context.
func (o Options) String() string {
	return o.OptionA + " OR " + o.OptionB
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	Category Category

	// History holds prior questions rendered as "<A> OR <B>", most recent
	// first. It is a de-duplication hint only; nothing is filtered.
	History []string

	// RequestID is the caller's request token, carried into provider logs.
	RequestID uint64
}
