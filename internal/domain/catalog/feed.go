package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FeedDocument is the partner price-list format. The whole document is
// validated up front; a single bad entry rejects the import.
type FeedDocument struct {
	Shop       string         `yaml:"shop"`
	Categories []FeedCategory `yaml:"categories"`
	Goods      []FeedGood     `yaml:"goods"`
}

// FeedCategory declares one category used by the feed's goods
type FeedCategory struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// FeedGood is one offer row in the feed
type FeedGood struct {
	ID         int        `yaml:"id"`
	Category   int        `yaml:"category"`
	Model      string     `yaml:"model"`
	Name       string     `yaml:"name"`
	Price      float64    `yaml:"price"`
	PriceRRC   float64    `yaml:"price_rrc"`
	Quantity   int        `yaml:"quantity"`
	Parameters FeedParams `yaml:"parameters"`
}

// FeedParams holds a good's characteristics. Feeds carry scalar values of
// mixed types (strings, numbers, booleans); all are stored as strings.
type FeedParams map[string]string

// UnmarshalYAML stringifies scalar parameter values
func (p *FeedParams) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("parameters must be a mapping")
	}

	out := make(FeedParams, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("parameter %q must be a scalar", key.Value)
		}
		out[key.Value] = value.Value
	}
	*p = out
	return nil
}

// FeedValidationError carries every problem found in a document
type FeedValidationError struct {
	Problems []string
}

// Error implements the error interface
func (e *FeedValidationError) Error() string {
	return fmt.Sprintf("invalid feed: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the document as a whole. It collects every problem
// instead of stopping at the first one.
func (d *FeedDocument) Validate() error {
	var problems []string

	if strings.TrimSpace(d.Shop) == "" {
		problems = append(problems, "shop name is required")
	}

	seenCategories := make(map[int]bool, len(d.Categories))
	for i, c := range d.Categories {
		if c.ID <= 0 {
			problems = append(problems, fmt.Sprintf("categories[%d]: id must be a positive integer", i))
			continue
		}
		if seenCategories[c.ID] {
			problems = append(problems, fmt.Sprintf("categories[%d]: duplicate category id %d", i, c.ID))
		}
		seenCategories[c.ID] = true
		if strings.TrimSpace(c.Name) == "" {
			problems = append(problems, fmt.Sprintf("categories[%d]: name is required", i))
		}
	}

	seenGoods := make(map[int]bool, len(d.Goods))
	for i, g := range d.Goods {
		if g.ID <= 0 {
			problems = append(problems, fmt.Sprintf("goods[%d]: id must be a positive integer", i))
		} else {
			if seenGoods[g.ID] {
				problems = append(problems, fmt.Sprintf("goods[%d]: duplicate good id %d", i, g.ID))
			}
			seenGoods[g.ID] = true
		}
		if !seenCategories[g.Category] {
			problems = append(problems, fmt.Sprintf("goods[%d]: category %d is not declared in the document", i, g.Category))
		}
		if strings.TrimSpace(g.Name) == "" {
			problems = append(problems, fmt.Sprintf("goods[%d]: name is required", i))
		}
		if g.Price < 0 {
			problems = append(problems, fmt.Sprintf("goods[%d]: price cannot be negative", i))
		}
		if g.PriceRRC < 0 {
			problems = append(problems, fmt.Sprintf("goods[%d]: price_rrc cannot be negative", i))
		}
		if g.Quantity < 0 {
			problems = append(problems, fmt.Sprintf("goods[%d]: quantity cannot be negative", i))
		}
	}

	if len(problems) > 0 {
		return &FeedValidationError{Problems: problems}
	}
	return nil
}
