package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/abhisek/cfdroid/internal/apperr"
)

// Catalog is an immutable, indexed set of topics.
type Catalog struct {
	topics     []Topic
	byID       map[string]*Topic
	byCategory map[Category][]Topic
	warnings   []string
}

// New indexes topics in the given order. An empty topic list is a
// configuration error; structural problems are reported by Validate.
func New(topics []Topic) (*Catalog, error) {
	if len(topics) == 0 {
		return nil, &apperr.ConfigurationError{Feature: "topic catalog", Reason: "no topics defined"}
	}
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	c := &Catalog{
		topics:     slices.Clone(topics),
		byID:       make(map[string]*Topic, len(topics)),
		byCategory: make(map[Category][]Topic),
	}
	for i := range c.topics {
		t := &c.topics[i]
		c.byID[t.ID] = t
		c.byCategory[t.Category] = append(c.byCategory[t.Category], *t)
	}
	c.warnings = danglingRelated(c.topics, c.byID)
	return c, nil
}

var defaultCatalog = mustNew(seedTopics)

func mustNew(topics []Topic) *Catalog {
	c, err := New(topics)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid seed data: %v", err))
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Size returns the number of topics.
func (c *Catalog) Size() int {
	return len(c.topics)
}

// Topics returns all topics in catalog order.
func (c *Catalog) Topics() []Topic {
	return slices.Clone(c.topics)
}

// Lookup returns the topic with the given id.
func (c *Catalog) Lookup(id string) (Topic, bool) {
	t, ok := c.byID[id]
	if !ok {
		return Topic{}, false
	}
	return *t, true
}

// Get is Lookup with an error for unknown ids.
func (c *Catalog) Get(id string) (Topic, error) {
	t, ok := c.Lookup(id)
	if !ok {
		return Topic{}, fmt.Errorf("topic not found: %q", id)
	}
	return t, nil
}

// ByCategory returns the topics of one category in catalog order.
func (c *Catalog) ByCategory(cat Category) []Topic {
	return slices.Clone(c.byCategory[cat])
}

// Categories returns the categories that have at least one topic, in
// display order.
func (c *Catalog) Categories() []Category {
	var out []Category
	for _, cat := range AllCategories() {
		if len(c.byCategory[cat]) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Search matches query case-insensitively against title and description.
// An empty query returns every topic.
func (c *Catalog) Search(query string) []Topic {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Topics()
	}
	var out []Topic
	for _, t := range c.topics {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// Related resolves a topic's related ids. Ids missing from the catalog
// are skipped.
func (c *Catalog) Related(id string) []Topic {
	t, ok := c.byID[id]
	if !ok {
		return nil
	}
	out := make([]Topic, 0, len(t.Related))
	for _, relID := range t.Related {
		if rel, ok := c.byID[relID]; ok {
			out = append(out, *rel)
		}
	}
	return out
}

// Warnings lists non-fatal problems found when the catalog was built,
// such as related ids that do not resolve.
func (c *Catalog) Warnings() []string {
	return slices.Clone(c.warnings)
}

// IDs returns every topic id, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.topics))
	for _, t := range c.topics {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	return ids
}
