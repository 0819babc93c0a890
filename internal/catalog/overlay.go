package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/cfdroid/internal/apperr"
)

// overlayFile is the YAML shape of a user catalog file:
//
//	topics:
//	  - id: hyperdrive
//	    title: Hyperdrive
//	    category: Storage
//	    limits: ["..."]
type overlayFile struct {
	Topics []overlayTopic `yaml:"topics"`
}

type overlayTopic struct {
	ID            string            `yaml:"id"`
	Title         string            `yaml:"title"`
	Description   string            `yaml:"description"`
	Icon          string            `yaml:"icon"`
	Color         string            `yaml:"color"`
	Category      string            `yaml:"category"`
	Overview      string            `yaml:"overview"`
	Limits        []string          `yaml:"limits"`
	SetupSteps    []string          `yaml:"setup_steps"`
	Specs         map[string]string `yaml:"specs"`
	Related       []string          `yaml:"related"`
	BestPractices []string          `yaml:"best_practices"`
	CommonErrors  []struct {
		Code    string `yaml:"code"`
		Message string `yaml:"message"`
		Fix     string `yaml:"fix"`
	} `yaml:"common_errors"`
}

func (o overlayTopic) topic() (Topic, error) {
	cat, ok := ParseCategory(o.Category)
	if !ok {
		return Topic{}, fmt.Errorf("topic %q: unknown category %q", o.ID, o.Category)
	}
	t := Topic{
		ID:            o.ID,
		Title:         o.Title,
		Description:   o.Description,
		Icon:          Icon(o.Icon),
		Color:         o.Color,
		Category:      cat,
		Overview:      o.Overview,
		Limits:        o.Limits,
		SetupSteps:    o.SetupSteps,
		Specs:         o.Specs,
		Related:       o.Related,
		BestPractices: o.BestPractices,
	}
	for _, e := range o.CommonErrors {
		t.CommonErrors = append(t.CommonErrors, CommonError{Code: e.Code, Message: e.Message, Fix: e.Fix})
	}
	return t, nil
}

// ParseOverlay decodes extra topics from YAML. Unknown keys are rejected.
func ParseOverlay(r io.Reader) ([]Topic, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f overlayFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &apperr.ConfigurationError{Feature: "catalog file", Reason: err.Error()}
	}

	topics := make([]Topic, 0, len(f.Topics))
	for _, o := range f.Topics {
		t, err := o.topic()
		if err != nil {
			return nil, &apperr.ConfigurationError{Feature: "catalog file", Reason: err.Error()}
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// LoadOverlay reads a YAML catalog file from disk.
func LoadOverlay(path string) ([]Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseOverlay(bytes.NewReader(data))
}

// Extend returns a new catalog with extra merged into c. A topic whose id
// already exists replaces the built-in entry in place; new topics are
// appended in file order.
func (c *Catalog) Extend(extra []Topic) (*Catalog, error) {
	if len(extra) == 0 {
		return c, nil
	}
	merged := c.Topics()
	index := make(map[string]int, len(merged))
	for i, t := range merged {
		index[t.ID] = i
	}
	for _, t := range extra {
		if i, ok := index[t.ID]; ok {
			merged[i] = t
			continue
		}
		index[t.ID] = len(merged)
		merged = append(merged, t)
	}
	return New(merged)
}
