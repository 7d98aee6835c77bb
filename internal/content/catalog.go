// Package content serves the static marketing catalog: services, packages,
// case studies, FAQs and the enquiry form options.
package content

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embedded []byte

// Section names accepted by Catalog.Section.
const (
	SectionServices    = "services"
	SectionPackages    = "packages"
	SectionCaseStudies = "case-studies"
	SectionFAQs        = "faqs"
	SectionFormOptions = "form-options"
)

// Sections lists the section names in display order.
var Sections = []string{SectionServices, SectionPackages, SectionCaseStudies, SectionFAQs, SectionFormOptions}

type Service struct {
	Slug         string   `yaml:"slug" json:"slug"`
	Title        string   `yaml:"title" json:"title"`
	Deliverables []string `yaml:"deliverables" json:"deliverables"`
	Outcome      string   `yaml:"outcome" json:"outcome"`
	IdealFor     string   `yaml:"idealFor" json:"idealFor"`
}

type Package struct {
	Name       string `yaml:"name" json:"name"`
	Price      string `yaml:"price" json:"price"`
	FromAmount int    `yaml:"fromAmount" json:"fromAmount"`
	BestFor    string `yaml:"bestFor" json:"bestFor"`
}

// CaseStudy is a portfolio entry. Short-form entries carry tags and metrics
// instead of location, year and imagery.
type CaseStudy struct {
	Slug           string   `yaml:"slug" json:"slug"`
	Title          string   `yaml:"title" json:"title"`
	Location       string   `yaml:"location,omitempty" json:"location,omitempty"`
	Focus          string   `yaml:"focus,omitempty" json:"focus,omitempty"`
	Year           string   `yaml:"year,omitempty" json:"year,omitempty"`
	Summary        string   `yaml:"summary,omitempty" json:"summary,omitempty"`
	Challenge      string   `yaml:"challenge" json:"challenge"`
	Strategy       string   `yaml:"strategy" json:"strategy"`
	Impact         string   `yaml:"impact" json:"impact"`
	BusinessImpact string   `yaml:"businessImpact,omitempty" json:"businessImpact,omitempty"`
	Image          string   `yaml:"image,omitempty" json:"image,omitempty"`
	Tags           []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Metrics        []string `yaml:"metrics,omitempty" json:"metrics,omitempty"`
}

type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// FormOptions are the select values offered on the enquiry form.
type FormOptions struct {
	ProjectTypes []string `yaml:"projectTypes" json:"projectTypes"`
	Budgets      []string `yaml:"budgets" json:"budgets"`
	Timelines    []string `yaml:"timelines" json:"timelines"`
}

// Catalog is read-only after Parse and safe for concurrent use.
type Catalog struct {
	Services    []Service   `yaml:"services" json:"services"`
	Packages    []Package   `yaml:"packages" json:"packages"`
	CaseStudies []CaseStudy `yaml:"caseStudies" json:"caseStudies"`
	FAQs        []FAQ       `yaml:"faqs" json:"faqs"`
	FormOptions FormOptions `yaml:"formOptions" json:"formOptions"`

	caseStudyIndex map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embedded)
	})
	return defaultCatalog, defaultErr
}

// MustDefault panics if the embedded catalog is invalid.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a YAML catalog and checks slugs are present and unique.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode content catalog: %w", err)
	}

	services := make(map[string]bool, len(c.Services))
	for _, s := range c.Services {
		if s.Slug == "" {
			return nil, fmt.Errorf("service %q has no slug", s.Title)
		}
		if services[s.Slug] {
			return nil, fmt.Errorf("duplicate service slug %q", s.Slug)
		}
		services[s.Slug] = true
	}

	c.caseStudyIndex = make(map[string]int, len(c.CaseStudies))
	for i, cs := range c.CaseStudies {
		if cs.Slug == "" {
			return nil, fmt.Errorf("case study %q has no slug", cs.Title)
		}
		if _, dup := c.caseStudyIndex[cs.Slug]; dup {
			return nil, fmt.Errorf("duplicate case study slug %q", cs.Slug)
		}
		c.caseStudyIndex[cs.Slug] = i
	}

	return &c, nil
}

// CaseStudy looks up a case study by slug.
func (c *Catalog) CaseStudy(slug string) (CaseStudy, bool) {
	i, ok := c.caseStudyIndex[slug]
	if !ok {
		return CaseStudy{}, false
	}
	return c.CaseStudies[i], true
}

// Section returns the named part of the catalog for JSON rendering.
func (c *Catalog) Section(name string) (interface{}, bool) {
	switch name {
	case SectionServices:
		return c.Services, true
	case SectionPackages:
		return c.Packages, true
	case SectionCaseStudies:
		return c.CaseStudies, true
	case SectionFAQs:
		return c.FAQs, true
	case SectionFormOptions:
		return c.FormOptions, true
	}
	return nil, false
}
