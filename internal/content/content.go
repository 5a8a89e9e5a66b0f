package content

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

type Item struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Home struct {
	Badge         string `yaml:"badge"`
	Headline      string `yaml:"headline"`
	Intro         string `yaml:"intro"`
	ServicesIntro string `yaml:"services_intro"`
	Highlights    []Item `yaml:"highlights"`
	WhyIntro      string `yaml:"why_intro"`
	Reasons       []Item `yaml:"reasons"`
	CtaTitle      string `yaml:"cta_title"`
	CtaText       string `yaml:"cta_text"`
}

type About struct {
	Intro   string `yaml:"intro"`
	Mission string `yaml:"mission"`
	Values  []Item `yaml:"values"`
	Closing string `yaml:"closing"`
}

// Content is the copy of the static pages.
type Content struct {
	Company  string `yaml:"company"`
	Home     Home   `yaml:"home"`
	About    About  `yaml:"about"`
	Services []Item `yaml:"services"`
	Perks    []Item `yaml:"perks"`
}

func Default() (*Content, error) {
	return Parse(defaultContent)
}

func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("couldn't parse site content: %w", err)
	}
	if c.Company == "" {
		return nil, fmt.Errorf("site content has no company name")
	}
	if len(c.Services) == 0 {
		return nil, fmt.Errorf("site content has no services")
	}
	return &c, nil
}
