// Package content holds the static pages of the site: the product roadmap,
// the developer sprint plan and the marketing landing page. The documents are
// embedded YAML; descriptions may use markdown.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"

	"github.com/ghodss/yaml"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed data/*.yaml
var files embed.FS

// Raw HTML in markdown input is escaped; WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Markdown renders src to HTML. Rendering failures fall back to the escaped
// source text.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Pages bundles every static document.
type Pages struct {
	Roadmap          *Roadmap
	DeveloperRoadmap *DeveloperRoadmap
	Landing          *Landing
}

// Load decodes all embedded documents.
func Load() (*Pages, error) {
	var pages Pages
	var err error
	if pages.Roadmap, err = decode[Roadmap]("data/roadmap.yaml"); err != nil {
		return nil, err
	}
	if pages.DeveloperRoadmap, err = decode[DeveloperRoadmap]("data/developer_roadmap.yaml"); err != nil {
		return nil, err
	}
	if pages.Landing, err = decode[Landing]("data/landing.yaml"); err != nil {
		return nil, err
	}
	return &pages, nil
}

func decode[T any](name string) (*T, error) {
	raw, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var doc T
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &doc, nil
}

// PhaseStatus is shared by both roadmaps; tasks may additionally be blocked.
type PhaseStatus string

const (
	StatusCompleted  PhaseStatus = "completed"
	StatusInProgress PhaseStatus = "in-progress"
	StatusPending    PhaseStatus = "pending"
	StatusBlocked    PhaseStatus = "blocked"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
