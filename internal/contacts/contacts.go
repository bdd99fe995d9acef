// Package contacts builds the copy-friendly contact grid and the hero social
// links from the basics section of the resume.
package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/Zachkp/portfolio/internal/markup"
	"github.com/Zachkp/portfolio/internal/resume"
)

// Field is one copyable contact value.
type Field struct {
	ID    string
	Label string
	Value string
}

// Fields lists email, phone and website, then one field per profile.
// Empty values are left out.
func Fields(b resume.Basics) []Field {
	var fields []Field
	seen := map[string]int{}
	add := func(label, value string) {
		if value == "" {
			return
		}
		id := "contact-" + slug(label)
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
		}
		fields = append(fields, Field{ID: id, Label: label, Value: value})
	}

	add("Email", b.Email)
	add("Phone", b.Phone)
	add("Website", b.URL)
	for _, p := range b.Profiles {
		value := p.URL
		if value == "" {
			value = p.Username
		}
		label := p.Network
		if label == "" {
			label = "Profile"
		}
		add(label, value)
	}
	return fields
}

// Grid renders one label, readonly input and copy button per field. Each
// button's data-copy-target names its input.
func Grid(fields []Field) []markup.Node {
	nodes := make([]markup.Node, 0, len(fields))
	for _, f := range fields {
		nodes = append(nodes, markup.Node{
			Tag:   "div",
			Class: "contact-item",
			Children: []markup.Node{
				{Tag: "label", Attrs: []markup.Attr{{Key: "for", Val: f.ID}}, Text: f.Label},
				{Tag: "input", Attrs: []markup.Attr{
					{Key: "id", Val: f.ID},
					{Key: "type", Val: "text"},
					{Key: "value", Val: f.Value},
					{Key: "readonly"},
				}},
				{Tag: "button", Class: "copy-btn", Attrs: []markup.Attr{
					{Key: "type", Val: "button"},
					{Key: "data-copy-target", Val: f.ID},
					{Key: "aria-label", Val: "Copy " + f.Label},
				}, Text: "Copy"},
			},
		})
	}
	return nodes
}

// SocialLinks renders an icon-then-label anchor for every profile with a URL.
func SocialLinks(profiles []resume.Profile) []markup.Node {
	var nodes []markup.Node
	for _, p := range profiles {
		if p.URL == "" {
			continue
		}
		label := p.Network
		if label == "" {
			label = p.Username
		}
		nodes = append(nodes, markup.Node{
			Tag:   "a",
			Class: "social-link",
			Attrs: []markup.Attr{
				{Key: "href", Val: p.URL},
				{Key: "target", Val: "_blank"},
				{Key: "rel", Val: "noopener noreferrer"},
			},
			Children: []markup.Node{
				{Tag: "span", Class: "social-icon", Attrs: []markup.Attr{{Key: "aria-hidden", Val: "true"}}, Text: icon(label)},
				{Tag: "span", Class: "social-label", Text: label},
			},
		})
	}
	return nodes
}

func icon(label string) string {
	for _, r := range label {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Loader reads the basics section from a resume source.
type Loader struct {
	source resume.Source
	logger *slog.Logger
}

func NewLoader(source resume.Source, logger *slog.Logger) *Loader {
	return &Loader{
		source: source,
		logger: logger,
	}
}

// Basics fetches and decodes the basics section. Failures are logged and returned.
func (l *Loader) Basics(ctx context.Context) (resume.Basics, error) {
	body, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to load contact data", "error", err)
		return resume.Basics{}, err
	}
	b, err := resume.ParseBasics(body)
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to load contact data", "error", err)
		return resume.Basics{}, err
	}
	return b, nil
}
