// Package resume reads the JSON resume document that feeds the experience timeline.
package resume

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// SelfEmployed is the employer name that switches a job to the
// "position, description" title and a location-only subtitle.
const SelfEmployed = "Self-employed"

// ErrNoWork means the document parsed but has no usable work list.
var ErrNoWork = errors.New("resume: document has no work array")

// Document is the part of a JSON resume the site uses.
type Document struct {
	Basics Basics
	Work   []Job
}

// Basics holds the contact details shown in the contacts section and the
// hero social links.
type Basics struct {
	Name     string
	Label    string
	Email    string
	Phone    string
	URL      string
	Profiles []Profile
}

// Profile is one social network account.
type Profile struct {
	Network  string
	Username string
	URL      string
}

// Job is a single work-history entry. Dates are partial ISO dates
// (YYYY or YYYY-MM); an empty EndDate means the job is current.
type Job struct {
	Position    string
	Name        string
	Location    string
	Description string
	StartDate   string
	EndDate     string
	Highlights  []string
}

// IsSelfEmployed reports whether the employer is the self-employed sentinel.
func (j Job) IsSelfEmployed() bool {
	return j.Name == SelfEmployed
}

// ParseError wraps a body that is not valid JSON.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("resume: invalid JSON: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// workSchema only checks the shape the timeline depends on. Individual job
// fields are read leniently.
const workSchema = `{
	"type": "object",
	"required": ["work"],
	"properties": {
		"work": {"type": "array"}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(workSchema)

// Parse decodes a resume body. Malformed JSON yields *ParseError; a body
// whose work field is missing or not an array yields ErrNoWork.
func Parse(data []byte) (Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &ParseError{Cause: err}
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return Document{}, fmt.Errorf("resume: schema check: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Document{}, fmt.Errorf("%w: %s", ErrNoWork, strings.Join(msgs, "; "))
	}

	top := raw.(map[string]any)
	entries := top["work"].([]any)
	doc := Document{
		Basics: basicsFrom(top["basics"]),
		Work:   make([]Job, 0, len(entries)),
	}
	for _, entry := range entries {
		doc.Work = append(doc.Work, jobFrom(entry))
	}
	return doc, nil
}

// ParseBasics decodes only the basics section. It needs valid JSON but not
// a work array; a missing or malformed basics object yields zero Basics.
func ParseBasics(data []byte) (Basics, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Basics{}, &ParseError{Cause: err}
	}
	top, _ := raw.(map[string]any)
	return basicsFrom(top["basics"]), nil
}

func basicsFrom(v any) Basics {
	m, _ := v.(map[string]any)
	b := Basics{
		Name:  str(m, "name"),
		Label: str(m, "label"),
		Email: str(m, "email"),
		Phone: str(m, "phone"),
		URL:   str(m, "url"),
	}
	if list, ok := m["profiles"].([]any); ok {
		for _, entry := range list {
			p, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			b.Profiles = append(b.Profiles, Profile{
				Network:  str(p, "network"),
				Username: str(p, "username"),
				URL:      str(p, "url"),
			})
		}
	}
	return b
}

// jobFrom picks the known fields out of one work entry. Anything missing or
// of the wrong type becomes the zero value.
func jobFrom(v any) Job {
	m, _ := v.(map[string]any)
	job := Job{
		Position:    str(m, "position"),
		Name:        str(m, "name"),
		Location:    str(m, "location"),
		Description: str(m, "description"),
		StartDate:   str(m, "startDate"),
		EndDate:     str(m, "endDate"),
	}
	if list, ok := m["highlights"].([]any); ok {
		for _, h := range list {
			if s, ok := h.(string); ok {
				job.Highlights = append(job.Highlights, s)
			}
		}
	}
	return job
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
