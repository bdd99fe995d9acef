// Package timeline turns work-history records into the experience timeline
// markup and loads them from a resume source.
package timeline

import "github.com/Zachkp/portfolio/internal/resume"

// FallbackMessage is shown when the resume could not be fetched or parsed.
const FallbackMessage = "Could not load resume.json. If you opened this page from file://, " +
	"serve the folder with a local web server (for example python3 -m http.server) and reload."

// Item builds the timeline item for a single job.
func Item(job resume.Job) Node {
	content := Node{
		Tag:   "div",
		Class: "timeline-content",
		Children: []Node{
			{Tag: "h4", Text: Title(job)},
			{Tag: "p", Class: "location", Text: Subtitle(job)},
		},
	}

	if len(job.Highlights) > 0 {
		list := Node{Tag: "ul", Children: make([]Node, 0, len(job.Highlights))}
		for _, h := range job.Highlights {
			list.Children = append(list.Children, Node{Tag: "li", Text: h})
		}
		content.Children = append(content.Children, list)
	}

	return Node{
		Tag:   "div",
		Class: "timeline-item",
		Children: []Node{
			{Tag: "span", Class: "timeline-date", Text: DateRange(job)},
			content,
		},
	}
}

// Items builds one item per job, in order.
func Items(jobs []resume.Job) []Node {
	nodes := make([]Node, 0, len(jobs))
	for _, job := range jobs {
		nodes = append(nodes, Item(job))
	}
	return nodes
}

// Fallback is the single notice rendered in place of the timeline.
func Fallback() []Node {
	return []Node{{
		Tag:   "div",
		Class: "timeline-item timeline-error",
		Children: []Node{
			{Tag: "p", Text: FallbackMessage},
		},
	}}
}
