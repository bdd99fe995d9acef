package timeline

import (
	"io"

	"github.com/Zachkp/portfolio/internal/markup"
)

// Node describes one element of the timeline.
type Node = markup.Node

// Render writes nodes as HTML.
func Render(w io.Writer, nodes []Node) error {
	return markup.Render(w, nodes)
}
