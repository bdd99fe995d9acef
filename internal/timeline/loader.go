package timeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Zachkp/portfolio/internal/resume"
)

// Outcome says what Load did to the mount.
type Outcome int

const (
	// Skipped leaves the mount untouched.
	Skipped Outcome = iota
	// Rendered replaced the mount with one item per job.
	Rendered
	// FellBack replaced the mount with the fallback notice.
	FellBack
)

func (o Outcome) String() string {
	switch o {
	case Rendered:
		return "rendered"
	case FellBack:
		return "fallback"
	default:
		return "skipped"
	}
}

// Mount is the container the timeline is drawn into.
type Mount interface {
	Replace(nodes []Node)
}

// Loader fetches the resume and fills a mount.
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

// Load fills mount from the resume source. A nil mount means there is
// nowhere to draw, so nothing is fetched. Fetch and parse failures are logged
// and replaced by the fallback notice. A document without a work array is
// ignored silently.
func (l *Loader) Load(ctx context.Context, mount Mount) Outcome {
	if mount == nil {
		return Skipped
	}

	body, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to load timeline data", "error", err)
		mount.Replace(Fallback())
		return FellBack
	}

	doc, err := resume.Parse(body)
	if errors.Is(err, resume.ErrNoWork) {
		return Skipped
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to load timeline data", "error", err)
		mount.Replace(Fallback())
		return FellBack
	}

	mount.Replace(Items(doc.Work))
	l.logger.DebugContext(ctx, "timeline rendered", "jobs", len(doc.Work))
	return Rendered
}

// Fragment is an in-memory mount that renders to HTML.
type Fragment struct {
	nodes []Node
}

func (f *Fragment) Replace(nodes []Node) {
	f.nodes = nodes
}

// Nodes returns the current content.
func (f *Fragment) Nodes() []Node {
	return f.nodes
}

// WriteTo renders the current content.
func (f *Fragment) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := Render(&buf, f.nodes); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}
