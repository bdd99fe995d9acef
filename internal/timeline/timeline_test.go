package timeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/resume"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Present"},
		{"2020", "2020"},
		{"2020-03", "Mar 2020"},
		{"2020-12", "Dec 2020"},
		{"2020-01-15", "Jan 2020"},
		{"2020-13", "2020"},
		{"2020-00", "2020"},
		{"2020-xx", "2020"},
		{"2020-", "2020"},
		{"2020-3", "Mar 2020"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestDateRange(t *testing.T) {
	got := DateRange(resume.Job{StartDate: "2019-04"})
	assert.Equal(t, "Apr 2019\u00a0\u2013\u00a0Present", got)
}

func TestTitleAndSubtitle(t *testing.T) {
	tests := []struct {
		name     string
		job      resume.Job
		title    string
		subtitle string
	}{
		{
			name:     "self-employed with description",
			job:      resume.Job{Name: "Self-employed", Position: "Founder", Description: "Consulting", Location: "Remote"},
			title:    "Founder, Consulting",
			subtitle: "Remote",
		},
		{
			name:     "self-employed without description",
			job:      resume.Job{Name: "Self-employed", Position: "Founder"},
			title:    "Founder",
			subtitle: "",
		},
		{
			name:     "employer and location",
			job:      resume.Job{Name: "Acme", Location: "NYC", Position: "Engineer"},
			title:    "Engineer",
			subtitle: "Acme, NYC",
		},
		{
			name:     "description ignored for employers",
			job:      resume.Job{Name: "Acme", Position: "Engineer", Description: "Widgets"},
			title:    "Engineer",
			subtitle: "Acme",
		},
		{
			name:     "location only",
			job:      resume.Job{Location: "Berlin"},
			subtitle: "Berlin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, Title(tt.job))
			assert.Equal(t, tt.subtitle, Subtitle(tt.job))
		})
	}
}

func TestItem(t *testing.T) {
	item := Item(resume.Job{
		Name:       "Acme",
		Position:   "Engineer",
		StartDate:  "2020",
		EndDate:    "2021-06",
		Highlights: []string{"first", "second"},
	})

	assert.Equal(t, Node{
		Tag:   "div",
		Class: "timeline-item",
		Children: []Node{
			{Tag: "span", Class: "timeline-date", Text: "2020\u00a0\u2013\u00a0Jun 2021"},
			{Tag: "div", Class: "timeline-content", Children: []Node{
				{Tag: "h4", Text: "Engineer"},
				{Tag: "p", Class: "location", Text: "Acme"},
				{Tag: "ul", Children: []Node{
					{Tag: "li", Text: "first"},
					{Tag: "li", Text: "second"},
				}},
			}},
		},
	}, item)
}

func TestItem_NoHighlightsNoList(t *testing.T) {
	item := Item(resume.Job{Position: "Engineer", Highlights: []string{}})
	content := item.Children[1]
	require.Len(t, content.Children, 2)
	assert.Equal(t, "h4", content.Children[0].Tag)
	assert.Equal(t, "p", content.Children[1].Tag)
}

func parse(t *testing.T, nodes []Node) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nodes))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRender_EscapesText(t *testing.T) {
	var buf bytes.Buffer
	nodes := Items([]resume.Job{{
		Position:   "<script>alert(1)</script>",
		Highlights: []string{"Shipped <b>things</b> & more"},
	}})
	require.NoError(t, Render(&buf, nodes))

	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;b&gt;things&lt;/b&gt; &amp; more")

	doc := parse(t, nodes)
	assert.Equal(t, "Shipped <b>things</b> & more", doc.Find("li").First().Text())
	assert.Equal(t, 0, doc.Find("b").Length())
}

func TestRender_Structure(t *testing.T) {
	doc := parse(t, Items([]resume.Job{
		{Name: "Acme", Location: "NYC", Position: "Engineer", Highlights: []string{"a", "b", "c"}},
		{Name: "Self-employed", Position: "Founder", Description: "Consulting", Location: "Remote"},
	}))

	items := doc.Find("div.timeline-item")
	require.Equal(t, 2, items.Length())

	first := items.Eq(0)
	assert.Equal(t, "Engineer", first.Find(".timeline-content h4").Text())
	assert.Equal(t, "Acme, NYC", first.Find("p.location").Text())
	var bullets []string
	first.Find("ul li").Each(func(_ int, s *goquery.Selection) {
		bullets = append(bullets, s.Text())
	})
	assert.Equal(t, []string{"a", "b", "c"}, bullets)

	second := items.Eq(1)
	assert.Equal(t, "Founder, Consulting", second.Find("h4").Text())
	assert.Equal(t, "Remote", second.Find("p.location").Text())
	assert.Equal(t, 0, second.Find("ul").Length())
}

type fakeSource struct {
	body  string
	err   error
	calls int
}

func (s *fakeSource) Fetch(context.Context) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.body), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func prefilled() *Fragment {
	f := &Fragment{}
	f.Replace([]Node{{Tag: "p", Class: "placeholder", Text: "Loading"}})
	return f
}

func TestLoader_Rendered(t *testing.T) {
	src := &fakeSource{body: `{"work": [{"name": "Acme", "position": "Engineer"}, {"name": "Beta"}]}`}
	frag := prefilled()

	outcome := NewLoader(src, discardLogger()).Load(context.Background(), frag)

	assert.Equal(t, Rendered, outcome)
	require.Len(t, frag.Nodes(), 2)
	assert.Equal(t, "timeline-item", frag.Nodes()[0].Class)
}

func TestLoader_EmptyWorkClearsContainer(t *testing.T) {
	frag := prefilled()
	outcome := NewLoader(&fakeSource{body: `{"work": []}`}, discardLogger()).Load(context.Background(), frag)

	assert.Equal(t, Rendered, outcome)
	assert.Empty(t, frag.Nodes())
}

func TestLoader_FetchFailureFallsBack(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	frag := prefilled()

	outcome := NewLoader(&fakeSource{err: &resume.StatusError{Code: 404}}, logger).Load(context.Background(), frag)

	assert.Equal(t, FellBack, outcome)
	doc := parse(t, frag.Nodes())
	require.Equal(t, 1, doc.Find(".timeline-item").Length())
	assert.Contains(t, doc.Find(".timeline-item").Text(), "resume.json")
	assert.Equal(t, 0, doc.Find(".placeholder").Length())
	assert.Contains(t, logs.String(), "HTTP error 404")
}

func TestLoader_ParseFailureFallsBack(t *testing.T) {
	frag := prefilled()
	outcome := NewLoader(&fakeSource{body: "<html>not json</html>"}, discardLogger()).Load(context.Background(), frag)

	assert.Equal(t, FellBack, outcome)
	assert.Equal(t, Fallback(), frag.Nodes())
}

func TestLoader_MalformedWorkIsSilent(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	frag := prefilled()
	before := frag.Nodes()

	outcome := NewLoader(&fakeSource{body: `{"work": {"name": "Acme"}}`}, logger).Load(context.Background(), frag)

	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, before, frag.Nodes())
	assert.Empty(t, logs.String())
}

func TestLoader_NoMountNoFetch(t *testing.T) {
	src := &fakeSource{err: errors.New("should not be called")}

	outcome := NewLoader(src, discardLogger()).Load(context.Background(), nil)

	assert.Equal(t, Skipped, outcome)
	assert.Zero(t, src.calls)
}

func TestFragment_WriteTo(t *testing.T) {
	frag := &Fragment{}
	frag.Replace(Fallback())

	var sb strings.Builder
	n, err := frag.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	assert.True(t, strings.HasPrefix(sb.String(), `<div class="timeline-item timeline-error">`))
}
