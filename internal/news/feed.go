// internal/news/feed.go
package news

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// feedEntry is the dialect-neutral shape both parsers produce. Downstream
// code never sees RSS or Atom specifics.
type feedEntry struct {
	GUID        string // RSS <guid> or Atom <id>
	Title       string
	Link        string
	DateRaw     string
	Description string
	Summary     string
	Content     string
	Encoded     string
}

// Excerpt picks the first non-empty body field, in fixed priority order.
func (e feedEntry) Excerpt() string {
	for _, candidate := range []string{e.Description, e.Summary, e.Content, e.Encoded} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

type feedParser interface {
	parse(data []byte) ([]feedEntry, error)
}

// parseFeed sniffs the document's root element and dispatches to the
// matching dialect parser.
func parseFeed(data []byte) ([]feedEntry, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}

	var p feedParser
	switch root {
	case "rss", "RDF":
		p = rssParser{}
	case "feed":
		p = atomParser{}
	default:
		return nil, fmt.Errorf("unsupported feed root element %q", root)
	}
	return p.parse(data)
}

func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", fmt.Errorf("document has no root element")
		}
		if err != nil {
			return "", fmt.Errorf("malformed feed: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// rssParser handles RSS 2.0 and RDF/RSS 1.0 documents.
type rssParser struct{}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
	// RDF feeds put items at the top level.
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	GUID        string `xml:"guid"`
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Date        string `xml:"date"`
	IsoDate     string `xml:"isoDate"`
	Description string `xml:"description"`
	Encoded     string `xml:"encoded"`
}

func (rssParser) parse(data []byte) ([]feedEntry, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	items := doc.Channel.Items
	if len(items) == 0 {
		items = doc.Items
	}

	entries := make([]feedEntry, 0, len(items))
	for _, it := range items {
		date := it.PubDate
		if date == "" {
			date = it.Date
		}
		if date == "" {
			date = it.IsoDate
		}
		entries = append(entries, feedEntry{
			GUID:        strings.TrimSpace(it.GUID),
			Title:       strings.TrimSpace(it.Title),
			Link:        strings.TrimSpace(it.Link),
			DateRaw:     strings.TrimSpace(date),
			Description: it.Description,
			Encoded:     it.Encoded,
		})
	}
	return entries, nil
}

// atomParser handles Atom documents.
type atomParser struct{}

type atomDocument struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string     `xml:"id"`
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Updated   string     `xml:"updated"`
	Published string     `xml:"published"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

func (atomParser) parse(data []byte) ([]feedEntry, error) {
	var doc atomDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse atom: %w", err)
	}

	entries := make([]feedEntry, 0, len(doc.Entries))
	for _, en := range doc.Entries {
		// updated outranks published, matching the cross-dialect date
		// priority (pubDate, date, updated); published is a last resort
		date := en.Updated
		if date == "" {
			date = en.Published
		}
		entries = append(entries, feedEntry{
			GUID:    strings.TrimSpace(en.ID),
			Title:   strings.TrimSpace(en.Title),
			Link:    atomEntryLink(en.Links),
			DateRaw: strings.TrimSpace(date),
			Summary: en.Summary,
			Content: en.Content,
		})
	}
	return entries, nil
}

// atomEntryLink prefers the alternate link; entries often also carry self
// and edit links.
func atomEntryLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "alternate" {
			return strings.TrimSpace(l.Href)
		}
	}
	for _, l := range links {
		if l.Rel == "" {
			return strings.TrimSpace(l.Href)
		}
	}
	if len(links) > 0 {
		return strings.TrimSpace(links[0].Href)
	}
	return ""
}
