package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses an RSS/Atom document. When gofeed rejects a document that holds
// complete entries before the point of failure, e.g. a body cut off in
// transit, those entries are returned together with the error so the caller
// can decide to keep them.
func (p *Parser) Run(data []byte) ([]Entry, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err == nil {
		return p.normalizeItems(parsed.Items), nil
	}

	repaired := closeAfterLastEntry(data)
	if repaired == nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	parsed, repairErr := p.gofeedParser.Parse(bytes.NewReader(repaired))
	if repairErr != nil || len(parsed.Items) == 0 {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return p.normalizeItems(parsed.Items), fmt.Errorf("feed parsed with errors: %w", err)
}

func (p *Parser) normalizeItems(items []*gofeed.Item) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, p.normalizeItem(item))
	}
	return entries
}

func (p *Parser) normalizeItem(item *gofeed.Item) Entry {
	entry := Entry{
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
		Content:     item.Content,
	}

	if item.PublishedParsed != nil {
		entry.PublishedAt = item.PublishedParsed
	}

	if item.UpdatedParsed != nil {
		entry.UpdatedAt = item.UpdatedParsed
	}

	return entry
}

// closeAfterLastEntry cuts data after the last complete <item> or <entry>
// element and closes the elements still open at that point. It returns nil
// when the document has no complete entry.
func closeAfterLastEntry(data []byte) []byte {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	// Only the element structure matters here; gofeed handles the charset.
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var (
		open    []string
		cut     int64 = -1
		closing []string
	)

	for {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			open = append(open, qualifiedName(t.Name))
		case xml.EndElement:
			name := qualifiedName(t.Name)
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == name {
					open = open[:i]
					break
				}
			}
			if local := strings.ToLower(t.Name.Local); local == "item" || local == "entry" {
				cut = decoder.InputOffset()
				closing = append(closing[:0], open...)
			}
		}
	}

	if cut < 0 {
		return nil
	}

	var b bytes.Buffer
	b.Grow(int(cut) + 64)
	b.Write(data[:cut])
	for i := len(closing) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "</%s>", closing[i])
	}
	return b.Bytes()
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
