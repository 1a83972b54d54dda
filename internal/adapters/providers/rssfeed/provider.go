// Package rssfeed adapta feeds RSS/Atom de calendarios a registros crudos.
package rssfeed

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"economic-calendar/internal/platform/httpclient"
	"economic-calendar/internal/ports/provider"

	"github.com/mmcdole/gofeed"
)

const Name = "rss"

// elementos propios (sin namespace o en cualquier extensión) por campo
var customFields = map[string]string{
	provider.FieldCountry:    "country",
	provider.FieldImportance: "impact",
	provider.FieldActual:     "actual",
	provider.FieldForecast:   "forecast",
	provider.FieldPrevious:   "previous",
}

type Provider struct {
	name    string
	feedURL string
	zone    string
	client  *httpclient.Client
}

// New exige feedURL. zone es la zona de fechas sin offset; "" => UTC.
func New(name, feedURL, zone string, client *httpclient.Client) (*Provider, error) {
	if strings.TrimSpace(feedURL) == "" {
		return nil, fmt.Errorf("rss: base_url is required")
	}
	if strings.TrimSpace(name) == "" {
		name = Name
	}
	if strings.TrimSpace(zone) == "" {
		zone = "UTC"
	}
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}
	return &Provider{name: name, feedURL: feedURL, zone: zone, client: client}, nil
}

func (p *Provider) Name() string       { return p.name }
func (p *Provider) SourceZone() string { return p.zone }

func (p *Provider) Fetch(ctx context.Context, _ provider.Query) ([]provider.RawRecord, error) {
	body, err := p.client.Get(ctx, p.feedURL, nil, map[string]string{
		"Accept": "application/rss+xml, application/atom+xml, application/xml;q=0.9",
	})
	if err != nil {
		return nil, fmt.Errorf("%s: fetch: %w", p.name, err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: parse feed: %w", p.name, err)
	}

	out := make([]provider.RawRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		out = append(out, toRecord(item))
	}
	return out, nil
}

func toRecord(item *gofeed.Item) provider.RawRecord {
	rec := provider.RawRecord{}
	if t := strings.TrimSpace(item.Title); t != "" {
		rec[provider.FieldTitle] = t
	}
	if len(item.Categories) > 0 {
		rec[provider.FieldCountry] = strings.TrimSpace(item.Categories[0])
	}

	// con offset explícito el resultado no depende de la zona de la fuente
	switch {
	case item.PublishedParsed != nil:
		rec[provider.FieldTime] = item.PublishedParsed.Format(time.RFC3339)
	case strings.TrimSpace(item.Published) != "":
		rec[provider.FieldTime] = strings.TrimSpace(item.Published)
	}

	for field, elem := range customFields {
		if v := lookup(item, elem); v != "" {
			rec[field] = v
		}
	}
	return rec
}

func lookup(item *gofeed.Item, elem string) string {
	if v := strings.TrimSpace(item.Custom[elem]); v != "" {
		return v
	}
	for _, byName := range item.Extensions {
		for _, e := range byName[elem] {
			if v := strings.TrimSpace(e.Value); v != "" {
				return v
			}
		}
	}
	return ""
}
