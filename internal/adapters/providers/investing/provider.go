// Package investing lee el calendario económico de investing.com.
package investing

import (
	"context"
	"fmt"
	"strings"

	"economic-calendar/internal/platform/htmlscrape"
	"economic-calendar/internal/platform/httpclient"
	"economic-calendar/internal/ports/provider"

	"github.com/PuerkitoBio/goquery"
)

const (
	Name           = "investing_com"
	DefaultBaseURL = "https://www.investing.com/economic-calendar/"
	SourceZone     = "UTC"
)

// atributo data-* por campo del registro crudo
var dataAttrs = []struct {
	field string
	attr  string
}{
	{provider.FieldTitle, "data-event-title"},
	{provider.FieldCountry, "data-country"},
	{provider.FieldImportance, "data-event-importance"},
	{provider.FieldTime, "data-event-datetime"},
	{provider.FieldActual, "data-actual"},
	{provider.FieldForecast, "data-forecast"},
	{provider.FieldPrevious, "data-previous"},
}

type Provider struct {
	name    string
	baseURL string
	client  *httpclient.Client
}

func New(name, baseURL string, client *httpclient.Client) *Provider {
	if strings.TrimSpace(name) == "" {
		name = Name
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}
	return &Provider{name: name, baseURL: baseURL, client: client}
}

func (p *Provider) Name() string       { return p.name }
func (p *Provider) SourceZone() string { return SourceZone }

// Fetch descarga la página por defecto; la fuente no acepta rango de fechas.
func (p *Provider) Fetch(ctx context.Context, _ provider.Query) ([]provider.RawRecord, error) {
	body, err := p.client.Get(ctx, p.baseURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch: %w", p.name, err)
	}
	doc, err := htmlscrape.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse html: %w", p.name, err)
	}
	return parseRows(doc), nil
}

func parseRows(doc *goquery.Document) []provider.RawRecord {
	rows := doc.Find("tr.js-event-item")
	out := make([]provider.RawRecord, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		rec := provider.RawRecord{}
		for _, da := range dataAttrs {
			if v := strings.TrimSpace(row.AttrOr(da.attr, "")); v != "" {
				rec[da.field] = v
			}
		}
		out = append(out, rec)
	})
	return out
}
