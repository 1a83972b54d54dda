// Package forexfactory lee la tabla semanal de forexfactory.com.
package forexfactory

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"economic-calendar/internal/platform/htmlscrape"
	"economic-calendar/internal/platform/httpclient"
	"economic-calendar/internal/ports/provider"

	"github.com/PuerkitoBio/goquery"
)

const (
	Name           = "forex_factory"
	DefaultBaseURL = "https://www.forexfactory.com/calendar"
	SourceZone     = "America/New_York"

	impactClassPrefix = "icon--ff-impact-"
)

// impacto por color del icono cuando la celda no trae texto
var impactByColor = map[string]string{
	"red": "high",
	"ora": "medium",
	"yel": "low",
	"gra": "low",
}

type Provider struct {
	name    string
	baseURL string
	client  *httpclient.Client
	now     func() time.Time
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
	return &Provider{name: name, baseURL: baseURL, client: client, now: time.Now}
}

func (p *Provider) Name() string       { return p.name }
func (p *Provider) SourceZone() string { return SourceZone }

// Fetch descarga la semana que contiene q.DateFrom.
func (p *Provider) Fetch(ctx context.Context, q provider.Query) ([]provider.RawRecord, error) {
	query := map[string]string{}
	if q.DateFrom != "" {
		query["week"] = q.DateFrom
	}
	body, err := p.client.Get(ctx, p.baseURL, query, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch: %w", p.name, err)
	}
	doc, err := htmlscrape.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse html: %w", p.name, err)
	}
	return parseRows(doc, referenceDate(q.DateFrom, p.now())), nil
}

// referenceDate fija el año de las fechas "Jan 5" de la tabla.
func referenceDate(dateFrom string, now time.Time) time.Time {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(dateFrom)); err == nil {
		return t
	}
	return now.UTC()
}

func parseRows(doc *goquery.Document, ref time.Time) []provider.RawRecord {
	rows := doc.Find("tr.calendar_row")
	out := make([]provider.RawRecord, 0, rows.Length())

	var day, clock string
	rows.Each(func(_ int, row *goquery.Selection) {
		if d := parseDay(cellText(row, "calendar__date"), ref); d != "" {
			day = d
			clock = ""
		}
		if t := cellText(row, "calendar__time"); t != "" {
			clock = t
		}

		rec := provider.RawRecord{
			provider.FieldTitle:   cellText(row, "calendar__event"),
			provider.FieldCountry: cellText(row, "calendar__country"),
		}
		if when := joinDayClock(day, clock); when != "" {
			rec[provider.FieldTime] = when
		}
		if imp := impact(row); imp != "" {
			rec[provider.FieldImportance] = imp
		}
		for field, class := range map[string]string{
			provider.FieldActual:   "calendar__actual",
			provider.FieldForecast: "calendar__forecast",
			provider.FieldPrevious: "calendar__previous",
		} {
			if v := cellText(row, class); v != "" {
				rec[field] = v
			}
		}
		out = append(out, rec)
	})
	return out
}

func cellText(row *goquery.Selection, class string) string {
	return htmlscrape.Text(row.Find("." + class).First())
}

func impact(row *goquery.Selection) string {
	cell := row.Find(".calendar__impact").First()
	if cell.Length() == 0 {
		return ""
	}
	if t := strings.ToLower(htmlscrape.Text(cell)); t != "" {
		return strings.TrimSuffix(t, " impact expected")
	}
	spans := cell.Find("span")
	var level string
	spans.EachWithBreak(func(_ int, n *goquery.Selection) bool {
		if class, ok := htmlscrape.ClassWithPrefix(n, impactClassPrefix); ok {
			level = impactByColor[strings.TrimPrefix(class, impactClassPrefix)]
			return false
		}
		return true
	})
	if level != "" {
		return level
	}
	if t, ok := spans.First().Attr("title"); ok {
		return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(t)), " impact expected")
	}
	return ""
}

// parseDay convierte "Fri Jan 5" en "Jan 5, 2024". La semana puede cruzar
// el cambio de año respecto a ref.
func parseDay(text string, ref time.Time) string {
	f := strings.Fields(text)
	if len(f) < 2 {
		return ""
	}
	md := strings.Join(f[len(f)-2:], " ")
	d, err := time.Parse("Jan 2", md)
	if err != nil {
		return ""
	}
	year := ref.Year()
	switch {
	case ref.Month() == time.December && d.Month() == time.January:
		year++
	case ref.Month() == time.January && d.Month() == time.December:
		year--
	}
	return fmt.Sprintf("%s %d, %d", d.Month().String()[:3], d.Day(), year)
}

// clockRe: "8:30am", "14:00". "All Day", "Tentative" o "Day 2" no son hora.
var clockRe = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s*(am|pm)?$`)

// joinDayClock arma "Jan 5, 2024 8:30am". Sin día o sin hora de reloj
// devuelve "" y el evento queda sin hora.
func joinDayClock(day, clock string) string {
	if day == "" || !clockRe.MatchString(clock) {
		return ""
	}
	return day + " " + clock
}
