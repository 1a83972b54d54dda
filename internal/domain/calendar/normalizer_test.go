package calendar

import (
	"testing"

	"economic-calendar/internal/ports/provider"
)

func newNormalizer(t *testing.T, display string) *Normalizer {
	t.Helper()
	return NewNormalizer(newTimes(t, display))
}

func hasKind(diags []Diagnostic, k DiagnosticKind) bool {
	for _, d := range diags {
		if d.Kind == k {
			return true
		}
	}
	return false
}

func TestNormalize_EndToEndCPI(t *testing.T) {
	n := newNormalizer(t, "UTC")

	raw := provider.RawRecord{
		provider.FieldTitle:      "CPI",
		provider.FieldCountry:    "US",
		provider.FieldImportance: "HIGH",
		provider.FieldTime:       "2024-01-05 08:30",
		provider.FieldActual:     "3.1%",
		provider.FieldForecast:   "3.0%",
		provider.FieldPrevious:   "2,950K",
	}
	e, diags, ok := n.Normalize(Input{Provider: "x", SourceZone: "America/New_York", Raw: raw}, Filter{})
	if !ok {
		t.Fatalf("expected event, got diagnostics %+v", diags)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}

	if e.Importance != ImportanceHigh {
		t.Fatalf("unexpected importance %s", e.Importance)
	}
	if e.ActualValue == nil || *e.ActualValue != 3.1 {
		t.Fatalf("unexpected actual %v", e.ActualValue)
	}
	if e.ForecastValue == nil || *e.ForecastValue != 3.0 {
		t.Fatalf("unexpected forecast %v", e.ForecastValue)
	}
	if e.PreviousValue == nil || *e.PreviousValue != 2950000 {
		t.Fatalf("unexpected previous %v", e.PreviousValue)
	}
	if e.TimeUTC != "2024-01-05T13:30:00+00:00" || e.TimeLocal != "2024-01-05 13:30" {
		t.Fatalf("unexpected times %q / %q", e.TimeUTC, e.TimeLocal)
	}
	if e.Timezone != "UTC" {
		t.Fatalf("unexpected timezone %q", e.Timezone)
	}
	if e.ID != EventID("x", "CPI", "US", "2024-01-05T13:30:00+00:00") {
		t.Fatalf("unexpected id %s", e.ID)
	}
}

func TestNormalize_CountryFilter(t *testing.T) {
	n := newNormalizer(t, "UTC")
	in := Input{Provider: "x", Raw: provider.RawRecord{
		provider.FieldTitle:   "Ifo Business Climate",
		provider.FieldCountry: "DE",
	}}

	_, diags, ok := n.Normalize(in, Filter{Countries: []string{"US"}})
	if ok {
		t.Fatalf("expected DE record rejected with countries=[US]")
	}
	if !hasKind(diags, DiagCountryFiltered) {
		t.Fatalf("expected country_filtered diagnostic, got %+v", diags)
	}

	if _, _, ok := n.Normalize(in, Filter{}); !ok {
		t.Fatalf("expected record accepted with empty country filter")
	}
}

func TestNormalize_ImportanceFilterUsesCanonicalLabel(t *testing.T) {
	n := newNormalizer(t, "UTC")
	in := Input{Provider: "x", Raw: provider.RawRecord{
		provider.FieldTitle:      "NFP",
		provider.FieldImportance: "High",
	}}

	if _, _, ok := n.Normalize(in, Filter{Importances: []string{"HIGH"}}); !ok {
		t.Fatalf("expected High accepted by HIGH filter")
	}
	_, diags, ok := n.Normalize(in, Filter{Importances: []string{"low", "medium"}})
	if ok || !hasKind(diags, DiagImportanceFiltered) {
		t.Fatalf("expected importance_filtered rejection, ok=%v diags=%+v", ok, diags)
	}
}

func TestNormalize_UnknownImportanceDefaultsToMedium(t *testing.T) {
	n := newNormalizer(t, "UTC")

	e, diags, ok := n.Normalize(Input{Provider: "x", Raw: provider.RawRecord{
		provider.FieldTitle:      "Speech",
		provider.FieldImportance: "critical",
	}}, Filter{})
	if !ok {
		t.Fatalf("expected event")
	}
	if e.Importance != ImportanceMedium {
		t.Fatalf("expected medium, got %s", e.Importance)
	}
	if !hasKind(diags, DiagImportanceDefaulted) {
		t.Fatalf("expected importance_defaulted diagnostic")
	}
}

func TestNormalize_MissingTitleRejected(t *testing.T) {
	n := newNormalizer(t, "UTC")

	_, diags, ok := n.Normalize(Input{Provider: "x", Raw: provider.RawRecord{
		provider.FieldTitle:   "   ",
		provider.FieldCountry: "US",
	}}, Filter{})
	if ok {
		t.Fatalf("expected rejection without title")
	}
	if !hasKind(diags, DiagMissingTitle) || !diags[0].Kind.Rejects() {
		t.Fatalf("expected rejecting missing_title diagnostic, got %+v", diags)
	}
}

func TestNormalize_MalformedDataDegrades(t *testing.T) {
	n := newNormalizer(t, "UTC")

	e, diags, ok := n.Normalize(Input{Provider: "x", SourceZone: "America/New_York", Raw: provider.RawRecord{
		provider.FieldTitle:  "Bank Holiday",
		provider.FieldTime:   "All Day",
		provider.FieldActual: "n/a",
	}}, Filter{})
	if !ok {
		t.Fatalf("malformed time/number must not drop the event")
	}
	if e.TimeUTC != "" || e.TimeLocal != "" || e.ActualValue != nil {
		t.Fatalf("expected absent values, got %+v", e)
	}
	if e.ID != Identity("x", "Bank Holiday") {
		t.Fatalf("id must skip absent fields")
	}
	if !hasKind(diags, DiagTimeUnparsed) || !hasKind(diags, DiagNumberUnparsed) {
		t.Fatalf("expected time/number diagnostics, got %+v", diags)
	}
	for _, d := range diags {
		if d.Kind.Rejects() {
			t.Fatalf("unexpected rejecting diagnostic %+v", d)
		}
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	n := newNormalizer(t, "UTC")

	raws := []provider.RawRecord{
		{provider.FieldTitle: "A", provider.FieldCountry: "US"},
		{provider.FieldTitle: "B", provider.FieldCountry: "DE"},
		{provider.FieldTitle: "C", provider.FieldCountry: "US"},
	}
	res := n.NormalizeAll("x", "UTC", raws, Filter{Countries: []string{"US"}})
	if len(res.Events) != 2 || res.Events[0].Title != "A" || res.Events[1].Title != "C" {
		t.Fatalf("unexpected events %+v", res.Events)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Title != "B" {
		t.Fatalf("unexpected diagnostics %+v", res.Diagnostics)
	}
}
