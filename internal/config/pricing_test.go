package config

import "testing"

func TestSuggestAmount(t *testing.T) {
	tests := []struct {
		name string
		in   PriceInput
		want float64
	}{
		{"riyadh large eligible", PriceInput{Base: 1000, City: "riyadh", Size: "large", Eligible: true}, 1438},
		{"riyadh large not eligible", PriceInput{Base: 1000, City: "riyadh", Size: "large"}, 1250},
		{"qassim small", PriceInput{Base: 1000, City: "Qassim", Size: "small", Eligible: true}, 808},
		{"unknown city and size", PriceInput{Base: 1000, City: "tabuk", Size: "huge", Eligible: true}, 1000},
		{"arabic city name", PriceInput{Base: 2000, City: "جدة", Eligible: true}, 2200},
		{"zero base", PriceInput{Base: 0, City: "riyadh", Eligible: true}, 0},
		{"negative base", PriceInput{Base: -10, City: "riyadh", Eligible: true}, 0},
	}
	for _, tt := range tests {
		if got := SuggestAmount(tt.in); got != tt.want {
			t.Errorf("%s: SuggestAmount = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSuggest_ReportsFactors(t *testing.T) {
	s := Suggest(PriceInput{Base: 500, City: " DAMMAM ", Size: "medium", Eligible: true})
	if s.City != CityDammam || s.Size != SizeMedium {
		t.Fatalf("resolved = %s/%s", s.City, s.Size)
	}
	if s.CityFactor != 1.05 || s.SizeFactor != 1 {
		t.Errorf("factors = %v/%v", s.CityFactor, s.SizeFactor)
	}
	if s.Amount != 525 {
		t.Errorf("Amount = %v, want 525", s.Amount)
	}
}

func TestNormalizeCity(t *testing.T) {
	tests := map[string]City{
		"Riyadh":   CityRiyadh,
		"الرياض":   CityRiyadh,
		"buraidah": CityQassim,
		"":         CityOther,
		"mecca":    CityOther,
	}
	for in, want := range tests {
		if got := NormalizeCity(in); got != want {
			t.Errorf("NormalizeCity(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTemplateDraftIsSeeded(t *testing.T) {
	tmpl, ok := FindTemplate("license")
	if !ok {
		t.Fatal("license template missing")
	}
	d := tmpl.Draft("2025-06-01")
	if !d.Seed.Seeded || d.Seed.SAHint != "license" || d.PriceBand == nil {
		t.Errorf("draft seed = %+v band = %v", d.Seed, d.PriceBand)
	}
	if d.Amount != 0 {
		t.Errorf("template drafts start unpriced, got %v", d.Amount)
	}
	if d.Seed.CityFactorEligible == nil || !*d.Seed.CityFactorEligible {
		t.Error("license should be city-factor eligible")
	}
}
