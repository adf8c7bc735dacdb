package config

import (
	"strings"

	"github.com/shopspring/decimal"
)

// City is a pricing region.
type City string

// Cities with a regional factor. Unknown cities price as CityOther.
const (
	CityRiyadh City = "riyadh"
	CityJeddah City = "jeddah"
	CityDammam City = "dammam"
	CityQassim City = "qassim"
	CityOther  City = "other"
)

// Size is the scale of the property being priced.
type Size string

// Sizes.
const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// CityFactors maps each city to its price multiplier.
var CityFactors = map[City]decimal.Decimal{
	CityRiyadh: decimal.RequireFromString("1.15"),
	CityJeddah: decimal.RequireFromString("1.10"),
	CityDammam: decimal.RequireFromString("1.05"),
	CityQassim: decimal.RequireFromString("0.95"),
	CityOther:  decimal.NewFromInt(1),
}

// SizeFactors maps each size to its price multiplier.
var SizeFactors = map[Size]decimal.Decimal{
	SizeSmall:  decimal.RequireFromString("0.85"),
	SizeMedium: decimal.NewFromInt(1),
	SizeLarge:  decimal.RequireFromString("1.25"),
}

// cityAliases lets users type city names the way they write them.
var cityAliases = map[string]City{
	"الرياض":  CityRiyadh,
	"جدة":     CityJeddah,
	"جده":     CityJeddah,
	"الدمام":  CityDammam,
	"القصيم":  CityQassim,
	"buraidah": CityQassim,
}

// NormalizeCity maps a raw city name to a known City, defaulting to other.
func NormalizeCity(raw string) City {
	s := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := cityAliases[s]; ok {
		return c
	}
	if _, ok := CityFactors[City(s)]; ok {
		return City(s)
	}
	return CityOther
}

// NormalizeSize maps a raw size to a known Size, defaulting to medium.
func NormalizeSize(raw string) Size {
	s := Size(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := SizeFactors[s]; ok {
		return s
	}
	return SizeMedium
}

// PriceInput describes a price suggestion request.
type PriceInput struct {
	Base     float64
	City     string
	Size     string
	Eligible bool
}

// PriceSuggestion is the suggested amount with the factors that produced it.
type PriceSuggestion struct {
	Amount     float64
	City       City
	Size       Size
	CityFactor float64
	SizeFactor float64
}

// SuggestAmount returns round(base * cityFactor * sizeFactor), halves
// rounded away from zero. The city factor applies only when Eligible.
// A non-positive base suggests 0.
func SuggestAmount(in PriceInput) float64 {
	return Suggest(in).Amount
}

// Suggest is SuggestAmount with the resolved factors attached.
func Suggest(in PriceInput) PriceSuggestion {
	city := NormalizeCity(in.City)
	size := NormalizeSize(in.Size)

	cityFactor := decimal.NewFromInt(1)
	if in.Eligible {
		cityFactor = CityFactors[city]
	}
	sizeFactor := SizeFactors[size]

	s := PriceSuggestion{
		City:       city,
		Size:       size,
		CityFactor: cityFactor.InexactFloat64(),
		SizeFactor: sizeFactor.InexactFloat64(),
	}
	if in.Base <= 0 {
		return s
	}

	amount := decimal.NewFromFloat(in.Base).Mul(cityFactor).Mul(sizeFactor).Round(0)
	s.Amount = amount.InexactFloat64()
	return s
}
