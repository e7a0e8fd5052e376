package webapi

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Location is where a player says they are. Upstream only supplies codes, country names are
// resolved locally. State and city names are not available and are left empty.
type Location struct {
	Country     string `json:"country"`
	State       string `json:"state"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
	StateCode   string `json:"stateCode"`
	CityCode    int    `json:"cityCode"`
}

func newLocation(countryCode string, stateCode string, cityCode int) Location {
	return Location{
		Country:     countryName(countryCode),
		CountryCode: countryCode,
		StateCode:   stateCode,
		CityCode:    cityCode,
	}
}

func countryName(code string) string {
	if code == "" {
		return ""
	}

	region, errRegion := language.ParseRegion(code)
	if errRegion != nil {
		return ""
	}

	return display.English.Regions().Name(region)
}
