package model

// LocaleContext holds optional country facts used to enrich a prompt.
// The zero value means "nothing known" and is always acceptable.
type LocaleContext struct {
	CountryName  string   `json:"country_name,omitempty"`
	Capital      string   `json:"capital,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	Currencies   []string `json:"currencies,omitempty"`
	Timezone     string   `json:"timezone,omitempty"`
	FlagAssetURL string   `json:"flag_asset_url,omitempty"`
}

// IsEmpty reports whether no locale facts were resolved
func (l LocaleContext) IsEmpty() bool {
	return l.CountryName == "" && l.Capital == "" && len(l.Languages) == 0 &&
		len(l.Currencies) == 0 && l.Timezone == "" && l.FlagAssetURL == ""
}
