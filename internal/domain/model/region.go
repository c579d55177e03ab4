package model

// Region is an Australian state or territory as offered on the dashboard.
type Region struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// knownRegions keeps the display order used by the region selector.
var knownRegions = []Region{
	{Code: "WA", Label: "Western Australia"},
	{Code: "QL", Label: "Queensland"},
	{Code: "NT", Label: "Northern Territory"},
	{Code: "NSW", Label: "New South Wales"},
	{Code: "VI", Label: "Victoria"},
	{Code: "SA", Label: "South Australia"},
	{Code: "TA", Label: "Tasmania"},
}

// KnownRegions returns a copy of the known region table in display order.
func KnownRegions() []Region {
	out := make([]Region, len(knownRegions))
	copy(out, knownRegions)
	return out
}

// RegionLabel returns the display name for code, or code itself when unknown.
func RegionLabel(code string) string {
	for _, r := range knownRegions {
		if r.Code == code {
			return r.Label
		}
	}
	return code
}

// OfferedRegions intersects the known table with the codes present in the
// data. Known regions come first in display order; unknown codes follow in
// the order given and are labelled with the code. The second return value
// lists known codes that have no data.
func OfferedRegions(present []string) (offered []Region, missing []string) {
	have := make(map[string]bool, len(present))
	for _, c := range present {
		have[c] = true
	}

	known := make(map[string]bool, len(knownRegions))
	for _, r := range knownRegions {
		known[r.Code] = true
		if have[r.Code] {
			offered = append(offered, r)
		} else {
			missing = append(missing, r.Code)
		}
	}
	for _, c := range present {
		if !known[c] {
			offered = append(offered, Region{Code: c, Label: c})
			known[c] = true
		}
	}
	return offered, missing
}
