package model

// Controls describes the selector options shown on the dashboard.
type Controls struct {
	Regions       []Region `json:"regions"`
	Years         []int    `json:"years"`
	DefaultRegion string   `json:"defaultRegion"`
	DefaultYear   int      `json:"defaultYear"`
}
