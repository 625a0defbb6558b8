package rank

import "strings"

// staffingFirms is the static recruiting/staffing agency table. Matching
// is substring in either direction, so "Robert Half Technology" hits
// "robert half" and "kforce" hits "Kforce Inc".
var staffingFirms = []string{
	"teksystems",
	"insight global",
	"robert half",
	"kforce",
	"aerotek",
	"apex systems",
	"cybercoders",
	"jobot",
	"motion recruitment",
	"randstad",
	"adecco",
	"manpower",
	"hays",
	"collabera",
	"diversant",
	"eliassen group",
	"beacon hill",
	"akkodis",
	"modis",
	"oscar associates",
	"harnham",
	"mitchell martin",
	"the judge group",
	"mastech",
	"artech",
	"signature consultants",
	"vaco",
	"addison group",
	"lasalle network",
	"nelson connects",
}

// MatchStaffingFirm returns the matched firm name, or "" when the company
// is not a known staffing agency.
func MatchStaffingFirm(company string) string {
	c := strings.ToLower(strings.TrimSpace(company))
	if c == "" {
		return ""
	}
	for _, firm := range staffingFirms {
		if strings.Contains(c, firm) || strings.Contains(firm, c) {
			return firm
		}
	}
	return ""
}
