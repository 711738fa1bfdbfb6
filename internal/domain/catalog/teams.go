package catalog

import "strings"

const (
	espnLogo   = "https://a.espncdn.com/combiner/i?img=/i/teamlogos/mlb/500/scoreboard/%s.png&h=500&w=500"
	fandomBase = "https://static.wikia.nocookie.net/minor-league-baseball/images/"
)

// mlbLogos maps MLB abbreviations to the ESPN logo slug.
var mlbLogos = map[string]string{
	"ATH": "ath", "AZ": "ari", "ATL": "atl", "BAL": "bal", "BOS": "bos",
	"CHC": "chc", "CWS": "chw", "CIN": "cin", "CLE": "cle", "COL": "col",
	"DET": "det", "HOU": "hou", "KC": "kc", "LAA": "laa", "LAD": "lad",
	"MIA": "mia", "MIL": "mil", "MIN": "min", "NYM": "nym", "NYY": "nyy",
	"PHI": "phi", "PIT": "pit", "SD": "sd", "SF": "sf", "SEA": "sea",
	"STL": "stl", "TB": "tb", "TEX": "tex", "TOR": "tor", "WSH": "wsh",
}

// aaaLogos maps Triple-A abbreviations to their image path under fandomBase.
// Columbus shares "COL" with Colorado; the MLB logo takes precedence.
var aaaLogos = map[string]string{
	"ABQ": "0/0b/Albuquerque_Isotopes.svg/revision/latest/smart/width/250/height/250?cb=20240522035213",
	"BUF": "b/bc/Buffalo_Bisons.svg/revision/latest/smart/width/250/height/250?cb=20240522011841",
	"CLT": "2/25/Charlotte_Knights.svg/revision/latest/smart/width/250/height/250?cb=20240522011908",
	"DUR": "c/c9/Durham_Bulls.svg/revision/latest/smart/width/250/height/250?cb=20240522011959",
	"ELP": "4/4f/El_Paso_Chihuahuas.svg/revision/latest/smart/width/250/height/250?cb=20240522035226",
	"GWN": "5/57/Gwinnett_Stripers.svg/revision/latest/smart/width/250/height/250?cb=20240522012022",
	"IND": "b/b5/Indianapolis_Indians.svg/revision/latest/smart/width/250/height/250?cb=20240522012039",
	"IOW": "e/e2/Iowa_Cubs.svg/revision/latest/smart/width/250/height/250?cb=20240522012105",
	"JAX": "2/2b/Jacksonville_Jumbo_Shrimp.svg/revision/latest/smart/width/250/height/250?cb=20240522012119",
	"LV":  "b/ba/Las_Vegas_Aviators.svg/revision/latest/smart/width/250/height/250?cb=20240522035252",
	"LEH": "3/30/Lehigh_Valley_IronPigs.svg/revision/latest/smart/width/250/height/250?cb=20240522012131",
	"LOU": "d/d1/Louisville_Bats.svg/revision/latest/smart/width/250/height/250?cb=20240522012251",
	"MEM": "7/75/Memphis_Redbirds.svg/revision/latest/smart/width/250/height/250?cb=20240522012306",
	"NAS": "0/02/Nashville_Sounds.svg/revision/latest/smart/width/250/height/250?cb=20240522012505",
	"NOR": "0/0d/Norfolk_Tides.svg/revision/latest/smart/width/250/height/250?cb=20240522012519",
	"OKC": "7/75/Oklahoma_City_Comets.svg/revision/latest/scale-to-width-down/213?cb=20241028224007",
	"OMA": "2/26/Omaha_Storm_Chasers.svg/revision/latest/scale-to-width-down/213?cb=20240522012708",
	"RNO": "9/94/Reno_Aces.svg/revision/latest/scale-to-width-down/213?cb=20240522035313",
	"ROC": "f/ff/Rochester_Red_Wings.svg/revision/latest/scale-to-width-down/213?cb=20240522012948",
	"RR":  "0/0c/Round_Rock_Express.svg/revision/latest/scale-to-width-down/213?cb=20240522034505",
	"SAC": "7/7c/Sacramento_River_Cats.svg/revision/latest/scale-to-width-down/213?cb=20240522035338",
	"SL":  "8/89/Salt_Lake_Bees.svg/revision/latest/scale-to-width-down/155?cb=20240522035345",
	"SWB": "a/a5/Scranton_Wilkes-Barre_RailRiders_3.svg/revision/latest/scale-to-width-down/213?cb=20240522012923",
	"STP": "9/9d/St._Paul_Saints.svg/revision/latest/scale-to-width-down/164?cb=20240522012629",
	"SUG": "4/4c/Sugar_Land_Space_Cowboys.svg/revision/latest/scale-to-width-down/166?cb=20240522035238",
	"SYR": "c/cd/Syracuse_Mets.svg/revision/latest/scale-to-width-down/141?cb=20240522013011",
	"TAC": "7/71/Tacoma_Rainiers.svg/revision/latest/scale-to-width-down/213?cb=20240522035352",
	"TOL": "d/d3/Toledo_Mud_Hens.svg/revision/latest/scale-to-width-down/213?cb=20240522012741",
	"WOR": "b/b7/Worcester_Red_Sox.svg/revision/latest/scale-to-width-down/213?cb=20240522013224",
}

// LogoURL returns the logo image URL for a team abbreviation.
func LogoURL(abbreviation string) (string, bool) {
	abbreviation = strings.ToUpper(strings.TrimSpace(abbreviation))
	if slug, ok := mlbLogos[abbreviation]; ok {
		return strings.Replace(espnLogo, "%s", slug, 1), true
	}
	if path, ok := aaaLogos[abbreviation]; ok {
		return fandomBase + path, true
	}
	return "", false
}

var levelNames = map[string]string{
	"Major League Baseball": "MLB",
	"Triple-A":              "AAA",
	"Double-A":              "AA",
	"High-A":                "A+",
	"Single-A":              "A",
}

// Level maps a sport name from the stats API to its short level label.
// Unmapped names pass through unchanged.
func Level(sportName string) string {
	if l, ok := levelNames[sportName]; ok {
		return l
	}
	return sportName
}
