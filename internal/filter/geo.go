package filter

// GeoPolicy selects how location text is screened.
type GeoPolicy string

const (
	// GeoPolicyDeny rejects locations containing any deny-list keyword.
	// Empty locations pass.
	GeoPolicyDeny GeoPolicy = "deny"
	// GeoPolicyAllow requires an allow-list match. Empty locations fail.
	GeoPolicyAllow GeoPolicy = "allow"
)

// defaultDenyKeywords marks locations that are clearly outside the target
// region (non-US countries, cities, and region-scoped remote labels).
var defaultDenyKeywords = []string{
	"india", "uk", "germany", "france", "canada", "australia",
	"netherlands", "singapore", "brazil", "spain", "italy", "poland",
	"sweden", "norway", "denmark", "finland", "switzerland", "austria",
	"belgium", "portugal", "mexico", "argentina", "colombia", "philippines",
	"pakistan", "bangladesh", "nigeria", "kenya", "south africa", "egypt",
	"dubai", "uae", "london", "berlin", "paris", "toronto", "sydney", "mumbai",
	"bangalore", "delhi", "amsterdam", "remote - uk", "remote - europe",
	"remote - canada", "remote - australia",
}

// defaultAllowKeywords marks locations inside the target region: US states,
// major metros, and generic remote labels.
var defaultAllowKeywords = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "florida", "georgia", "hawaii", "idaho", "illinois",
	"indiana", "iowa", "kansas", "kentucky", "louisiana", "maine", "maryland",
	"massachusetts", "michigan", "minnesota", "mississippi", "missouri", "montana",
	"nebraska", "nevada", "new hampshire", "new jersey", "new mexico", "new york",
	"north carolina", "north dakota", "ohio", "oklahoma", "oregon", "pennsylvania",
	"rhode island", "south carolina", "south dakota", "tennessee", "texas", "utah",
	"vermont", "virginia", "washington", "west virginia", "wisconsin", "wyoming",
	"nyc", "sf", "la", "chicago", "boston", "seattle", "austin", "denver", "atlanta",
	"miami", "dallas", "houston", "phoenix", "portland", "remote", "anywhere",
}
