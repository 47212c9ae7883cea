package triage

// EnrichmentStatus tags how an EnrichmentResult was produced, so that a
// lookup miss is a first-class value rather than a thrown-and-caught error.
type EnrichmentStatus int

const (
	// EnrichmentResolved means the geo database returned a record.
	EnrichmentResolved EnrichmentStatus = iota

	// EnrichmentUnknown means the lookup missed or the address was malformed.
	EnrichmentUnknown

	// EnrichmentLocalOrReserved is synthesized for special-purpose addresses
	// without consulting the geo database.
	EnrichmentLocalOrReserved
)

// UnknownLocation is the sentinel country/city value for failed lookups.
const UnknownLocation = "unknown"

// LocalOrReservedLocation is the country/city value synthesized for
// special-purpose addresses.
const LocalOrReservedLocation = "Local or Reserved"

// EnrichmentResult is the best-effort geolocation of one source address.
type EnrichmentResult struct {
	Country   string
	City      string
	Latitude  float64
	Longitude float64
	Status    EnrichmentStatus
}

// UnknownEnrichment returns the sentinel result for a lookup miss or a
// malformed address.
func UnknownEnrichment() EnrichmentResult {
	return EnrichmentResult{
		Country: UnknownLocation,
		City:    UnknownLocation,
		Status:  EnrichmentUnknown,
	}
}

// LocalOrReservedEnrichment returns the result synthesized for addresses the
// address classifier flags as local, private or reserved. The geo database is
// never consulted for these.
func LocalOrReservedEnrichment() EnrichmentResult {
	return EnrichmentResult{
		Country: LocalOrReservedLocation,
		City:    LocalOrReservedLocation,
		Status:  EnrichmentLocalOrReserved,
	}
}

// GeoDB maps public IPv4 addresses to their city-level geolocation.
type GeoDB interface {
	// PutGeoIPData replaces the full data set.
	PutGeoIPData(geoIPData []GeoIPCityRecord) (err error)

	// Lookup never fails: a miss or a malformed address yields the unknown
	// sentinel result.
	Lookup(ipAddr string) EnrichmentResult
}

// GeoIPCityRecord is one address range in the city-level GeoIP data set.
type GeoIPCityRecord interface {
	StartIP() uint32
	EndIP() uint32
	Country() string
	City() string
	Latitude() float64
	Longitude() float64
}
