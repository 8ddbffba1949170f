package collector

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

const unknownPlace = "Unknown"

// IPLocation is the coarse position of a client address
type IPLocation struct {
	Country   string  `json:"country"`
	Region    string  `json:"region"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UnknownLocation is reported for addresses that cannot be resolved
func UnknownLocation() IPLocation {
	return IPLocation{Country: unknownPlace, Region: unknownPlace, City: unknownPlace}
}

// Geolocator resolves a client IP to a coarse location
type Geolocator interface {
	Lookup(ip string) IPLocation
}

type noGeolocator struct{}

func (noGeolocator) Lookup(string) IPLocation { return UnknownLocation() }

// GeoIP looks addresses up in a MaxMind City database
type GeoIP struct {
	db *geoip2.Reader
}

// OpenGeoIP opens the database at path
func OpenGeoIP(path string) (*GeoIP, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &GeoIP{db: db}, nil
}

// Lookup resolves ip. Fields the database does not know stay Unknown.
func (g *GeoIP) Lookup(ip string) IPLocation {
	loc := UnknownLocation()
	parsed := net.ParseIP(ip)
	if g == nil || g.db == nil || parsed == nil {
		return loc
	}
	rec, err := g.db.City(parsed)
	if err != nil {
		return loc
	}
	if rec.Country.IsoCode != "" {
		loc.Country = rec.Country.IsoCode
	}
	if len(rec.Subdivisions) > 0 && rec.Subdivisions[0].IsoCode != "" {
		loc.Region = rec.Subdivisions[0].IsoCode
	}
	if name := rec.City.Names["en"]; name != "" {
		loc.City = name
	}
	loc.Latitude = rec.Location.Latitude
	loc.Longitude = rec.Location.Longitude
	return loc
}

// Close releases the database
func (g *GeoIP) Close() error {
	if g == nil || g.db == nil {
		return nil
	}
	return g.db.Close()
}
