// Package stations holds the built-in directory of BOM observation
// stations and nearest-station lookup used for auto-discovery.
package stations

import (
	"math"
	"sort"
	"strings"
)

// Station is one record in the observation station directory.
type Station struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	Region    string
}

// Nearest describes the closest station to a queried location.
type Nearest struct {
	ID         string
	Name       string
	DistanceKM float64
}

const earthRadiusKM = 6371.0

var byID map[string]Station

func init() {
	byID = make(map[string]Station, len(directory))
	for _, s := range directory {
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = s
		}
	}
}

// Info returns the station with the given id.
func Info(id string) (Station, bool) {
	s, ok := byID[id]
	return s, ok
}

// FindNearest returns the station closest to (lat, lon) by great-circle
// distance. Ties keep the first-encountered station. ok is false only when
// the directory is empty.
func FindNearest(lat, lon float64) (Nearest, bool) {
	var best Nearest
	found := false
	minDist := math.Inf(1)
	for _, s := range directory {
		d := Distance(lat, lon, s.Latitude, s.Longitude)
		if d < minDist {
			minDist = d
			best = Nearest{ID: s.ID, Name: s.Name, DistanceKM: d}
			found = true
		}
	}
	return best, found
}

// Search returns stations whose name, region, or id contains the query,
// case-insensitively, sorted by (region, name).
func Search(query string) []Station {
	q := strings.ToLower(query)
	var matches []Station
	for _, s := range directory {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Region), q) ||
			strings.Contains(s.ID, q) {
			matches = append(matches, s)
		}
	}
	sortStations(matches)
	return matches
}

// All returns a copy of the full directory sorted by (region, name).
func All() []Station {
	out := make([]Station, len(directory))
	copy(out, directory)
	sortStations(out)
	return out
}

func sortStations(s []Station) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Region != s[j].Region {
			return s[i].Region < s[j].Region
		}
		return s[i].Name < s[j].Name
	})
}

// Distance returns the great-circle distance in kilometres between two
// points, using the Haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
