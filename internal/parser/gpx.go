package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"time"
)

// GPX document structure, limited to the elements the import needs.
type gpxDocument struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Time string  `xml:"time"`
}

// earthRadiusKm is the Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// ParseGPX decodes one GPX file into a single normalized run. Distance is
// reconstructed as the sum of great-circle distances between consecutive
// track points; duration is the span between the first and last timestamps.
func ParseGPX(content []byte) (*ParsedRun, error) {
	var doc gpxDocument
	if err := xml.NewDecoder(bytes.NewReader(content)).Decode(&doc); err != nil {
		return nil, newParseError(FormatGPX, fmt.Sprintf("invalid XML: %v", err))
	}

	if len(doc.Tracks) == 0 {
		return nil, newParseError(FormatGPX, "no track found")
	}

	var points []gpxPoint
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			points = append(points, segment.Points...)
		}
	}
	if len(points) < 2 {
		return nil, newParseError(FormatGPX, "track needs at least 2 GPS points")
	}

	startTime, err := parseGPXTime(points[0].Time)
	if err != nil {
		return nil, err
	}
	endTime, err := parseGPXTime(points[len(points)-1].Time)
	if err != nil {
		return nil, err
	}

	var distanceKm float64
	for i := 1; i < len(points); i++ {
		distanceKm += haversineKm(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}

	distanceMiles := distanceKm * kmToMiles
	durationMinutes := endTime.Sub(startTime).Minutes()
	if distanceMiles == 0 || durationMinutes == 0 {
		return nil, newParseError(FormatGPX, "invalid distance or duration")
	}

	route := doc.Tracks[0].Name
	if route == "" {
		route = fmt.Sprintf("%d GPS points", len(points))
	}

	return &ParsedRun{
		Date:            startTime,
		DistanceMiles:   distanceMiles,
		DurationMinutes: durationMinutes,
		PaceMinPerMile:  durationMinutes / distanceMiles,
		Route:           route,
		Notes:           "Imported from GPX file",
		FeelingRating:   defaultFeelingRating,
	}, nil
}

func parseGPXTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, newParseError(FormatGPX, "track point has no time data")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, newParseError(FormatGPX, fmt.Sprintf("invalid track point time %q", value))
	}
	return t, nil
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
