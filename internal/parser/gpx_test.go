package parser

import (
	"math"
	"testing"
)

const gpxValid = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <trk>
    <name>Morning Run</name>
    <trkseg>
      <trkpt lat="40.0000" lon="-105.0000"><time>2024-03-10T07:30:00Z</time></trkpt>
      <trkpt lat="40.0100" lon="-105.0000"><time>2024-03-10T07:38:00Z</time></trkpt>
      <trkpt lat="40.0200" lon="-105.0000"><time>2024-03-10T07:46:00Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParseGPX(t *testing.T) {
	run, err := ParseGPX([]byte(gpxValid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 0.02 degrees of latitude is about 2.22 km, 1.38 miles
	if math.Abs(run.DistanceMiles-1.38) > 0.02 {
		t.Errorf("DistanceMiles = %v, want ~1.38", run.DistanceMiles)
	}
	if run.DurationMinutes != 16 {
		t.Errorf("DurationMinutes = %v, want 16", run.DurationMinutes)
	}
	if run.Route != "Morning Run" {
		t.Errorf("Route = %q, want track name", run.Route)
	}
	if run.PaceMinPerMile <= 0 {
		t.Errorf("PaceMinPerMile = %v, want > 0", run.PaceMinPerMile)
	}
}

func TestParseGPXRouteFallsBackToPointCount(t *testing.T) {
	doc := `<gpx><trk><trkseg>
		<trkpt lat="40.0" lon="-105.0"><time>2024-03-10T07:30:00Z</time></trkpt>
		<trkpt lat="40.01" lon="-105.0"><time>2024-03-10T07:38:00Z</time></trkpt>
	</trkseg></trk></gpx>`

	run, err := ParseGPX([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Route != "2 GPS points" {
		t.Errorf("Route = %q, want point count", run.Route)
	}
}

func TestParseGPXFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "no track",
			doc:  `<gpx version="1.1"></gpx>`,
		},
		{
			name: "single point",
			doc: `<gpx><trk><trkseg>
				<trkpt lat="40.0" lon="-105.0"><time>2024-03-10T07:30:00Z</time></trkpt>
			</trkseg></trk></gpx>`,
		},
		{
			name: "missing time data",
			doc: `<gpx><trk><trkseg>
				<trkpt lat="40.0" lon="-105.0"></trkpt>
				<trkpt lat="40.01" lon="-105.0"></trkpt>
			</trkseg></trk></gpx>`,
		},
		{
			name: "identical coordinates yield zero distance",
			doc: `<gpx><trk><trkseg>
				<trkpt lat="40.0" lon="-105.0"><time>2024-03-10T07:30:00Z</time></trkpt>
				<trkpt lat="40.0" lon="-105.0"><time>2024-03-10T07:31:00Z</time></trkpt>
			</trkseg></trk></gpx>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGPX([]byte(tt.doc)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
