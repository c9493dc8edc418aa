package parser

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		want     Format
	}{
		{
			name:     "tcx extension is authoritative",
			fileName: "workout.tcx",
			content:  "anything",
			want:     FormatTCX,
		},
		{
			name:     "gpx extension",
			fileName: "Morning_Run.GPX",
			content:  "",
			want:     FormatGPX,
		},
		{
			name:     "csv extension",
			fileName: "activities.csv",
			content:  "",
			want:     FormatCSV,
		},
		{
			name:     "fit extension rejected without sniffing",
			fileName: "workout.fit",
			content:  "\x0e\x10\x8b",
			want:     FormatFIT,
		},
		{
			name:     "no extension, tcx content",
			fileName: "export",
			content:  `<?xml version="1.0"?><TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"></TrainingCenterDatabase>`,
			want:     FormatTCX,
		},
		{
			name:     "no extension, gpx root",
			fileName: "export",
			content:  `<gpx version="1.1"><trk></trk></gpx>`,
			want:     FormatGPX,
		},
		{
			name:     "no extension, xml declaration with track",
			fileName: "export",
			content:  `<?xml version="1.0"?><trk></trk>`,
			want:     FormatGPX,
		},
		{
			name:     "no extension, csv header keywords",
			fileName: "export",
			content:  "Date,Distance,Time,Activity Type\n1/1/2024,3.1,28:00,Running",
			want:     FormatCSV,
		},
		{
			name:     "unrecognized content",
			fileName: "export",
			content:  "hello world",
			want:     FormatUnknown,
		},
		{
			name:     "unrecognized extension falls back to sniffing",
			fileName: "export.dat",
			content:  `<gpx version="1.1"></gpx>`,
			want:     FormatGPX,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.fileName, []byte(tt.content)); got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}
