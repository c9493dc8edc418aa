package parser

import (
	"math"
	"testing"
)

func TestParseCSVSkipsInvalidRows(t *testing.T) {
	content := "Date,Distance,Time,Activity Type\n" +
		"1/1/2024,3.1,28:00,Running\n" +
		"1/2/2024,-1,10:00,Running\n"

	runs, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1 (invalid distance row skipped)", len(runs))
	}
	if runs[0].DistanceMiles != 3.1 {
		t.Errorf("DistanceMiles = %v, want 3.1", runs[0].DistanceMiles)
	}
	if runs[0].DurationMinutes != 28 {
		t.Errorf("DurationMinutes = %v, want 28", runs[0].DurationMinutes)
	}
}

func TestParseCSVFiltersNonRunningActivities(t *testing.T) {
	content := "Date,Distance,Time,Activity Type\n" +
		"1/1/2024,3.1,28:00,Running\n" +
		"1/2/2024,20.0,60:00,Cycling\n" +
		"1/3/2024,2.5,25:00,Jogging\n"

	runs, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2 (cycling row filtered)", len(runs))
	}
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	content := "Date,Distance,Activity Type\n1/1/2024,3.1,Running\n"

	_, err := ParseCSV([]byte(content))
	if err == nil {
		t.Fatal("expected error for missing time column")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("error type = %T, want *ParseError", err)
	}
}

func TestParseCSVNoDataRows(t *testing.T) {
	content := "Date,Distance,Time\nnot-a-date,abc,xyz\n"

	runs, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs != nil {
		t.Errorf("got %v, want nil (no-data outcome)", runs)
	}
}

func TestParseCSVQuotedFields(t *testing.T) {
	content := "Date,Title,Distance,Time\n" +
		"1/1/2024,\"Long run, easy pace\",10.0,95:00\n"

	runs, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Route != "Long run, easy pace" {
		t.Errorf("Route = %q, want quoted title with comma intact", runs[0].Route)
	}
}

func TestParseCSVKilometerReinterpretation(t *testing.T) {
	// A single "run" of 100 miles is implausible; treated as kilometers.
	content := "Date,Distance,Time\n1/1/2024,100,600:00\n"

	runs, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	want := 100 * 0.621371
	if math.Abs(runs[0].DistanceMiles-want) > 0.001 {
		t.Errorf("DistanceMiles = %v, want %v (km converted)", runs[0].DistanceMiles, want)
	}
}

func TestParseCSVPaceColumn(t *testing.T) {
	content := "Date,Distance,Time,Avg Pace\n1/1/2024,3.0,27:00,8:30\n"

	runs, err := ParseCSV([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if math.Abs(runs[0].PaceMinPerMile-8.5) > 0.001 {
		t.Errorf("PaceMinPerMile = %v, want 8.5 from Avg Pace column", runs[0].PaceMinPerMile)
	}
}

func TestParseCSVTimeFormats(t *testing.T) {
	tests := []struct {
		name string
		time string
		want float64
	}{
		{name: "hh:mm:ss", time: "1:05:30", want: 65.5},
		{name: "mm:ss", time: "28:30", want: 28.5},
		{name: "decimal minutes", time: "42.5", want: 42.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCSVMinutes(tt.time)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("parseCSVMinutes(%q) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestParseCSVDateFormats(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{name: "us short", value: "1/1/2024", ok: true},
		{name: "iso", value: "2024-01-01", ok: true},
		{name: "iso with time", value: "2024-01-01 07:30:00", ok: true},
		{name: "garbage", value: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCSVDate(tt.value)
			if (err == nil) != tt.ok {
				t.Errorf("parseCSVDate(%q) err = %v, want ok=%v", tt.value, err, tt.ok)
			}
		})
	}
}
