package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Column alias sets matched case-insensitively by substring against the
// header row. Exports from different services label the same column
// differently.
var (
	csvDateAliases     = []string{"date"}
	csvDistanceAliases = []string{"distance"}
	csvTimeAliases     = []string{"moving time", "elapsed time", "time"}
	csvActivityAliases = []string{"activity type"}
	csvTitleAliases    = []string{"title", "name"}
	csvPaceAliases     = []string{"pace"}
)

// ParseCSV decodes a tabular activity export into zero or more normalized
// runs. Missing required columns fail the whole file; malformed data rows
// are skipped, and rows whose activity type is not a run are filtered out.
// Returns (nil, nil) when the file is structurally valid but yields no
// run data.
func ParseCSV(content []byte) ([]ParsedRun, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := readCSVHeader(reader)
	if err != nil {
		return nil, err
	}

	dateCol := findColumn(header, csvDateAliases)
	distanceCol := findColumn(header, csvDistanceAliases)
	timeCol := findColumn(header, csvTimeAliases)

	var missing []string
	if dateCol < 0 {
		missing = append(missing, "date")
	}
	if distanceCol < 0 {
		missing = append(missing, "distance")
	}
	if timeCol < 0 {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return nil, newParseError(FormatCSV, "missing required columns: "+strings.Join(missing, ", "))
	}

	activityCol := findColumn(header, csvActivityAliases)
	titleCol := findColumn(header, csvTitleAliases)
	paceCol := findColumn(header, csvPaceAliases)

	var runs []ParsedRun
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, tolerated.
			continue
		}

		// Non-running activities are filtered, not failed.
		activityType := field(row, activityCol)
		if activityType != "" {
			lower := strings.ToLower(activityType)
			if !strings.Contains(lower, "run") && !strings.Contains(lower, "jog") {
				continue
			}
		}

		date, err := parseCSVDate(field(row, dateCol))
		if err != nil {
			continue
		}
		distanceMiles, err := parseCSVDistance(field(row, distanceCol))
		if err != nil || distanceMiles <= 0 {
			continue
		}
		durationMinutes, err := parseCSVMinutes(field(row, timeCol))
		if err != nil || durationMinutes <= 0 {
			continue
		}

		pace := durationMinutes / distanceMiles
		if paceCol >= 0 {
			if p, err := parseCSVPace(field(row, paceCol)); err == nil && p > 0 {
				pace = p
			}
		}

		notes := "Imported from CSV file"
		if activityType != "" {
			notes = fmt.Sprintf("Imported from CSV file (%s)", activityType)
		}

		runs = append(runs, ParsedRun{
			Date:            date,
			DistanceMiles:   distanceMiles,
			DurationMinutes: durationMinutes,
			PaceMinPerMile:  pace,
			Route:           field(row, titleCol),
			Notes:           notes,
			FeelingRating:   defaultFeelingRating,
		})
	}

	// No valid data rows is a "no data" outcome, distinct from a
	// structural failure.
	if len(runs) == 0 {
		return nil, nil
	}
	return runs, nil
}

// readCSVHeader returns the first non-blank record.
func readCSVHeader(reader *csv.Reader) ([]string, error) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil, newParseError(FormatCSV, "file is empty")
		}
		if err != nil {
			return nil, newParseError(FormatCSV, fmt.Sprintf("invalid header: %v", err))
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		return record, nil
	}
}

// findColumn locates the first header whose lowercased text contains any
// of the aliases.
func findColumn(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, name := range header {
			if strings.Contains(strings.ToLower(name), alias) {
				return i
			}
		}
	}
	return -1
}

func field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

var csvDateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseCSVDate(value string) (time.Time, error) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// parseCSVDistance strips non-numeric characters and parses the rest as
// miles. Values over 50 are implausible for a single run in miles and are
// reinterpreted as kilometers.
func parseCSVDistance(value string) (float64, error) {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	distance, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable distance %q", value)
	}
	if distance > 50 {
		distance *= kmToMiles
	}
	return distance, nil
}

// parseCSVMinutes accepts HH:MM:SS, MM:SS, or bare decimal minutes.
func parseCSVMinutes(value string) (float64, error) {
	parts := strings.Split(value, ":")
	switch len(parts) {
	case 3:
		hours, err1 := strconv.ParseFloat(parts[0], 64)
		minutes, err2 := strconv.ParseFloat(parts[1], 64)
		seconds, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, fmt.Errorf("unparseable time %q", value)
		}
		return hours*60 + minutes + seconds/60, nil
	case 2:
		minutes, err1 := strconv.ParseFloat(parts[0], 64)
		seconds, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("unparseable time %q", value)
		}
		return minutes + seconds/60, nil
	default:
		minutes, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("unparseable time %q", value)
		}
		return minutes, nil
	}
}

// parseCSVPace accepts MM:SS or decimal minutes per mile.
func parseCSVPace(value string) (float64, error) {
	return parseCSVMinutes(value)
}
