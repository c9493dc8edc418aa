package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

// TCX (Training Center XML) document structure, limited to the elements
// the import needs.
type tcxDatabase struct {
	XMLName    xml.Name      `xml:"TrainingCenterDatabase"`
	Activities tcxActivities `xml:"Activities"`
}

type tcxActivities struct {
	Activity []tcxActivity `xml:"Activity"`
}

type tcxActivity struct {
	Sport string   `xml:"Sport,attr"`
	ID    string   `xml:"Id"`
	Laps  []tcxLap `xml:"Lap"`
}

type tcxLap struct {
	StartTime        string   `xml:"StartTime,attr"`
	TotalTimeSeconds float64  `xml:"TotalTimeSeconds"`
	DistanceMeters   float64  `xml:"DistanceMeters"`
	Track            tcxTrack `xml:"Track"`
}

type tcxTrack struct {
	Trackpoints []tcxTrackpoint `xml:"Trackpoint"`
}

type tcxTrackpoint struct {
	Time string `xml:"Time"`
}

// ParseTCX decodes one TCX file into a single normalized run. Multi-lap
// activities are summed into one run.
func ParseTCX(content []byte) (*ParsedRun, error) {
	var doc tcxDatabase
	if err := xml.NewDecoder(bytes.NewReader(content)).Decode(&doc); err != nil {
		return nil, newParseError(FormatTCX, fmt.Sprintf("invalid XML: %v", err))
	}

	if len(doc.Activities.Activity) == 0 {
		return nil, newParseError(FormatTCX, "no activity found")
	}
	activity := doc.Activities.Activity[0]

	startTime, err := tcxStartTime(activity)
	if err != nil {
		return nil, err
	}

	var totalMeters, totalSeconds float64
	pointCount := 0
	for _, lap := range activity.Laps {
		totalMeters += lap.DistanceMeters
		totalSeconds += lap.TotalTimeSeconds
		pointCount += len(lap.Track.Trackpoints)
	}

	distanceMiles := totalMeters * metersToMiles
	durationMinutes := totalSeconds / 60
	if distanceMiles == 0 || durationMinutes == 0 {
		return nil, newParseError(FormatTCX, "invalid distance or duration")
	}

	run := &ParsedRun{
		Date:            startTime,
		DistanceMiles:   distanceMiles,
		DurationMinutes: durationMinutes,
		PaceMinPerMile:  durationMinutes / distanceMiles,
		Notes:           fmt.Sprintf("Imported from TCX file (%s)", activity.Sport),
		FeelingRating:   defaultFeelingRating,
	}
	if pointCount > 0 {
		run.Route = fmt.Sprintf("%d GPS points", pointCount)
	}
	return run, nil
}

// tcxStartTime prefers the first lap's StartTime attribute and falls back
// to the activity Id element, which TCX sets to the start timestamp.
func tcxStartTime(activity tcxActivity) (time.Time, error) {
	if len(activity.Laps) > 0 && activity.Laps[0].StartTime != "" {
		if t, err := time.Parse(time.RFC3339, activity.Laps[0].StartTime); err == nil {
			return t, nil
		}
	}
	if activity.ID != "" {
		if t, err := time.Parse(time.RFC3339, activity.ID); err == nil {
			return t, nil
		}
	}
	return time.Time{}, newParseError(FormatTCX, "no start time")
}
