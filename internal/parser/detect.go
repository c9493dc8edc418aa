package parser

import (
	"path/filepath"
	"strings"
)

// DetectFormat classifies a file by extension first, then by content.
// A recognized extension is authoritative. When the extension is missing
// or unrecognized, content sniffing applies: XML root markers for TCX and
// GPX, then header keywords for CSV.
func DetectFormat(fileName string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".tcx":
		return FormatTCX
	case ".gpx":
		return FormatGPX
	case ".csv":
		return FormatCSV
	case ".fit":
		// Binary watch format, rejected rather than attempted.
		return FormatFIT
	}

	return sniffContent(string(content))
}

func sniffContent(text string) Format {
	trimmed := strings.TrimSpace(text)

	if strings.Contains(trimmed, "TrainingCenterDatabase") {
		return FormatTCX
	}
	if strings.Contains(trimmed, "<gpx") {
		return FormatGPX
	}
	if strings.HasPrefix(trimmed, "<?xml") && strings.Contains(trimmed, "<trk") {
		return FormatGPX
	}

	// CSV: first line looks like a header with recognizable column names.
	firstLine := trimmed
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	lower := strings.ToLower(firstLine)
	if strings.Contains(lower, ",") &&
		(strings.Contains(lower, "date") || strings.Contains(lower, "distance") || strings.Contains(lower, "activity type")) {
		return FormatCSV
	}

	return FormatUnknown
}
