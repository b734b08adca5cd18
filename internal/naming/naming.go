// Package naming extracts session and frame metadata from folder and file names.
package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/verte-zerg/astrotally/internal/model"
)

var (
	targetPattern   = regexp.MustCompile(`^(.*?)(_\d{4}-\d{2}-\d{2})?$`)
	datePattern     = regexp.MustCompile(`_(\d{4}-\d{2}-\d{2})$`)
	exposurePattern = regexp.MustCompile(`(?i)_(\d+(\.\d+)?)sec_`)
	filterPattern   = regexp.MustCompile(`(?i)_FILTER_([A-Za-z0-9\-]+)_`)
)

// TargetName strips a trailing _YYYY-MM-DD from a session folder name.
func TargetName(folderName string) string {
	m := targetPattern.FindStringSubmatch(folderName)
	if m == nil {
		return folderName
	}
	return m[1]
}

// SessionDate returns the trailing YYYY-MM-DD of a session folder name, or
// model.UnknownDate.
func SessionDate(folderName string) string {
	m := datePattern.FindStringSubmatch(folderName)
	if m == nil {
		return model.UnknownDate
	}
	return m[1]
}

// ExposureSeconds reads the _<n>sec_ token of the file's base name.
// It returns 0 when the token is missing or unparseable.
func ExposureSeconds(path string) float64 {
	m := exposurePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// Filter reads the _FILTER_<name>_ token of the file's base name.
func Filter(path string) (string, bool) {
	m := filterPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ClassifyFrame looks for LIGHT, then FLAT, anywhere in the path.
// A path containing both is a light frame.
func ClassifyFrame(path string) model.FrameType {
	upper := strings.ToUpper(path)
	switch {
	case strings.Contains(upper, "LIGHT"):
		return model.FrameLight
	case strings.Contains(upper, "FLAT"):
		return model.FrameFlat
	default:
		return model.FrameOther
	}
}

// ParseFrame builds a FrameRecord from a file path.
func ParseFrame(path string) model.FrameRecord {
	filter, ok := Filter(path)
	if !ok {
		filter = model.UnknownFilter
	}
	return model.FrameRecord{
		Path:            path,
		ExposureSeconds: ExposureSeconds(path),
		Filter:          filter,
		Type:            ClassifyFrame(path),
	}
}
