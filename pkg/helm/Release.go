package helm

import (
	"regexp"
	"strings"
)

const NameColumn = "NAME"

// Release is one row of the release listing keyed by column header.
type Release map[string]string

func (r Release) Name() string {
	return r[NameColumn]
}

var columnGap = regexp.MustCompile(`\s{2,}`)

// ParseReleases parses the tabular output of a release listing. The header
// is the first line with a NAME column; anything before it, such as warnings
// on stderr, is skipped. Columns are tab separated; output without tabs is
// split on runs of two or more spaces instead.
func ParseReleases(output string) []Release {
	var header []string
	var releases []Release
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitColumns(line)
		if header == nil {
			if hasColumn(fields, NameColumn) {
				header = fields
			}
			continue
		}
		release := Release{}
		for i, column := range header {
			if i < len(fields) {
				release[column] = fields[i]
			} else {
				release[column] = ""
			}
		}
		releases = append(releases, release)
	}
	return releases
}

func hasColumn(fields []string, column string) bool {
	for _, f := range fields {
		if f == column {
			return true
		}
	}
	return false
}

func splitColumns(line string) []string {
	var fields []string
	if strings.Contains(line, "\t") {
		fields = strings.Split(line, "\t")
	} else {
		fields = columnGap.Split(strings.TrimSpace(line), -1)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// FilterByName keeps the releases whose name matches exactly.
func FilterByName(releases []Release, name string) []Release {
	var filtered []Release
	for _, r := range releases {
		if r.Name() == name {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
