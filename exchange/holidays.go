package exchange

import (
	"fmt"
	"os"
	"strings"

	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
	"gopkg.in/yaml.v3"
)

// HolidayFile is a YAML holiday calendar:
//
//	holidays:
//	  - date: 2026-09-11
//	    name: Diada
//	  - date: 2026-09-24
//	    name: La Mercè
type HolidayFile struct {
	Holidays []HolidayEntry `yaml:"holidays"`
}

type HolidayEntry struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

// LoadHolidayFile reads and validates a holiday calendar.
func LoadHolidayFile(path string) (HolidayFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HolidayFile{}, fmt.Errorf("read holiday file: %w", err)
	}
	return ParseHolidayFile(data)
}

// ParseHolidayFile decodes YAML and rejects entries whose date does not parse.
func ParseHolidayFile(data []byte) (HolidayFile, error) {
	var hf HolidayFile
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return HolidayFile{}, &ValidationError{Issues: []Issue{{Message: "malformed YAML: " + err.Error()}}}
	}
	var issues []Issue
	for i, h := range hf.Holidays {
		h.Date = strings.TrimSpace(h.Date)
		if _, err := generic.ParseDate(h.Date); err != nil {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("holidays[%d].date", i),
				Message: "invalid date, expected YYYY-MM-DD",
			})
		}
		hf.Holidays[i] = h
	}
	if len(issues) > 0 {
		return HolidayFile{}, &ValidationError{Issues: issues}
	}
	return hf, nil
}

// Dates lists the entry dates.
func (hf HolidayFile) Dates() []string {
	out := make([]string, 0, len(hf.Holidays))
	for _, h := range hf.Holidays {
		out = append(out, h.Date)
	}
	return out
}

// MergeHolidays adds the file's dates to cfg.Holidays. Existing dates stay.
func MergeHolidays(cfg timesheet.UserConfig, hf HolidayFile) timesheet.UserConfig {
	cfg = cfg.Clone()
	cfg.Holidays = generic.NewDateSet(append(cfg.Holidays, hf.Dates()...)).Sorted()
	return cfg
}
