package calendar

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"UploadTimeAdvisor/internal/domain"
)

//go:embed holidays.yaml
var builtinYAML []byte

// RecurringHoliday is a fixed-date holiday described by an RRULE.
type RecurringHoliday struct {
	Name string             `yaml:"name"`
	Kind domain.HolidayKind `yaml:"type"`
	Rule string             `yaml:"rule"`
}

type tableFile struct {
	Holidays  []domain.HolidayEntry `yaml:"holidays"`
	Recurring []RecurringHoliday    `yaml:"recurring"`
}

// Builtin returns the shipped holiday table and recurring rules.
func Builtin() ([]domain.HolidayEntry, []RecurringHoliday, error) {
	return parseTable(builtinYAML)
}

func parseTable(raw []byte) ([]domain.HolidayEntry, []RecurringHoliday, error) {
	var file tableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("parse holiday table: %w", err)
	}
	return file.Holidays, file.Recurring, nil
}
