// Package peaktime holds the static audience peak-time table per content
// category and day type.
package peaktime

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"UploadTimeAdvisor/internal/domain"
)

//go:embed peak_times.yaml
var tableYAML []byte

type bandsFile struct {
	Peak      string `yaml:"peak"`
	Secondary string `yaml:"secondary"`
	Late      string `yaml:"late"`
}

type tableFile struct {
	Categories      map[domain.Category]map[domain.DayType]bandsFile `yaml:"categories"`
	GeneralStats    domain.GeneralStats                              `yaml:"generalStats"`
	Recommendations domain.TextualRecommendations                    `yaml:"recommendations"`
}

// Model answers peak-band lookups. It is read-only after construction.
type Model struct {
	bands           map[domain.Category]map[domain.DayType]domain.PeakBands
	generalStats    domain.GeneralStats
	recommendations domain.TextualRecommendations
}

// Load parses the embedded table.
func Load() (*Model, error) {
	return parse(tableYAML)
}

func parse(raw []byte) (*Model, error) {
	var file tableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse peak time table: %w", err)
	}

	if _, ok := file.Categories[domain.DefaultCategory]; !ok {
		return nil, fmt.Errorf("peak time table lacks default category %q", domain.DefaultCategory)
	}

	bands := make(map[domain.Category]map[domain.DayType]domain.PeakBands, len(file.Categories))
	for category, byDay := range file.Categories {
		row := make(map[domain.DayType]domain.PeakBands, len(domain.DayTypes))
		for _, dayType := range domain.DayTypes {
			b, ok := byDay[dayType]
			if !ok || b.Peak == "" || b.Secondary == "" || b.Late == "" {
				return nil, fmt.Errorf("category %s: incomplete bands for %s", category, dayType)
			}
			row[dayType] = domain.PeakBands{
				Primary:   domain.PeakBand{Label: domain.BandPrimary, Window: b.Peak},
				Secondary: domain.PeakBand{Label: domain.BandSecondary, Window: b.Secondary},
				Late:      domain.PeakBand{Label: domain.BandLate, Window: b.Late},
			}
		}
		bands[category] = row
	}

	return &Model{
		bands:           bands,
		generalStats:    file.GeneralStats,
		recommendations: file.Recommendations,
	}, nil
}

// Resolve maps unknown categories to the default one. The second result
// reports whether the category was recognized.
func (m *Model) Resolve(category domain.Category) (domain.Category, bool) {
	if _, ok := m.bands[category]; ok {
		return category, true
	}
	return domain.DefaultCategory, false
}

// Bands returns the three bands for category and day type.
func (m *Model) Bands(category domain.Category, dayType domain.DayType) domain.PeakBands {
	resolved, _ := m.Resolve(category)
	return m.bands[resolved][dayType]
}

// Categories lists the recognized categories.
func (m *Model) Categories() []domain.Category {
	out := make([]domain.Category, 0, len(m.bands))
	for _, c := range []domain.Category{
		domain.CategoryGeneral,
		domain.CategoryEntertainment,
		domain.CategoryEducation,
		domain.CategoryGaming,
	} {
		if _, ok := m.bands[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Stats returns the static statistics for a category.
func (m *Model) Stats(category domain.Category) domain.CategoryStats {
	resolved, _ := m.Resolve(category)

	peakTimes := make(map[domain.DayType]domain.PeakBands, len(domain.DayTypes))
	for dayType, b := range m.bands[resolved] {
		peakTimes[dayType] = b
	}

	recs := m.recommendations
	recs.BestUploadDays = append([]string(nil), m.recommendations.BestUploadDays...)
	recs.AvoidDays = append([]string(nil), m.recommendations.AvoidDays...)

	return domain.CategoryStats{
		Category:        category,
		PeakTimes:       peakTimes,
		GeneralStats:    m.generalStats,
		Recommendations: recs,
	}
}
