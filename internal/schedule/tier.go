package schedule

import "fmt"

// Canonical tier names used across documents and scoring.
const (
	TierEliteSeries     = "Elite Series"
	TierEliteSeriesPlus = "Elite Series Plus"
	TierMajor           = "Major"
)

// Tier describes how a tournament's level affects scoring and display.
type Tier struct {
	Abbr       string  `json:"abbr"`
	Name       string  `json:"name"`
	Display    string  `json:"display"`
	Multiplier float64 `json:"multiplier"`
	Known      bool    `json:"known"`
}

var tierNames = map[string]string{
	"ES":  TierEliteSeries,
	"ESP": TierEliteSeriesPlus,
	"M":   TierMajor,
}

var tierWeights = map[string]struct {
	Multiplier float64
	Display    string
}{
	TierEliteSeries:     {Multiplier: 1.0, Display: "Elite"},
	TierEliteSeriesPlus: {Multiplier: 1.5, Display: "Elite"},
	TierMajor:           {Multiplier: 2.0, Display: "Major"},
}

// ClassifyTier resolves a schedule tier abbreviation. Unknown abbreviations
// do not fail the record: they score at 1.0 and carry an explicit Unknown
// name so bad schedule data stays visible downstream.
func ClassifyTier(abbr string) Tier {
	name, ok := tierNames[abbr]
	if !ok {
		return Tier{
			Abbr:       abbr,
			Name:       fmt.Sprintf("Unknown (%s)", abbr),
			Display:    abbr,
			Multiplier: 1.0,
		}
	}

	w := tierWeights[name]
	return Tier{
		Abbr:       abbr,
		Name:       name,
		Display:    w.Display,
		Multiplier: w.Multiplier,
		Known:      true,
	}
}
