package assessments

import (
	"math"
	"strconv"

	"github.com/volatiletech/null/v8"
)

// AveragePlaceholder renders wherever a final average is not yet
// computable.
const AveragePlaceholder = "غير مكتمل"

// FinalAverage computes the weighted term average from the four
// component scores: continuous assessment, the two tests averaged
// together, and the exam counted twice. The result is only defined once
// every component exists; any missing score yields an invalid value,
// never a partial or zero-filled number.
func FinalAverage(ca, test1, test2, exam null.Float64) null.Float64 {
	if !ca.Valid || !test1.Valid || !test2.Valid || !exam.Valid {
		return null.Float64{}
	}
	avg := (ca.Float64 + (test1.Float64+test2.Float64)/2 + exam.Float64*2) / 4
	return null.Float64From(round2(avg))
}

// FormatAverage renders an average for display, falling back to the
// placeholder while scores are still missing.
func FormatAverage(avg null.Float64) string {
	if !avg.Valid {
		return AveragePlaceholder
	}
	return strconv.FormatFloat(avg.Float64, 'f', 2, 64)
}

// FormatScore renders a single component score, em-dash for not yet
// entered.
func FormatScore(v null.Float64) string {
	if !v.Valid {
		return "—"
	}
	return strconv.FormatFloat(v.Float64, 'f', 2, 64)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
