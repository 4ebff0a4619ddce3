package model

// AnnotatedBar extends a Bar with the derived indicator and score columns.
// Cells whose rolling window has not yet filled hold NaN; early-series NaN
// runs are expected, not an error.
type AnnotatedBar struct {
	Bar
	Ret       float64
	VolChange float64
	VolAmp    float64
	VolRatio  float64
	Valuation float64
	Sentiment float64
	LPScore   float64
}
