// Package extractor implements the per-field extraction cascades that turn
// normalized OCR text into typed invoice fields with calibrated confidence
// scores. Every extractor is a pure function over its input; the compiled
// pattern tables are package-level and safe for concurrent reads.
package extractor

// SuccessThreshold is the minimum confidence for an extraction to count as
// successful.
const SuccessThreshold = 0.4

// Result is the outcome of one field extraction attempt.
type Result[T any] struct {
	Value       *T
	Confidence  float64
	PatternUsed string
	Factors     Factors
}

// IsSuccess reports whether the extraction produced a usable value.
func (r *Result[T]) IsSuccess() bool {
	return r.Confidence >= SuccessThreshold && r.Value != nil
}

// Factors are the independent inputs to the confidence formula, each in
// [0,1] and defaulting to 1.0.
type Factors struct {
	PatternPriority      float64 // intrinsic reliability of the matched rule
	ContextValidation    float64 // reserved, 1.0 for most extractors
	PositionScore        float64 // plausibility of the match location
	CrossFieldValidation float64 // agreement with other fields (amounts only)
}

// NewFactors returns Factors with every component at its 1.0 default.
func NewFactors() Factors {
	return Factors{
		PatternPriority:      1.0,
		ContextValidation:    1.0,
		PositionScore:        1.0,
		CrossFieldValidation: 1.0,
	}
}

// Overall combines the factors with the fixed design weights.
func (f Factors) Overall() float64 {
	return f.PatternPriority*0.4 +
		f.ContextValidation*0.3 +
		f.PositionScore*0.2 +
		f.CrossFieldValidation*0.1
}

// Extractor is the contract shared by all field extractors.
type Extractor[T any] interface {
	Extract(normalizedText string) Result[T]
	FieldName() string
}
