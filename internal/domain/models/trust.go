package models

import "time"

// FeatureVectorLen is the fixed arity of the sitter feature vector.
const FeatureVectorLen = 15

// FeatureVector is the fixed-order encoding of a sitter's track record.
// Every field is kept in [0,1]; missing inputs default to 0 for counts and
// 0.5 for sentiment (neutral prior).
type FeatureVector struct {
	Sentiment          float64
	ResponseTime       float64
	Completion         float64
	Rating             float64
	Reliability        float64
	Verification       float64
	Experience         float64
	BookingVolume      float64
	Communication      float64
	EmergencyContacts  float64
	Certifications     float64
	BackgroundCheck    float64
	Insurance          float64
	IdentityVerified   float64
	BookingConsistency float64
}

// Values returns the vector in its fixed order.
func (f FeatureVector) Values() [FeatureVectorLen]float64 {
	return [FeatureVectorLen]float64{
		f.Sentiment,
		f.ResponseTime,
		f.Completion,
		f.Rating,
		f.Reliability,
		f.Verification,
		f.Experience,
		f.BookingVolume,
		f.Communication,
		f.EmergencyContacts,
		f.Certifications,
		f.BackgroundCheck,
		f.Insurance,
		f.IdentityVerified,
		f.BookingConsistency,
	}
}

// Mean is the simple average over all features. Used as the base score proxy
// when no trained model is configured: all features already point
// direction-of-good = high.
func (f FeatureVector) Mean() float64 {
	vals := f.Values()
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / FeatureVectorLen
}

// Clamped returns a copy with every element clamped to [0,1].
func (f FeatureVector) Clamped() FeatureVector {
	f.Sentiment = Clamp01(f.Sentiment)
	f.ResponseTime = Clamp01(f.ResponseTime)
	f.Completion = Clamp01(f.Completion)
	f.Rating = Clamp01(f.Rating)
	f.Reliability = Clamp01(f.Reliability)
	f.Verification = Clamp01(f.Verification)
	f.Experience = Clamp01(f.Experience)
	f.BookingVolume = Clamp01(f.BookingVolume)
	f.Communication = Clamp01(f.Communication)
	f.EmergencyContacts = Clamp01(f.EmergencyContacts)
	f.Certifications = Clamp01(f.Certifications)
	f.BackgroundCheck = Clamp01(f.BackgroundCheck)
	f.Insurance = Clamp01(f.Insurance)
	f.IdentityVerified = Clamp01(f.IdentityVerified)
	f.BookingConsistency = Clamp01(f.BookingConsistency)
	return f
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// TrustScoreResult is the per-call scoring output. Never cached across calls.
type TrustScoreResult struct {
	SitterID   string
	Score      float64
	Confidence float64
	Factors    []string
	ComputedAt time.Time
}
