package classify

// LengthBucket groups games by move count.
type LengthBucket string

const (
	LengthQuick  LengthBucket = "Quick"
	LengthMedium LengthBucket = "Medium"
	LengthLong   LengthBucket = "Long"
)

// LossQuality grades a lost game by how long it lasted.
type LossQuality string

const (
	LossNotApplicable LossQuality = "N/A"
	LossQuick         LossQuality = "Quick Loss"
	LossStandard      LossQuality = "Standard Loss"
	LossWellFought    LossQuality = "Well-Fought Loss"
)

// DefaultLossBucket is the provenance label that marks a lost game.
const DefaultLossBucket = "loss"

// GameLength buckets moveCount: under 20 is Quick, 20 through 40 Medium,
// anything above Long.
func GameLength(moveCount int) LengthBucket {
	switch {
	case moveCount < 20:
		return LengthQuick
	case moveCount <= 40:
		return LengthMedium
	default:
		return LengthLong
	}
}

// LossQualityFor grades moveCount when bucket equals lossBucket exactly and
// returns LossNotApplicable otherwise.
func LossQualityFor(bucket, lossBucket string, moveCount int) LossQuality {
	if bucket != lossBucket {
		return LossNotApplicable
	}
	switch {
	case moveCount < 15:
		return LossQuick
	case moveCount < 30:
		return LossStandard
	default:
		return LossWellFought
	}
}
