package product

// DebugPriceDisplay is the display price every product gets in debug mode.
// It deliberately disagrees with DebugPriceNumber; callers rely on both values as they are.
const DebugPriceDisplay = "$2.29"

// DebugPriceNumber returns the fixed numeric debug price for a duration.
func DebugPriceNumber(d Duration) float64 {
	switch d {
	case DurationWeek:
		return 4.99
	case DurationMonth:
		return 9.99
	case DurationYear:
		return 39.99
	case DurationDay:
		return 1.99
	default:
		return 5.99
	}
}
