package domain

// BabySize describes fetal development at a given pregnancy week using
// the familiar fruit-and-vegetable comparison
type BabySize struct {
	Week       int     `json:"week"`
	Comparison string  `json:"comparison"`
	LengthCm   float64 `json:"length_cm"`
	WeightG    float64 `json:"weight_g"`
}

var babySizes = []BabySize{
	{Week: 4, Comparison: "poppy seed", LengthCm: 0.1, WeightG: 0.4},
	{Week: 5, Comparison: "sesame seed", LengthCm: 0.3, WeightG: 0.7},
	{Week: 6, Comparison: "lentil", LengthCm: 0.6, WeightG: 1},
	{Week: 7, Comparison: "blueberry", LengthCm: 1.3, WeightG: 1.1},
	{Week: 8, Comparison: "raspberry", LengthCm: 1.6, WeightG: 1.5},
	{Week: 9, Comparison: "cherry", LengthCm: 2.3, WeightG: 2},
	{Week: 10, Comparison: "strawberry", LengthCm: 3.1, WeightG: 4},
	{Week: 11, Comparison: "lime", LengthCm: 4.1, WeightG: 7},
	{Week: 12, Comparison: "plum", LengthCm: 5.4, WeightG: 14},
	{Week: 13, Comparison: "peach", LengthCm: 7.4, WeightG: 23},
	{Week: 14, Comparison: "lemon", LengthCm: 8.7, WeightG: 43},
	{Week: 15, Comparison: "apple", LengthCm: 10.1, WeightG: 70},
	{Week: 16, Comparison: "avocado", LengthCm: 11.6, WeightG: 100},
	{Week: 17, Comparison: "pear", LengthCm: 13, WeightG: 140},
	{Week: 18, Comparison: "bell pepper", LengthCm: 14.2, WeightG: 190},
	{Week: 19, Comparison: "mango", LengthCm: 15.3, WeightG: 240},
	{Week: 20, Comparison: "banana", LengthCm: 25.6, WeightG: 300},
	{Week: 21, Comparison: "carrot", LengthCm: 26.7, WeightG: 360},
	{Week: 22, Comparison: "papaya", LengthCm: 27.8, WeightG: 430},
	{Week: 23, Comparison: "grapefruit", LengthCm: 28.9, WeightG: 500},
	{Week: 24, Comparison: "corn cob", LengthCm: 30, WeightG: 600},
	{Week: 25, Comparison: "cauliflower", LengthCm: 34.6, WeightG: 660},
	{Week: 26, Comparison: "lettuce", LengthCm: 35.6, WeightG: 760},
	{Week: 27, Comparison: "broccoli", LengthCm: 36.6, WeightG: 875},
	{Week: 28, Comparison: "eggplant", LengthCm: 37.6, WeightG: 1000},
	{Week: 29, Comparison: "butternut squash", LengthCm: 38.6, WeightG: 1150},
	{Week: 30, Comparison: "cabbage", LengthCm: 39.9, WeightG: 1320},
	{Week: 31, Comparison: "coconut", LengthCm: 41.1, WeightG: 1500},
	{Week: 32, Comparison: "jicama", LengthCm: 42.4, WeightG: 1700},
	{Week: 33, Comparison: "pineapple", LengthCm: 43.7, WeightG: 1900},
	{Week: 34, Comparison: "cantaloupe", LengthCm: 45, WeightG: 2150},
	{Week: 35, Comparison: "honeydew melon", LengthCm: 46.2, WeightG: 2380},
	{Week: 36, Comparison: "romaine lettuce", LengthCm: 47.4, WeightG: 2620},
	{Week: 37, Comparison: "swiss chard", LengthCm: 48.6, WeightG: 2860},
	{Week: 38, Comparison: "leek", LengthCm: 49.8, WeightG: 3080},
	{Week: 39, Comparison: "mini watermelon", LengthCm: 50.7, WeightG: 3290},
	{Week: 40, Comparison: "small pumpkin", LengthCm: 51.2, WeightG: 3460},
}

// BabySizeForWeek looks up the size comparison for a pregnancy week.
// ok is false outside the covered 4..40 range.
func BabySizeForWeek(week int) (BabySize, bool) {
	for _, s := range babySizes {
		if s.Week == week {
			return s, true
		}
	}
	return BabySize{}, false
}
