package market

// Precious-metal quotes arrive per troy ounce; transactions are recorded in
// grams. Minted coin weights let the UI offer standard Turkish coin types
// as multiples of the gram price.

// gramsPerTroyOunce is the conversion factor between spot quotes and grams.
const gramsPerTroyOunce = 31.1034768

// OuncesToGrams converts a per-troy-ounce quote to a per-gram price.
func OuncesToGrams(pricePerOunce float64) float64 {
	return pricePerOunce / gramsPerTroyOunce
}

// CoinType describes a minted gold or silver coin as a multiple of one gram.
type CoinType struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

// GoldCoinTypes lists the standard minted gold denominations and their
// gram weights.
var GoldCoinTypes = []CoinType{
	{ID: "gram", Name: "Gram Gold", Grams: 1},
	{ID: "quarter", Name: "Quarter Gold", Grams: 1.75},
	{ID: "half", Name: "Half Gold", Grams: 3.5},
	{ID: "full", Name: "Full Gold (Republic)", Grams: 7.216},
	{ID: "ata", Name: "Ata Gold", Grams: 7.216},
	{ID: "gremse", Name: "Gremse", Grams: 3.5},
	{ID: "two-and-half", Name: "2.5 Gold", Grams: 17.5},
}

// CoinPrice returns the price of a coin given the current gram price.
func CoinPrice(gramPrice float64, coin CoinType) float64 {
	return gramPrice * coin.Grams
}
