package domain

type Price string

const (
	PriceFree      Price = "free"
	PriceFreeTrial Price = "free-trial"
	PriceLow       Price = "1-5"
	PriceMid       Price = "6-10"
	PriceHigh      Price = "10+"

	// PriceAll is the filter sentinel that disables price filtering.
	PriceAll = "all"
)

var Prices = []Price{PriceFree, PriceFreeTrial, PriceLow, PriceMid, PriceHigh}

var priceLabels = map[Price]string{
	PriceFree:      "Free",
	PriceFreeTrial: "Free Trial",
	PriceLow:       "$1-5",
	PriceMid:       "$6-10",
	PriceHigh:      "$10+",
}

func (p Price) Valid() bool {
	_, ok := priceLabels[p]
	return ok
}

// Label returns the display label, or the raw value for prices outside the enumeration.
func (p Price) Label() string {
	if label, ok := priceLabels[p]; ok {
		return label
	}
	return string(p)
}
