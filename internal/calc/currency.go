package calc

// ToBase converts amount from source into the base currency using a single
// NGN-per-USD exchange rate. A missing source currency leaves the amount
// unconverted; a non-finite or non-positive rate is treated as 1.
func ToBase(amount float64, source, base Currency, usdRate float64) float64 {
	amount = Sanitize(amount)
	if source == "" || source == base {
		return amount
	}

	rate := Sanitize(usdRate)
	if rate <= 0 {
		rate = 1
	}

	if base == NGN {
		return amount * rate
	}
	return amount / rate
}
