package models

// MoneylinePair is a two-sided American moneyline quote.
type MoneylinePair struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// DecimalPair is a two-sided decimal odds quote.
type DecimalPair struct {
	Home float64 `json:"home" validate:"gt=1"`
	Away float64 `json:"away" validate:"gt=1"`
}

// DecimalTriple is a three-way decimal odds quote (home/draw/away).
type DecimalTriple struct {
	Home float64 `json:"home" validate:"gt=1"`
	Draw float64 `json:"draw" validate:"gt=1"`
	Away float64 `json:"away" validate:"gt=1"`
}

/// OddsInput is the tagged-union market quote for a 2-way game: callers
// populate exactly one of Moneyline or Decimal. Validated at the
// orchestration boundary rather than silently coerced.
type OddsInput struct {
	Moneyline *MoneylinePair `json:"moneyline,omitempty"`
	Decimal   *DecimalPair   `json:"decimal,omitempty"`
}

// Validate enforces the exactly-one-variant contract.
func (o OddsInput) Validate() error {
	if (o.Moneyline == nil) == (o.Decimal == nil) {
		return ErrInvalidOddsInput
	}
	return nil
}
