package models

import (
	"time"

	"github.com/google/uuid"
)

// Sport identifies the market shape a bet belongs to.
type Sport string

const (
	SportBasketball Sport = "basketball"
	SportSoccer     Sport = "soccer"
)

// BetType is the outcome a bet backs.
type BetType string

const (
	BetTypeHome BetType = "home"
	BetTypeDraw BetType = "draw"
	BetTypeAway BetType = "away"
)

// BetResult is the settlement outcome of a bet.
type BetResult string

const (
	BetResultWin  BetResult = "win"
	BetResultLoss BetResult = "loss"
	BetResultPush BetResult = "push"
)

// Valid reports whether the result is one of the three settlement outcomes.
func (r BetResult) Valid() bool {
	return r == BetResultWin || r == BetResultLoss || r == BetResultPush
}

// Bet is a persisted betting transaction. Created at placement; mutated once
// at settlement when Result and ProfitLoss are recorded.
type Bet struct {
	ID                uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	Sport             Sport      `db:"sport" json:"sport" validate:"required,oneof=basketball soccer"`
	HomeTeam          string     `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam          string     `db:"away_team" json:"away_team" validate:"required"`
	BetType           BetType    `db:"bet_type" json:"bet_type" validate:"required,oneof=home draw away"`
	Odds              float64    `db:"odds" json:"odds" validate:"required,gt=1"`
	Stake             float64    `db:"stake" json:"stake" validate:"required,gt=0"`
	TrueProbability   float64    `db:"true_probability" json:"true_probability" validate:"gte=0,lte=100"`
	MarketProbability float64    `db:"market_probability" json:"market_probability" validate:"gte=0,lte=100"`
	Edge              float64    `db:"edge" json:"edge"`
	Result            *BetResult `db:"result" json:"result"`
	ProfitLoss        *float64   `db:"profit_loss" json:"profit_loss"`
	MatchDate         *string    `db:"match_date" json:"match_date"`
	PlacedAt          time.Time  `db:"placed_at" json:"placed_at" validate:"required"`
	SettledAt         *time.Time `db:"settled_at" json:"settled_at"`
}

// IsSettled checks whether the bet has a recorded result.
func (b *Bet) IsSettled() bool {
	return b.Result != nil
}

// GetProfitLoss returns the realized P/L, or 0 while unsettled.
func (b *Bet) GetProfitLoss() float64 {
	if b.ProfitLoss == nil {
		return 0
	}
	return *b.ProfitLoss
}

// GetROI returns the return on investment percentage for a settled bet.
func (b *Bet) GetROI() float64 {
	if b.Stake == 0 {
		return 0
	}
	return (b.GetProfitLoss() / b.Stake) * 100
}
