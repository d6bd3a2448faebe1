package models

// BettingStats aggregates the bet ledger for presentation collaborators.
// Plain data; formatting belongs to the caller.
type BettingStats struct {
	TotalBets       int     `json:"total_bets"`
	SettledBets     int     `json:"settled_bets"`
	PendingBets     int     `json:"pending_bets"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	WinRate         float64 `json:"win_rate"`
	TotalStaked     float64 `json:"total_staked"`
	TotalProfitLoss float64 `json:"total_profit_loss"`
	ROI             float64 `json:"roi"`
	CurrentBankroll float64 `json:"current_bankroll"`
}
