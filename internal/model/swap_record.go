package model

// SwapRecord is one journaled swap attempt.
type SwapRecord struct {
	ID           string  `json:"id"`
	Attempt      int     `json:"attempt"`
	TokenIn      string  `json:"token_in"`
	TokenOut     string  `json:"token_out"`
	AmountIn     string  `json:"amount_in"`
	AmountInBase string  `json:"amount_in_base"`
	QuoteOut     string  `json:"quote_out"`
	MinOutBase   string  `json:"min_out_base"`
	PoolKey      PoolKey `json:"pool_key"`
	Outcome      string  `json:"outcome"`
	TxHash       string  `json:"tx_hash,omitempty"`
	Error        string  `json:"error,omitempty"`
	RecordedAt   string  `json:"recorded_at"`
}
