package model

// Quote is the expected result of a swap through a single pool.
type Quote struct {
	AmountOut        string  `json:"amount_out"`
	PriceImpact      float64 `json:"price_impact"`
	PoolKey          PoolKey `json:"pool_key"`
	TokenInDecimals  uint8   `json:"token_in_decimals"`
	TokenOutDecimals uint8   `json:"token_out_decimals"`
	Price            float64 `json:"price"`
	PriceSource      string  `json:"price_source"`
	Degraded         bool    `json:"degraded,omitempty"`
	DegradedReason   string  `json:"degraded_reason,omitempty"`
}
