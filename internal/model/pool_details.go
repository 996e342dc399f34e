package model

// PoolDetails is the per-pool lookup result with both legs' token metadata.
type PoolDetails struct {
	Key    PoolKey   `json:"pool_key"`
	Token0 TokenMeta `json:"token0"`
	Token1 TokenMeta `json:"token1"`
}
