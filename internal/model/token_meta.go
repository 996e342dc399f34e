package model

// TokenMeta describes a token. Unknown marks a synthesized placeholder.
type TokenMeta struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
	LogoURL  string `json:"logo_url,omitempty"`
	Unknown  bool   `json:"unknown,omitempty"`
}
