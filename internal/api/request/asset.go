package request

type CreateAssetRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
}

type UpdateAssetRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Symbol   *string `json:"symbol,omitempty"`
	Currency *string `json:"currency,omitempty"`
}
