package http

type ConvertRequest struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	BaseCurrency   string  `json:"base_currency"`
	TargetCurrency string  `json:"target_currency" binding:"required,len=3"`
}

type ConvertResponse struct {
	BaseCurrency    string  `json:"base_currency"`
	TargetCurrency  string  `json:"target_currency"`
	Amount          float64 `json:"amount"`
	ConvertedAmount float64 `json:"converted_amount"`
}
