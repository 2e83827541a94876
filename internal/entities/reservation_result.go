package entities

type ReservationResult struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	ICSData     string              `json:"icsData,omitempty"`
	ICSFilename string              `json:"icsFilename,omitempty"`
	Errors      map[string][]string `json:"errors,omitempty"`
}
