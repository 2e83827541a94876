package entities

// ReservationRequest is the reservation form as submitted by the visitor.
// Dates are YYYY-MM-DD and times HH:MM on the half-hour grid.
type ReservationRequest struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	IDOrPassport       string `json:"idOrPassport"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	PickupDate         string `json:"pickupDate"`
	PickupTime         string `json:"pickupTime"`
	ReturnDate         string `json:"returnDate"`
	ReturnTime         string `json:"returnTime"`
	AdditionalComments string `json:"additionalComments,omitempty"`
	VehicleID          string `json:"vehicleId,omitempty"`
	VehicleName        string `json:"vehicleName,omitempty"`
	Locale             string `json:"locale,omitempty"`
}

func (r ReservationRequest) FullName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
