package entities

type ReservationEmailData struct {
	VehicleName  string
	VehicleID    string
	FullName     string
	IDOrPassport string
	Phone        string
	Email        string
	Pickup       string
	Return       string
	Comments     string
	CurrentYear  int
}
