package service

import (
	"net/mail"
	"strconv"
	"strings"
	"time"

	"kadoshrent/internal/entities"
)

const dateLayout = "2006-01-02"

// ValidateReservation checks the structure of a submitted form. The returned
// map is empty when the request is valid.
func ValidateReservation(req entities.ReservationRequest) ValidationErrors {
	errs := ValidationErrors{}

	required := []struct {
		field, value, message string
	}{
		{"firstName", req.FirstName, "First name is required"},
		{"lastName", req.LastName, "Last name is required"},
		{"idOrPassport", req.IDOrPassport, "ID or Passport is required"},
		{"phone", req.Phone, "Phone number is required"},
		{"pickupTime", req.PickupTime, "Pickup time is required"},
		{"returnTime", req.ReturnTime, "Return time is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.Add(r.field, r.message)
		}
	}

	if !isEmail(req.Email) {
		errs.Add("email", "Invalid email address")
	}

	pickup, pickupOK := parseDate(req.PickupDate, "pickupDate", "Pickup date is required.", errs)
	ret, returnOK := parseDate(req.ReturnDate, "returnDate", "Return date is required.", errs)

	if pickupOK && returnOK {
		switch {
		case ret.Before(pickup):
			errs.Add("returnDate", "Return date must be after or same as pickup date")
		case ret.Equal(pickup):
			pm, ok1 := clockMinutes(req.PickupTime)
			rm, ok2 := clockMinutes(req.ReturnTime)
			if ok1 && ok2 && rm < pm {
				errs.Add("returnTime", "Return time must be after or same as pickup time")
			}
		}
	}

	return errs
}

func isEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

func parseDate(value, field, requiredMsg string, errs ValidationErrors) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(field, requiredMsg)
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		errs.Add(field, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

// clockMinutes parses HH:MM into minutes after midnight.
func clockMinutes(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
