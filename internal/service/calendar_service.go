package service

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"kadoshrent/internal/entities"
)

const (
	ICSProductID        = "-//Kadosh RentCar//Reservations//EN"
	DefaultArtifactName = "Kadosh_Reservation"
	slotMinutes         = 30
)

// TimeSlots returns the 48 selectable times of day, 00:00 through 23:30.
func TimeSlots() []string {
	slots := make([]string, 0, 24*60/slotMinutes)
	for m := 0; m < 24*60; m += slotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// slotMinutesOf returns the minutes after midnight of a grid time.
func slotMinutesOf(s string) (int, error) {
	m, ok := clockMinutes(s)
	if !ok || m%slotMinutes != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
	}
	return m, nil
}

type CalendarArtifact struct {
	Data     string
	Filename string
}

// CalendarService renders a reservation as an iCalendar invitation.
type CalendarService struct {
	OrganizerName  string
	OrganizerEmail string
	Location       string
	TimeZone       *time.Location
	Now            func() time.Time
	NewUID         func() string
}

func NewCalendarService(organizerName, organizerEmail, location string) *CalendarService {
	loc, err := time.LoadLocation("America/Santo_Domingo")
	if err != nil {
		loc = time.FixedZone("AST", -4*60*60) // fallback AST
	}
	return &CalendarService{
		OrganizerName:  organizerName,
		OrganizerEmail: organizerEmail,
		Location:       location,
		TimeZone:       loc,
		Now:            time.Now,
		NewUID:         func() string { return uuid.NewString() + "@kadoshrentcar" },
	}
}

// CombineDateAndTime joins a YYYY-MM-DD date with a grid time in loc.
func CombineDateAndTime(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	m, err := slotMinutesOf(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), m/60, m%60, 0, 0, loc), nil
}

// Build renders the invitation for req.
func (s *CalendarService) Build(req entities.ReservationRequest) (*CalendarArtifact, error) {
	start, err := CombineDateAndTime(req.PickupDate, req.PickupTime, s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}
	end, err := CombineDateAndTime(req.ReturnDate, req.ReturnTime, s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("return: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("return %s is before pickup %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	now := s.Now()
	vehicle := req.VehicleName
	if vehicle == "" {
		vehicle = "Vehicle"
	}

	cal := ics.NewCalendar()
	cal.SetProductId(ICSProductID)
	cal.SetMethod(ics.MethodRequest)

	event := cal.AddEvent(s.NewUID())
	event.SetDtStampTime(now)
	event.SetCreatedTime(now)
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(fmt.Sprintf("%s Reservation: %s", s.OrganizerName, vehicle))
	event.SetDescription(eventDescription(req, start, end))
	event.SetLocation(s.Location)
	event.SetOrganizer("mailto:"+s.OrganizerEmail, ics.WithCN(s.OrganizerName))
	event.AddAttendee("mailto:"+strings.TrimSpace(req.Email),
		ics.CalendarUserTypeIndividual,
		ics.ParticipationStatusNeedsAction,
		ics.ParticipationRoleReqParticipant,
		ics.WithRSVP(true),
		ics.WithCN(req.FullName()),
	)

	return &CalendarArtifact{
		Data:     cal.Serialize(),
		Filename: ArtifactFilename(req.VehicleName, start),
	}, nil
}

func eventDescription(req entities.ReservationRequest, start, end time.Time) string {
	const layout = "Jan 2, 2006 15:04"
	return fmt.Sprintf(
		"Reservation for %s. Vehicle: %s (ID: %s). Pickup: %s, Return: %s. ID/Passport: %s. Contact: %s, %s. Comments: %s",
		req.FullName(), orDefault(req.VehicleName, "N/A"), orDefault(req.VehicleID, "N/A"),
		start.Format(layout), end.Format(layout),
		req.IDOrPassport, req.Phone, req.Email,
		orDefault(req.AdditionalComments, "None"),
	)
}

var filenameReplacer = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
)

// ArtifactFilename names the downloadable file <vehicle>_<YYYYMMDD>.ics.
func ArtifactFilename(vehicleName string, pickup time.Time) string {
	name := strings.TrimSpace(vehicleName)
	if name == "" {
		name = DefaultArtifactName
	}
	return fmt.Sprintf("%s_%s.ics", filenameReplacer.Replace(name), pickup.Format("20060102"))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
