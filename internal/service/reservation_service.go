package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"kadoshrent/internal/entities"
	"kadoshrent/internal/metrics"
)

const (
	MsgInvalidForm         = "Invalid form data."
	MsgSuccess             = "Reservation request sent successfully!"
	MsgArtifactUnavailable = "Reservation email sent, but failed to generate calendar file."
	MsgUnexpectedError     = "An unexpected error occurred."
)

// SubmitTimeout is the server-side upper bound for one submission.
const SubmitTimeout = 30 * time.Second

//go:embed templates/reservation_email.html
var templateFS embed.FS

var emailTemplate = template.Must(template.ParseFS(templateFS, "templates/reservation_email.html"))

// VehicleLookup resolves catalog vehicles by id.
type VehicleLookup interface {
	FindByID(id string) (entities.Vehicle, bool)
}

// ReservationService runs the reservation workflow: validate, notify the
// operator, then build the calendar invitation.
type ReservationService struct {
	notifier Notifier
	calendar *CalendarService
	vehicles VehicleLookup
	log      *logrus.Logger
}

func NewReservationService(notifier Notifier, calendar *CalendarService, vehicles VehicleLookup, log *logrus.Logger) *ReservationService {
	return &ReservationService{
		notifier: notifier,
		calendar: calendar,
		vehicles: vehicles,
		log:      log,
	}
}

// Submit never returns an error: every failure is folded into the result.
// It blocks until the notification finished. Cancelling ctx does not abort a
// submission; only SubmitTimeout bounds it.
func (s *ReservationService) Submit(ctx context.Context, req entities.ReservationRequest) (result entities.ReservationResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SubmitTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("reservation submission panicked")
			metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
			result = entities.ReservationResult{Success: false, Message: MsgUnexpectedError}
		}
	}()

	req = normalizeRequest(req)
	if errs := s.validate(req); len(errs) > 0 {
		metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return entities.ReservationResult{Success: false, Message: MsgInvalidForm, Errors: errs}
	}
	req = s.withVehicle(req)

	entry := s.log.WithFields(logrus.Fields{
		"vehicle": orDefault(req.VehicleName, "N/A"),
		"email":   req.Email,
		"pickup":  req.PickupDate + " " + req.PickupTime,
		"return":  req.ReturnDate + " " + req.ReturnTime,
	})

	notice, err := s.buildNotice(req)
	if err == nil {
		err = s.notifier.Notify(ctx, notice)
	}
	if err != nil {
		entry.WithError(err).Error("reservation submission failed")
		metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return entities.ReservationResult{Success: false, Message: MsgUnexpectedError}
	}

	artifact, err := s.calendar.Build(req)
	if err != nil {
		entry.WithError(err).Warn("calendar file generation failed")
		metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeArtifactUnavailable).Inc()
		return entities.ReservationResult{Success: true, Message: MsgArtifactUnavailable}
	}

	entry.Info("reservation request sent")
	metrics.ReservationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return entities.ReservationResult{
		Success:     true,
		Message:     MsgSuccess,
		ICSData:     artifact.Data,
		ICSFilename: artifact.Filename,
	}
}

func (s *ReservationService) validate(req entities.ReservationRequest) ValidationErrors {
	errs := ValidateReservation(req)
	if req.VehicleID != "" && s.vehicles != nil {
		if _, ok := s.vehicles.FindByID(req.VehicleID); !ok {
			errs.Add("vehicleId", "Unknown vehicle")
		}
	}
	return errs
}

func normalizeRequest(req entities.ReservationRequest) entities.ReservationRequest {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.VehicleID = strings.TrimSpace(req.VehicleID)
	req.VehicleName = strings.TrimSpace(req.VehicleName)
	return req
}

// withVehicle fills a missing vehicle name from the catalog.
func (s *ReservationService) withVehicle(req entities.ReservationRequest) entities.ReservationRequest {
	if req.VehicleID == "" || req.VehicleName != "" || s.vehicles == nil {
		return req
	}
	if v, ok := s.vehicles.FindByID(req.VehicleID); ok {
		req.VehicleName = v.Name
	}
	return req
}

func (s *ReservationService) buildNotice(req entities.ReservationRequest) (ReservationNotice, error) {
	data := entities.ReservationEmailData{
		VehicleName:  orDefault(req.VehicleName, "Not specified (General Inquiry)"),
		VehicleID:    orDefault(req.VehicleID, "N/A"),
		FullName:     req.FullName(),
		IDOrPassport: req.IDOrPassport,
		Phone:        req.Phone,
		Email:        req.Email,
		Pickup:       humanDate(req.PickupDate) + " at " + req.PickupTime,
		Return:       humanDate(req.ReturnDate) + " at " + req.ReturnTime,
		Comments:     orDefault(req.AdditionalComments, "None"),
		CurrentYear:  time.Now().Year(),
	}

	var html bytes.Buffer
	if err := emailTemplate.Execute(&html, data); err != nil {
		return ReservationNotice{}, fmt.Errorf("error rendering reservation email: %w", err)
	}

	plain := fmt.Sprintf(
		"New Vehicle Reservation Request\n\n"+
			"Vehicle: %s (ID: %s)\n"+
			"Name: %s\n"+
			"ID/Passport: %s\n"+
			"Phone: %s\n"+
			"Email: %s\n"+
			"Pickup: %s\n"+
			"Return: %s\n"+
			"Comments: %s\n",
		data.VehicleName, data.VehicleID, data.FullName, data.IDOrPassport, data.Phone,
		data.Email, data.Pickup, data.Return, data.Comments,
	)

	return ReservationNotice{
		Subject:     fmt.Sprintf("New Vehicle Reservation: %s - %s", orDefault(req.VehicleName, "N/A"), req.FullName()),
		HTMLBody:    html.String(),
		PlainBody:   plain,
		ReplyTo:     req.Email,
		ReplyToName: req.FullName(),
		Request:     req,
	}, nil
}

// humanDate renders YYYY-MM-DD as "June 1st, 2024".
func humanDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
