package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"kadoshrent/internal/metrics"
)

type smsAPI interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioNotifier texts the operator a short alert about a new request.
type TwilioNotifier struct {
	api        smsAPI
	fromNumber string
	toNumber   string
	log        *logrus.Logger
}

func NewTwilioNotifier(accountSid, authToken, fromNumber, toNumber string, log *logrus.Logger) *TwilioNotifier {
	if !strings.HasPrefix(toNumber, "+") {
		log.Warnf("operator phone %q is not in E.164 format, SMS may fail", toNumber)
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})
	return &TwilioNotifier{api: client.Api, fromNumber: fromNumber, toNumber: toNumber, log: log}
}

func (n *TwilioNotifier) Notify(_ context.Context, notice ReservationNotice) (err error) {
	defer func() { metrics.RecordNotification("twilio", err) }()

	req := notice.Request
	body := fmt.Sprintf("Kadosh RentCar: new reservation from %s for %s.\nPickup: %s %s\nReturn: %s %s\nContact: %s",
		req.FullName(), orDefault(req.VehicleName, "N/A"),
		req.PickupDate, req.PickupTime, req.ReturnDate, req.ReturnTime, req.Phone)

	params := &openapi.CreateMessageParams{}
	params.SetTo(n.toNumber)
	params.SetFrom(n.fromNumber)
	params.SetBody(body)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		n.log.WithField("sid", *resp.Sid).Info("operator SMS sent")
	}
	return nil
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// ReservationEvent is the JSON payload published for each reservation request.
type ReservationEvent struct {
	RequestedAt time.Time `json:"requestedAt"`
	VehicleID   string    `json:"vehicleId,omitempty"`
	VehicleName string    `json:"vehicleName,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	PickupDate  string    `json:"pickupDate"`
	PickupTime  string    `json:"pickupTime"`
	ReturnDate  string    `json:"returnDate"`
	ReturnTime  string    `json:"returnTime"`
	Locale      string    `json:"locale,omitempty"`
}

// NATSNotifier publishes reservation events for downstream consumers.
type NATSNotifier struct {
	pub     publisher
	conn    *nats.Conn
	subject string
	now     func() time.Time
}

func DialNATSNotifier(url, subject string, log *logrus.Logger) (*NATSNotifier, error) {
	nc, err := nats.Connect(url,
		nats.Name("kadosh-rent"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("nats disconnected")
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("error connecting to nats at %s: %w", url, err)
	}
	log.WithField("subject", subject).Info("publishing reservation events to nats")
	return &NATSNotifier{pub: nc, conn: nc, subject: subject, now: time.Now}, nil
}

func (n *NATSNotifier) Notify(_ context.Context, notice ReservationNotice) (err error) {
	defer func() { metrics.RecordNotification("nats", err) }()

	req := notice.Request
	data, err := json.Marshal(ReservationEvent{
		RequestedAt: n.now().UTC(),
		VehicleID:   req.VehicleID,
		VehicleName: req.VehicleName,
		Name:        req.FullName(),
		Email:       req.Email,
		Phone:       req.Phone,
		PickupDate:  req.PickupDate,
		PickupTime:  req.PickupTime,
		ReturnDate:  req.ReturnDate,
		ReturnTime:  req.ReturnTime,
		Locale:      req.Locale,
	})
	if err != nil {
		return fmt.Errorf("error encoding reservation event: %w", err)
	}
	if err := n.pub.Publish(n.subject, data); err != nil {
		return fmt.Errorf("error publishing reservation event: %w", err)
	}
	return nil
}

func (n *NATSNotifier) Close() {
	if n.conn != nil {
		_ = n.conn.Drain()
	}
}
