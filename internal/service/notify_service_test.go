package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"kadoshrent/internal/config"
)

type fakeMailSender struct {
	status int
	err    error
	sent   []*mail.SGMailV3
}

func (f *fakeMailSender) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status, Body: "{}"}, nil
}

type fakeSMS struct {
	params []*openapi.CreateMessageParams
	err    error
}

func (f *fakeSMS) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

type fakePublisher struct {
	subject string
	data    []byte
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return nil
}

func testNotice() ReservationNotice {
	req := validRequest()
	return ReservationNotice{
		Subject:     "New Vehicle Reservation: Test Car - Ana Perez",
		HTMLBody:    "<p>hi</p>",
		PlainBody:   "hi",
		ReplyTo:     req.Email,
		ReplyToName: req.FullName(),
		Request:     req,
	}
}

func newSendGridForTest(sender mailSender) *SendGridNotifier {
	log, _ := test.NewNullLogger()
	return &SendGridNotifier{
		client:    sender,
		fromEmail: "noreply@kadosh.test",
		fromName:  "Kadosh RentCar",
		toEmail:   "ops@kadosh.test",
		toName:    "Operator",
		log:       log,
	}
}

func TestSendGridNotifierSendsToOperatorWithReplyTo(t *testing.T) {
	sender := &fakeMailSender{status: 202}
	err := newSendGridForTest(sender).Notify(context.Background(), testNotice())
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "New Vehicle Reservation: Test Car - Ana Perez", msg.Subject)
	require.NotNil(t, msg.ReplyTo)
	assert.Equal(t, "ana@example.com", msg.ReplyTo.Address)
	require.Len(t, msg.Personalizations, 1)
	assert.Equal(t, "ops@kadosh.test", msg.Personalizations[0].To[0].Address)
}

func TestSendGridNotifierFailures(t *testing.T) {
	err := newSendGridForTest(&fakeMailSender{status: 401}).Notify(context.Background(), testNotice())
	assert.ErrorContains(t, err, "401")

	err = newSendGridForTest(&fakeMailSender{err: errors.New("dial tcp")}).Notify(context.Background(), testNotice())
	assert.ErrorContains(t, err, "dial tcp")
}

func TestSimulatedNotifierLogsAndWaits(t *testing.T) {
	log, hook := test.NewNullLogger()
	n := &SimulatedNotifier{ToEmail: "ops@kadosh.test", Delay: 20 * time.Millisecond, Log: log}

	start := time.Now()
	require.NoError(t, n.Notify(context.Background(), testNotice()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Contains(t, entry.Message, "SIMULATING EMAIL SEND")
	assert.Equal(t, "ops@kadosh.test", entry.Data["to"])
}

func TestBreakerNotifierOpensAfterConsecutiveFailures(t *testing.T) {
	log, _ := test.NewNullLogger()
	calls := 0
	failing := NotifierFunc(func(context.Context, ReservationNotice) error {
		calls++
		return errors.New("provider down")
	})
	n := NewBreakerNotifier("test", failing, log)

	for i := 0; i < 5; i++ {
		assert.Error(t, n.Notify(context.Background(), testNotice()))
	}
	assert.Equal(t, gobreaker.StateOpen, n.State())

	err := n.Notify(context.Background(), testNotice())
	assert.ErrorIs(t, err, ErrNotifierUnavailable)
	assert.Equal(t, 5, calls)
}

func TestMultiNotifier(t *testing.T) {
	log, hook := test.NewNullLogger()
	var order []string
	record := func(name string, err error) Notifier {
		return NotifierFunc(func(context.Context, ReservationNotice) error {
			order = append(order, name)
			return err
		})
	}

	n := &MultiNotifier{
		Primary:     record("mail", nil),
		Secondaries: []Notifier{record("sms", errors.New("no signal")), record("nats", nil)},
		Log:         log,
	}
	require.NoError(t, n.Notify(context.Background(), testNotice()))
	assert.Equal(t, []string{"mail", "sms", "nats"}, order)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	order = nil
	n.Primary = record("mail", errors.New("boom"))
	assert.EqualError(t, n.Notify(context.Background(), testNotice()), "boom")
	assert.Equal(t, []string{"mail"}, order)
}

func TestTwilioNotifierTextsOperator(t *testing.T) {
	log, _ := test.NewNullLogger()
	sms := &fakeSMS{}
	n := &TwilioNotifier{api: sms, fromNumber: "+15550001111", toNumber: "+18095550199", log: log}

	require.NoError(t, n.Notify(context.Background(), testNotice()))
	require.Len(t, sms.params, 1)
	p := sms.params[0]
	assert.Equal(t, "+18095550199", *p.To)
	assert.Equal(t, "+15550001111", *p.From)
	assert.Contains(t, *p.Body, "Ana Perez")
	assert.Contains(t, *p.Body, "Test Car")

	sms.err = errors.New("invalid number")
	assert.ErrorContains(t, n.Notify(context.Background(), testNotice()), "invalid number")
}

func TestNATSNotifierPublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	at := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	n := &NATSNotifier{pub: pub, subject: "reservations.requested", now: func() time.Time { return at }}

	require.NoError(t, n.Notify(context.Background(), testNotice()))
	assert.Equal(t, "reservations.requested", pub.subject)

	var event ReservationEvent
	require.NoError(t, json.Unmarshal(pub.data, &event))
	assert.Equal(t, at, event.RequestedAt)
	assert.Equal(t, "Ana Perez", event.Name)
	assert.Equal(t, "2024-06-01", event.PickupDate)
	assert.Equal(t, "Test Car", event.VehicleName)
}

func TestNewNotifierFromConfig(t *testing.T) {
	log, _ := test.NewNullLogger()

	n, closer, err := NewNotifierFromConfig(config.Config{OperatorEmail: "ops@kadosh.test"}, log)
	require.NoError(t, err)
	defer closer()
	assert.IsType(t, &SimulatedNotifier{}, n)

	n, _, err = NewNotifierFromConfig(config.Config{SendGridAPIKey: "SG.key"}, log)
	require.NoError(t, err)
	assert.IsType(t, &BreakerNotifier{}, n)

	n, _, err = NewNotifierFromConfig(config.Config{
		TwilioAccountSID: "AC1",
		TwilioAuthToken:  "token",
		TwilioFromNumber: "+15550001111",
		OperatorPhone:    "+18095550199",
	}, log)
	require.NoError(t, err)
	multi, ok := n.(*MultiNotifier)
	require.True(t, ok)
	assert.IsType(t, &SimulatedNotifier{}, multi.Primary)
	require.Len(t, multi.Secondaries, 1)
	assert.IsType(t, &TwilioNotifier{}, multi.Secondaries[0])
}
