package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"kadoshrent/internal/config"
	"kadoshrent/internal/entities"
	"kadoshrent/internal/metrics"
)

// ReservationNotice is the operator notification for one reservation request.
type ReservationNotice struct {
	Subject     string
	HTMLBody    string
	PlainBody   string
	ReplyTo     string
	ReplyToName string
	Request     entities.ReservationRequest
}

// Notifier delivers a reservation notice. Implementations are chosen once at
// startup; the workflow does not know which one it talks to.
type Notifier interface {
	Notify(ctx context.Context, notice ReservationNotice) error
}

type NotifierFunc func(ctx context.Context, notice ReservationNotice) error

func (f NotifierFunc) Notify(ctx context.Context, notice ReservationNotice) error {
	return f(ctx, notice)
}

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier emails the operator, with reply-to set to the requester.
type SendGridNotifier struct {
	client    mailSender
	fromEmail string
	fromName  string
	toEmail   string
	toName    string
	log       *logrus.Logger
}

func NewSendGridNotifier(apiKey, fromEmail, fromName, toEmail, toName string, log *logrus.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		toName:    toName,
		log:       log,
	}
}

func (n *SendGridNotifier) Notify(ctx context.Context, notice ReservationNotice) (err error) {
	defer func() { metrics.RecordNotification("sendgrid", err) }()

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(n.toName, n.toEmail)
	message := mail.NewSingleEmail(from, notice.Subject, to, notice.PlainBody, notice.HTMLBody)
	message.SetReplyTo(mail.NewEmail(notice.ReplyToName, notice.ReplyTo))

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		n.log.WithError(err).WithField("to", n.toEmail).Error("sendgrid send failed")
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		n.log.WithFields(logrus.Fields{
			"to":     n.toEmail,
			"status": response.StatusCode,
			"body":   response.Body,
		}).Error("sendgrid returned a non-success status")
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	n.log.WithFields(logrus.Fields{
		"to":      n.toEmail,
		"subject": notice.Subject,
		"status":  response.StatusCode,
	}).Info("reservation email sent")
	return nil
}

// SimulatedNotifier stands in for the mail provider when no credentials are
// configured. It logs the message and waits Delay so callers see the same
// latency profile as a real send.
type SimulatedNotifier struct {
	ToEmail string
	Delay   time.Duration
	Log     *logrus.Logger
}

func (n *SimulatedNotifier) Notify(ctx context.Context, notice ReservationNotice) error {
	n.Log.WithFields(logrus.Fields{
		"to":      n.ToEmail,
		"replyTo": notice.ReplyTo,
		"subject": notice.Subject,
		"body":    notice.HTMLBody,
	}).Info("SIMULATING EMAIL SEND (SENDGRID_API_KEY not set)")

	if n.Delay > 0 {
		timer := time.NewTimer(n.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			metrics.RecordNotification("simulated", ctx.Err())
			return ctx.Err()
		case <-timer.C:
		}
	}
	metrics.RecordNotification("simulated", nil)
	return nil
}

// BreakerNotifier fails fast while the wrapped notifier keeps failing.
type BreakerNotifier struct {
	next Notifier
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerNotifier(name string, next Notifier, log *logrus.Logger) *BreakerNotifier {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).
				Warn("notifier circuit breaker changed state")
		},
	}
	return &BreakerNotifier{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (n *BreakerNotifier) Notify(ctx context.Context, notice ReservationNotice) error {
	_, err := n.cb.Execute(func() (interface{}, error) {
		return nil, n.next.Notify(ctx, notice)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("%w: %v", ErrNotifierUnavailable, err)
	}
	return err
}

func (n *BreakerNotifier) State() gobreaker.State { return n.cb.State() }

// MultiNotifier delivers to Primary and, once that succeeded, to each
// secondary. Only Primary decides the outcome; secondary failures are logged.
type MultiNotifier struct {
	Primary     Notifier
	Secondaries []Notifier
	Log         *logrus.Logger
}

func (n *MultiNotifier) Notify(ctx context.Context, notice ReservationNotice) error {
	if err := n.Primary.Notify(ctx, notice); err != nil {
		return err
	}
	for _, s := range n.Secondaries {
		if err := s.Notify(ctx, notice); err != nil {
			n.Log.WithError(err).WithField("notifier", fmt.Sprintf("%T", s)).
				Warn("secondary reservation notification failed")
		}
	}
	return nil
}

// NewNotifierFromConfig picks the notifier chain for this process. The
// returned closer releases connections held by secondary notifiers.
func NewNotifierFromConfig(cfg config.Config, log *logrus.Logger) (Notifier, func(), error) {
	var primary Notifier
	if cfg.MailEnabled() {
		sg := NewSendGridNotifier(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, cfg.OperatorEmail, cfg.OperatorName, log)
		primary = NewBreakerNotifier("sendgrid", sg, log)
		log.Info("reservation emails go through SendGrid")
	} else {
		primary = &SimulatedNotifier{ToEmail: cfg.OperatorEmail, Delay: cfg.SimulatedSendDelay, Log: log}
		log.Warn("SENDGRID_API_KEY not set, reservation emails are simulated")
	}

	multi := &MultiNotifier{Primary: primary, Log: log}
	closer := func() {}

	if cfg.SMSEnabled() {
		multi.Secondaries = append(multi.Secondaries,
			NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.OperatorPhone, log))
	}
	if cfg.NATSEnabled() {
		nn, err := DialNATSNotifier(cfg.NATSURL, cfg.NATSSubject, log)
		if err != nil {
			return nil, nil, err
		}
		multi.Secondaries = append(multi.Secondaries, nn)
		closer = nn.Close
	}

	if len(multi.Secondaries) == 0 {
		return primary, closer, nil
	}
	return multi, closer, nil
}
