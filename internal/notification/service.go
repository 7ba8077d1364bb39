package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	orderdomain "github.com/KumarShresth7/EmailAutomation/internal/order/domain"
	"github.com/KumarShresth7/EmailAutomation/pkg/fcm"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// EmailSender sends one plain-text email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// StaffTopic is the FCM topic staff dashboards subscribe to.
const StaffTopic = "orders-staff"

// Service routes outcomes through a Pub/Sub topic and delivers them
// from a subscriber worker: customer emails through the mail sender,
// staff push alerts through FCM. Without a Pub/Sub client it delivers
// synchronously in-process; either way the pipeline never waits on or
// learns about delivery failures.
type Service struct {
	pubsubClient *pubsub.Client
	topicName    string
	subName      string
	mailer       EmailSender
	fcmClient    *fcm.Client
}

// NewService creates the notification service. projectID may be empty,
// in which case outcomes are delivered inline.
func NewService(projectID, topicName, credentialsFile string, mailer EmailSender, fcmClient *fcm.Client) (*Service, error) {
	s := &Service{
		topicName: topicName,
		subName:   topicName + "-sub", // Convention: topic-sub
		mailer:    mailer,
		fcmClient: fcmClient,
	}

	if projectID != "" {
		var opts []option.ClientOption
		if credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
		client, err := pubsub.NewClient(context.Background(), projectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create pubsub client: %w", err)
		}
		s.pubsubClient = client
	}

	return s, nil
}

// Start runs the subscriber loop until the context is cancelled. Only
// meaningful when a Pub/Sub client is configured.
func (s *Service) Start(ctx context.Context) {
	if s.pubsubClient == nil {
		return
	}
	log.Printf("[Notify] Starting delivery worker on topic %s, subscription %s", s.topicName, s.subName)

	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Printf("[Notify] Error checking subscription existence: %v", err)
		return
	}
	if !exists {
		topic := s.pubsubClient.Topic(s.topicName)
		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			log.Printf("[Notify] Failed to create subscription: %v", err)
			return
		}
		log.Printf("[Notify] Created subscription: %s", s.subName)
	}

	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		var outcome Outcome
		if err := json.Unmarshal(msg.Data, &outcome); err != nil {
			log.Printf("[Notify] Dropping malformed message: %v", err)
			msg.Ack()
			return
		}
		s.deliver(ctx, outcome)
		msg.Ack()
	})
	if err != nil {
		log.Printf("[Notify] Error receiving messages: %v", err)
	}
}

// dispatch publishes the outcome, or delivers inline when no bus is
// configured.
func (s *Service) dispatch(ctx context.Context, outcome Outcome) {
	if s.pubsubClient == nil {
		s.deliver(ctx, outcome)
		return
	}
	data, err := json.Marshal(outcome)
	if err != nil {
		log.Printf("[Notify] Failed to encode outcome: %v", err)
		return
	}
	result := s.pubsubClient.Topic(s.topicName).Publish(ctx, &pubsub.Message{Data: data})
	go func() {
		if _, err := result.Get(context.Background()); err != nil {
			log.Printf("[Notify] Failed to publish %s for %s: %v", outcome.Kind, outcome.Email, err)
		}
	}()
}

// deliver sends the customer email and, for accepted orders, a staff
// push alert.
func (s *Service) deliver(ctx context.Context, outcome Outcome) {
	subject, body := compose(outcome)
	if subject == "" {
		log.Printf("[Notify] Unknown outcome kind %q for %s", outcome.Kind, outcome.Email)
		return
	}

	if s.mailer != nil {
		if err := s.mailer.Send(ctx, outcome.Email, subject, body); err != nil {
			log.Printf("[Notify] Failed to send %s email to %s: %v", outcome.Kind, outcome.Email, err)
		} else {
			log.Printf("[Notify] Sent %s email to %s", outcome.Kind, outcome.Email)
		}
	} else {
		log.Printf("[Notify] Mailer not configured, skipping %s email to %s", outcome.Kind, outcome.Email)
	}

	if s.fcmClient != nil && outcome.Kind == KindAcknowledgment && outcome.Order != nil {
		alert := fcm.NotificationData{
			Title: "New order received",
			Body:  fmt.Sprintf("%s placed an order with %d items", outcome.Email, len(outcome.Order.Products)),
			Data: map[string]string{
				"type":     "new_order",
				"order_id": outcome.Order.ID,
			},
		}
		if err := s.fcmClient.SendToTopic(ctx, StaffTopic, alert); err != nil {
			log.Printf("[Notify] Failed to push staff alert: %v", err)
		}
	}
}

// Dispatcher implementation

func (s *Service) SendAcknowledgment(ctx context.Context, order *orderdomain.Order) {
	s.dispatch(ctx, Outcome{Kind: KindAcknowledgment, Email: order.Email, Order: order})
}

func (s *Service) SendOrderIssue(ctx context.Context, email string, reasons []string) {
	s.dispatch(ctx, Outcome{Kind: KindIssue, Email: email, Reasons: reasons})
}

func (s *Service) SendUpdateConfirmation(ctx context.Context, email string, order *orderdomain.Order) {
	s.dispatch(ctx, Outcome{Kind: KindUpdateConfirmation, Email: email, Order: order})
}

func (s *Service) SendInvoice(ctx context.Context, order *orderdomain.Order) {
	s.dispatch(ctx, Outcome{Kind: KindInvoice, Email: order.Email, Order: order})
}
