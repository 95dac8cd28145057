package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	MetadataScheduleId = "schedule_id"
	MetadataHolderId   = "holder_id"
	MetadataPaymentId  = "payment_id"
)

type StripePaymentProvider struct {
	failureUrl    string
	successUrl    string
	webhookSecret string
}

func NewStripePaymentProvider(failureUrl, successUrl, webhookSecret string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl:    failureUrl,
		successUrl:    successUrl,
		webhookSecret: webhookSecret,
	}
}

func (s *StripePaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	req domain.CheckoutRequest) (*domain.CheckoutSession, error) {

	var lineItems []*stripe.CheckoutSessionLineItemParams

	for _, line := range req.Quote.Lines {
		priceCents := line.Price.Mul(decimal.NewFromInt(100)).IntPart()

		lineItem := &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(req.Payment.Currency),
				UnitAmount: stripe.Int64(priceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf(
						"%s - %s, seat %s",
						req.Schedule.Origin,
						req.Schedule.Destination,
						line.Seat.Label,
					)),
					Description: stripe.String(fmt.Sprintf(
						"Operator: %s • Departure: %s • Seat Type: %s",
						req.Schedule.OperatorName,
						req.Schedule.DepartureTime.Format("Jan 2, 2006 15:04"),
						line.Seat.Type,
					)),
				},
			},
			Quantity: stripe.Int64(1),
		}

		lineItems = append(lineItems, lineItem)
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successUrl),
		CancelURL:  stripe.String(s.failureUrl),
		Metadata: map[string]string{
			MetadataScheduleId: strconv.Itoa(req.Schedule.ID),
			MetadataHolderId:   req.Payment.HolderID,
			MetadataPaymentId:  strconv.Itoa(req.Payment.ID),
		},
		CustomerEmail:     stripe.String(req.Payment.Checkout.ContactEmail),
		ClientReferenceID: stripe.String(strconv.Itoa(req.Payment.ID)),
	}
	params.Context = ctx

	cs, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &domain.CheckoutSession{
		Reference: cs.ID,
		URL:       cs.URL,
		ExpiresAt: time.Unix(cs.ExpiresAt, 0),
	}, nil
}

func (s *StripePaymentProvider) ConfirmPayment(ctx context.Context, reference string) (domain.PaymentStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := session.Get(reference, params)
	if err != nil {
		return "", err
	}

	return checkoutStatus(cs), nil
}

func (s *StripePaymentProvider) ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		cs, err := decodeCheckoutSession(event)
		if err != nil {
			return nil, err
		}

		return &domain.PaymentEvent{
			Type:      domain.PaymentEventCompleted,
			Reference: cs.ID,
			Status:    checkoutStatus(cs),
		}, nil
	case stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		cs, err := decodeCheckoutSession(event)
		if err != nil {
			return nil, err
		}

		return &domain.PaymentEvent{
			Type:      domain.PaymentEventCompleted,
			Reference: cs.ID,
			Status:    domain.PaymentStatusFailed,
		}, nil
	case stripe.EventTypeCheckoutSessionExpired:
		cs, err := decodeCheckoutSession(event)
		if err != nil {
			return nil, err
		}

		return &domain.PaymentEvent{
			Type:      domain.PaymentEventExpired,
			Reference: cs.ID,
			Status:    domain.PaymentStatusCanceled,
		}, nil
	default:
		return &domain.PaymentEvent{Type: domain.PaymentEventIgnored}, nil
	}
}

func decodeCheckoutSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	var cs stripe.CheckoutSession

	err := json.Unmarshal(event.Data.Raw, &cs)
	if err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	return &cs, nil
}

func checkoutStatus(cs *stripe.CheckoutSession) domain.PaymentStatus {
	switch {
	case cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		return domain.PaymentStatusSucceeded
	case cs.Status == stripe.CheckoutSessionStatusExpired:
		return domain.PaymentStatusFailed
	default:
		return domain.PaymentStatusPending
	}
}
