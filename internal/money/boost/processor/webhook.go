package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"boost-server/internal/email"
	"boost-server/internal/money/budget"
	"boost-server/internal/observability"
	"boost-server/internal/store"

	"github.com/stripe/stripe-go/v79"
)

// HandleGatewayEvent routes a verified gateway event to the payment outcome
// it reports. Unrecognized event types are acknowledged without action so the
// gateway does not redeliver them.
func (p BoostProcessor) HandleGatewayEvent(ctx context.Context, event stripe.Event) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "gateway_event_type", Value: string(event.Type)})

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		session, err := parseSessionEvent(event)
		if err != nil {
			return err
		}
		// A completed session with an unpaid status means a delayed payment
		// method; the async succeeded/failed event will carry the outcome.
		if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			p.logger.Info(ctx, "checkout completed awaiting asynchronous payment")
			return nil
		}
		return p.OnCheckoutSucceeded(ctx, session.ID, paymentReference(session), payerEmail(session), time.Now())

	case stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		session, err := parseSessionEvent(event)
		if err != nil {
			return err
		}
		return p.OnCheckoutSucceeded(ctx, session.ID, paymentReference(session), payerEmail(session), time.Now())

	case stripe.EventTypeCheckoutSessionAsyncPaymentFailed, stripe.EventTypeCheckoutSessionExpired:
		session, err := parseSessionEvent(event)
		if err != nil {
			return err
		}
		return p.OnCheckoutFailed(ctx, session.ID, payerEmail(session))

	default:
		p.logger.Info(ctx, "ignoring unhandled gateway event type")
		return nil
	}
}

// OnCheckoutSucceeded applies the paid outcome for a checkout session. Safe
// under at-least-once delivery: the first call wins, every repeat is a no-op
// that still reports success.
func (p BoostProcessor) OnCheckoutSucceeded(ctx context.Context, sessionID, paymentRef, payerEmailAddr string, now time.Time) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "checkout_session_id", Value: sessionID})

	campaign, err := p.store.GetBoostCampaignByCheckoutSessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownCheckoutSession
		}
		return fmt.Errorf("failed to resolve checkout session: %w", err)
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "boost_id", Value: campaign.ID.String()})

	if campaign.PaymentStatus == store.PaymentStatusPaid {
		p.logger.Info(ctx, "duplicate success delivery ignored")
		return nil
	}

	start, end := budget.Window(now, campaign.DurationDays)
	params := store.ApplyBoostOutcomeParams{
		Status:        store.BoostStatusActive,
		PaymentStatus: store.PaymentStatusPaid,
		PaidAt:        &now,
		StartDate:     &start,
		EndDate:       &end,
	}
	if paymentRef != "" {
		params.PaymentReference = &paymentRef
	}

	updated, err := p.store.ApplyBoostPaymentOutcome(ctx, campaign.ID, params)
	if err != nil {
		if errors.Is(err, store.ErrOutcomeAlreadyApplied) {
			return p.acknowledgeSupersededDelivery(ctx, "success")
		}
		return fmt.Errorf("failed to apply paid outcome: %w", err)
	}

	p.logger.Info(ctx, "boost activated")
	p.sendReceipt(ctx, updated, payerEmailAddr)
	return nil
}

// OnCheckoutFailed applies the failed outcome for a checkout session. A
// failure arriving after the payment was confirmed never downgrades the paid
// campaign; it is logged and acknowledged.
func (p BoostProcessor) OnCheckoutFailed(ctx context.Context, sessionID, payerEmailAddr string) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "checkout_session_id", Value: sessionID})

	campaign, err := p.store.GetBoostCampaignByCheckoutSessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownCheckoutSession
		}
		return fmt.Errorf("failed to resolve checkout session: %w", err)
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "boost_id", Value: campaign.ID.String()})

	if campaign.PaymentStatus == store.PaymentStatusPaid {
		p.logger.Warn(ctx, "failure delivery for a paid boost ignored")
		return nil
	}
	if campaign.PaymentStatus == store.PaymentStatusFailed {
		p.logger.Info(ctx, "duplicate failure delivery ignored")
		return nil
	}

	updated, err := p.store.ApplyBoostPaymentOutcome(ctx, campaign.ID, store.ApplyBoostOutcomeParams{
		Status:        store.BoostStatusCancelled,
		PaymentStatus: store.PaymentStatusFailed,
	})
	if err != nil {
		if errors.Is(err, store.ErrOutcomeAlreadyApplied) {
			return p.acknowledgeSupersededDelivery(ctx, "failure")
		}
		return fmt.Errorf("failed to apply failed outcome: %w", err)
	}

	p.logger.Info(ctx, "boost cancelled after failed payment")
	p.sendFailureNotice(ctx, updated, payerEmailAddr)
	return nil
}

// acknowledgeSupersededDelivery handles the race where another delivery won
// the conditional transition between our read and our write. The outcome on
// record stands; the delivery is acknowledged either way.
func (p BoostProcessor) acknowledgeSupersededDelivery(ctx context.Context, delivery string) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "superseded_delivery", Value: delivery})
	p.logger.Warn(ctx, "payment outcome already applied, delivery acknowledged without effect")
	return nil
}

func (p BoostProcessor) sendReceipt(ctx context.Context, campaign store.BoostCampaign, to string) {
	if to == "" {
		return
	}
	data := email.TemplateData{
		BoostName:     campaign.Name,
		AmountUSD:     budget.FormatUSD(campaign.TotalBudgetCents),
		DurationDays:  campaign.DurationDays,
		DailyUSD:      budget.FormatUSD(campaign.DailyBudgetCents),
		DashboardLink: fmt.Sprintf("%s/boosts/%s", p.webAppURI, campaign.ID),
	}
	if campaign.StartDate != nil {
		data.StartDate = campaign.StartDate.Format("January 2, 2006")
	}
	if campaign.EndDate != nil {
		data.EndDate = campaign.EndDate.Format("January 2, 2006")
	}
	if err := p.emailer.SendBoostReceipt(ctx, to, data); err != nil {
		p.logger.InfoWithError(ctx, "could not send boost receipt", err)
	}
}

func (p BoostProcessor) sendFailureNotice(ctx context.Context, campaign store.BoostCampaign, to string) {
	if to == "" {
		return
	}
	data := email.TemplateData{
		BoostName:     campaign.Name,
		DashboardLink: fmt.Sprintf("%s/boosts", p.webAppURI),
	}
	if err := p.emailer.SendBoostPaymentFailed(ctx, to, data); err != nil {
		p.logger.InfoWithError(ctx, "could not send payment failure notice", err)
	}
}

// parseSessionEvent decodes the event's session object. A payload that cannot
// be decoded is permanently broken: redelivery would fail the same way every
// time, so the error maps to a 4xx, not a retryable 5xx.
func parseSessionEvent(event stripe.Event) (stripe.CheckoutSession, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return stripe.CheckoutSession{}, fmt.Errorf("%w: %v", ErrMalformedGatewayEvent, err)
	}
	return session, nil
}

func paymentReference(session stripe.CheckoutSession) string {
	if session.PaymentIntent != nil {
		return session.PaymentIntent.ID
	}
	return ""
}

func payerEmail(session stripe.CheckoutSession) string {
	if session.CustomerDetails != nil {
		return session.CustomerDetails.Email
	}
	return ""
}
