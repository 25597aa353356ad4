package processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"boost-server/internal/clients/stripecheckout"
	"boost-server/internal/money/budget"
	"boost-server/internal/observability"
	"boost-server/internal/store"

	"github.com/google/uuid"
)

// CheckoutSession is what the owner's client needs to continue payment.
type CheckoutSession struct {
	BoostID     uuid.UUID `json:"boost_id"`
	RedirectURL string    `json:"redirect_url"`
}

// CheckoutVerification reports where a checkout landed from the campaign's
// point of view. A still-pending payment is a legitimate answer here: the
// redirect can arrive before the gateway's confirmation does.
type CheckoutVerification struct {
	BoostID       uuid.UUID `json:"boost_id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
}

// CheckoutRedirects are the caller-supplied landing pages for the hosted
// checkout flow. Empty fields fall back to the web app's default pages.
type CheckoutRedirects struct {
	SuccessURL string
	CancelURL  string
}

// InitiateCheckout opens a hosted checkout session for a campaign that is
// still awaiting payment. Re-initiation while pending is allowed and replaces
// the stored session key; the superseded gateway session is expired best
// effort so it can no longer be paid.
func (p BoostProcessor) InitiateCheckout(ctx context.Context, ownerID, campaignID uuid.UUID, redirects CheckoutRedirects) (CheckoutSession, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "boost_id", Value: campaignID.String()})

	campaign, err := p.GetBoostCampaign(ctx, ownerID, campaignID)
	if err != nil {
		return CheckoutSession{}, err
	}

	if campaign.Status != store.BoostStatusPendingPayment || campaign.PaymentStatus != store.PaymentStatusPending {
		return CheckoutSession{}, ErrBoostNotPending
	}

	successURL, cancelURL, err := p.resolveRedirects(campaign.ID, redirects)
	if err != nil {
		return CheckoutSession{}, err
	}

	sessionParams := stripecheckout.CreateSessionParams{
		AmountCents: campaign.TotalBudgetCents,
		ProductName: fmt.Sprintf("Boost: %s", campaign.Name),
		Description: fmt.Sprintf("%d-day boost at %s/day", campaign.DurationDays, budget.FormatUSD(campaign.DailyBudgetCents)),
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
		Metadata: map[string]string{
			"boost_id": campaign.ID.String(),
			"owner_id": campaign.OwnerID.String(),
		},
	}
	if preview, ok := p.previews.Preview(ctx, campaign.AssetType, campaign.AssetID); ok && preview.ThumbnailURL != "" {
		sessionParams.ImageURL = &preview.ThumbnailURL
	}

	if campaign.CheckoutSessionID != nil {
		if err := p.gateway.ExpireCheckoutSession(ctx, *campaign.CheckoutSessionID); err != nil {
			p.logger.InfoWithError(ctx, "could not expire superseded checkout session", err)
		}
	}

	session, err := p.gateway.CreateCheckoutSession(ctx, sessionParams)
	if err != nil {
		p.logger.Error(ctx, "gateway rejected checkout session", err)
		return CheckoutSession{}, ErrGatewayUnavailable
	}

	if err := p.store.SetBoostCampaignCheckoutSession(ctx, campaign.ID, session.ID); err != nil {
		p.logger.Error(ctx, "failed to record checkout session id", err)
		return CheckoutSession{}, fmt.Errorf("failed to record checkout session id: %w", err)
	}

	p.logger.Info(ctx, "checkout session created")
	return CheckoutSession{BoostID: campaign.ID, RedirectURL: session.RedirectURL}, nil
}

// resolveRedirects fills in the default landing pages for any redirect the
// caller left empty. Caller-supplied pages must sit on the web app's origin,
// otherwise the hosted checkout would bounce payers to an arbitrary site.
func (p BoostProcessor) resolveRedirects(campaignID uuid.UUID, redirects CheckoutRedirects) (successURL, cancelURL string, err error) {
	successURL = redirects.SuccessURL
	if successURL == "" {
		successURL = fmt.Sprintf("%s/boosts/%s/checkout/success?session_id={CHECKOUT_SESSION_ID}", p.webAppURI, campaignID)
	} else if !p.onWebAppOrigin(successURL) {
		return "", "", ErrInvalidRedirect
	}

	cancelURL = redirects.CancelURL
	if cancelURL == "" {
		cancelURL = fmt.Sprintf("%s/boosts/%s/checkout/cancelled", p.webAppURI, campaignID)
	} else if !p.onWebAppOrigin(cancelURL) {
		return "", "", ErrInvalidRedirect
	}

	return successURL, cancelURL, nil
}

func (p BoostProcessor) onWebAppOrigin(raw string) bool {
	app, err := url.Parse(p.webAppURI)
	if err != nil {
		return false
	}
	target, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return target.Scheme == app.Scheme && target.Host == app.Host
}

// VerifyCheckout resolves a gateway session id back to its campaign for the
// post-redirect landing page.
func (p BoostProcessor) VerifyCheckout(ctx context.Context, ownerID uuid.UUID, sessionID string) (CheckoutVerification, error) {
	campaign, err := p.store.GetBoostCampaignByCheckoutSessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CheckoutVerification{}, ErrUnknownCheckoutSession
		}
		return CheckoutVerification{}, fmt.Errorf("failed to verify checkout session: %w", err)
	}
	if campaign.OwnerID != ownerID {
		return CheckoutVerification{}, ErrUnauthorized
	}

	return CheckoutVerification{
		BoostID:       campaign.ID,
		Name:          campaign.Name,
		Status:        campaign.Status,
		PaymentStatus: campaign.PaymentStatus,
	}, nil
}
