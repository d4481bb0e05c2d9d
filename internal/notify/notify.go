// Package notify sends the tenant owner a heads-up when a lead arrives.
// Best-effort: failures are logged, never surfaced to the visitor.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/ozanatli/microsite-backend/internal/config"
	"github.com/ozanatli/microsite-backend/internal/models"
)

type Notifier struct {
	client *twilio.RestClient
	from   string
}

// New returns nil when Twilio credentials are not configured; a nil Notifier
// is safe to call.
func New(cfg *config.Config) *Notifier {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
		return nil
	}
	return &Notifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioFromNumber,
	}
}

// NewLead texts the tenant's contact phone about a fresh inquiry.
func (n *Notifier) NewLead(tenant *models.Tenant, lead *models.Lead) {
	if n == nil || tenant.Contact.Phone == "" {
		return
	}

	body := fmt.Sprintf("New inquiry for %s from %s. Check your dashboard for details.",
		tenant.BusinessName, lead.Name)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(tenant.Contact.Phone)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		slog.Error("lead notification failed", "tenant_id", tenant.ID.String(), "error", err)
		return
	}
	if resp.Sid != nil {
		slog.Info("lead notification sent", "tenant_id", tenant.ID.String(), "sid", *resp.Sid)
	}
}
