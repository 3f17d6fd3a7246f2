// internal/transport/twilio.go
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
)

// TwilioSender sends SMS through the Messages endpoint and places voice
// calls through the Calls endpoint with an inline TwiML <Say>. When the
// credentials are absent every Send reports "twilio not configured" so the
// message falls into the outbox like any other failed delivery.
type TwilioSender struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
	HTTPClient *http.Client
}

func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	return &TwilioSender{
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromNumber: fromNumber,
		BaseURL:    "https://api.twilio.com",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the credentials needed for live sends are set.
func (t *TwilioSender) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

func (t *TwilioSender) Send(ctx context.Context, channel, recipient, message string) (bool, string) {
	if !t.Configured() {
		return false, "twilio not configured"
	}

	if channel == model.ChannelVoice {
		sid, err := t.post(ctx, "Calls.json", url.Values{
			"To":    {recipient},
			"From":  {t.FromNumber},
			"Twiml": {"<Response><Say>" + xmlEscape(message) + "</Say></Response>"},
		})
		if err != nil {
			return false, "twilio error: " + err.Error()
		}
		return true, "Call initiated: " + sid
	}

	sid, err := t.post(ctx, "Messages.json", url.Values{
		"To":   {recipient},
		"From": {t.FromNumber},
		"Body": {message},
	})
	if err != nil {
		return false, "twilio error: " + err.Error()
	}
	return true, "SMS sent: " + sid
}

func (t *TwilioSender) post(ctx context.Context, resource string, form url.Values) (string, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/%s", t.BaseURL, t.AccountSID, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Sid string `json:"sid"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	return out.Sid, nil
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
