package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webstore/checkout-orchestrator/internal/config"
	"github.com/webstore/checkout-orchestrator/internal/models"
	"github.com/webstore/checkout-orchestrator/internal/telemetry"
)

// ErrUnavailable covers any transport or protocol failure talking to the
// processor. A declined charge is NOT this error.
var ErrUnavailable = errors.New("payment gateway unavailable")

const gatewayName = "PayWay"

// PayWayClient charges single-use tokens against the PayWay REST API.
type PayWayClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	merchantID string
	currency   string
}

func NewPayWayClient(cfg config.PayWayConfig) *PayWayClient {
	return &PayWayClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		merchantID: cfg.MerchantID,
		currency:   cfg.Currency,
	}
}

// Name reports the gateway identifier recorded on orders.
func (c *PayWayClient) Name() string { return gatewayName }

// transactionID tolerates both numeric and string ids on the wire.
type transactionID string

func (t *transactionID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = transactionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = transactionID(n.String())
	return nil
}

type payWayResponse struct {
	Status        string        `json:"status"`
	TransactionID transactionID `json:"transactionId"`
	ResponseCode  string        `json:"responseCode"`
	ResponseText  string        `json:"responseText"`
}

// Charge posts one transaction for the given token and amount. The amount is
// formatted to exactly two decimal places on the wire. Each attempt carries a
// freshly generated customer reference.
func (c *PayWayClient) Charge(ctx context.Context, singleUseTokenID string, amount float64) (*models.ChargeOutcome, error) {
	form := url.Values{
		"singleUseTokenId": {singleUseTokenID},
		"customerNumber":   {uuid.NewString()},
		"transactionType":  {"payment"},
		"principalAmount":  {fmt.Sprintf("%.2f", amount)},
		"currency":         {c.currency},
		"merchantId":       {c.merchantID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: posting transaction: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var pw payWayResponse
	if err := json.NewDecoder(resp.Body).Decode(&pw); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	outcome := &models.ChargeOutcome{
		Approved:      !strings.EqualFold(pw.Status, "declined"),
		TransactionID: string(pw.TransactionID),
		ResponseCode:  pw.ResponseCode,
		ResponseText:  pw.ResponseText,
	}

	if !outcome.Approved {
		telemetry.Logger.Info("Declined response payload",
			zap.String("transaction_id", outcome.TransactionID),
			zap.String("response_code", outcome.ResponseCode),
			zap.String("response_text", outcome.ResponseText),
		)
	}

	return outcome, nil
}
