package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/webstore/checkout-orchestrator/internal/config"
)

func newTestClient(endpoint string) *PayWayClient {
	return NewPayWayClient(config.PayWayConfig{
		Endpoint:   endpoint,
		APIKey:     "test-api-key",
		MerchantID: "TEST",
		Currency:   "aud",
		Timeout:    2 * time.Second,
	})
}

func TestPayWayClient_Charge_Approved(t *testing.T) {
	var gotForm map[string]string
	var gotUser string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"singleUseTokenId": r.PostFormValue("singleUseTokenId"),
			"customerNumber":   r.PostFormValue("customerNumber"),
			"transactionType":  r.PostFormValue("transactionType"),
			"principalAmount":  r.PostFormValue("principalAmount"),
			"currency":         r.PostFormValue("currency"),
			"merchantId":       r.PostFormValue("merchantId"),
		}
		gotUser, _, _ = r.BasicAuth()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"approved","transactionId":"TXN1","responseCode":"00","responseText":"Approved"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	outcome, err := client.Charge(context.Background(), "tok_123", 49.95)

	require.NoError(t, err)
	require.True(t, outcome.Approved)
	require.Equal(t, "TXN1", outcome.TransactionID)
	require.Equal(t, "00", outcome.ResponseCode)
	require.Equal(t, "Approved", outcome.ResponseText)

	require.Equal(t, "tok_123", gotForm["singleUseTokenId"])
	require.Equal(t, "payment", gotForm["transactionType"])
	require.Equal(t, "49.95", gotForm["principalAmount"])
	require.Equal(t, "aud", gotForm["currency"])
	require.Equal(t, "TEST", gotForm["merchantId"])
	require.NotEmpty(t, gotForm["customerNumber"])
	require.Equal(t, "test-api-key", gotUser)
}

func TestPayWayClient_Charge_AmountFormatting(t *testing.T) {
	var gotAmount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAmount = r.PostFormValue("principalAmount")
		w.Write([]byte(`{"status":"approved","transactionId":1,"responseCode":"00","responseText":"Approved"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Charge(context.Background(), "tok_123", 100)

	require.NoError(t, err)
	require.Equal(t, "100.00", gotAmount)
}

func TestPayWayClient_Charge_FreshCustomerNumberPerAttempt(t *testing.T) {
	var numbers []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		numbers = append(numbers, r.PostFormValue("customerNumber"))
		w.Write([]byte(`{"status":"approved","transactionId":"TXN","responseCode":"00","responseText":"Approved"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	for i := 0; i < 2; i++ {
		_, err := client.Charge(context.Background(), "tok_123", 10)
		require.NoError(t, err)
	}

	require.Len(t, numbers, 2)
	require.NotEqual(t, numbers[0], numbers[1])
}

func TestPayWayClient_Charge_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"declined","transactionId":"TXN2","responseCode":"51","responseText":"Insufficient funds"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	outcome, err := client.Charge(context.Background(), "tok_456", 49.95)

	// A decline is a successful gateway interaction, not an error.
	require.NoError(t, err)
	require.False(t, outcome.Approved)
	require.Equal(t, "TXN2", outcome.TransactionID)
	require.Equal(t, "51", outcome.ResponseCode)
	require.Equal(t, "Insufficient funds", outcome.ResponseText)
}

func TestPayWayClient_Charge_NumericTransactionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"approved","transactionId":123456,"responseCode":"00","responseText":"Approved"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	outcome, err := client.Charge(context.Background(), "tok_123", 10)

	require.NoError(t, err)
	require.Equal(t, "123456", outcome.TransactionID)
}

func TestPayWayClient_Charge_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	outcome, err := client.Charge(context.Background(), "tok_123", 10)

	require.Nil(t, outcome)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestPayWayClient_Charge_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	outcome, err := client.Charge(context.Background(), "tok_123", 10)

	require.Nil(t, outcome)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestPayWayClient_Charge_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	outcome, err := client.Charge(context.Background(), "tok_123", 10)

	require.Nil(t, outcome)
	require.ErrorIs(t, err, ErrUnavailable)
}
