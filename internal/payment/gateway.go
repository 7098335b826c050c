// Package payment talks to the external payment gateway. Requests carry a
// base64 JSON envelope authenticated by an X-VERIFY checksum of
// sha256(payload + path + key) + "###" + keyIndex.
package payment

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	payPath    = "/pg/v1/pay"
	statusPath = "/pg/v1/status"
	keyIndex   = 1
)

type Gateway struct {
	MerchantID  string
	MerchantKey string
	BaseURL     string
	StatusURL   string
	Client      *http.Client
}

func NewGateway(merchantID, merchantKey, baseURL, statusURL string) *Gateway {
	return &Gateway{
		MerchantID:  merchantID,
		MerchantKey: merchantKey,
		BaseURL:     baseURL,
		StatusURL:   statusURL,
		Client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Checksum computes the X-VERIFY header value for data sent to path.
func (g *Gateway) Checksum(data, path string) string {
	sum := sha256.Sum256([]byte(data + path + g.MerchantKey))
	return hex.EncodeToString(sum[:]) + "###" + strconv.Itoa(keyIndex)
}

type PayRequest struct {
	Name         string
	MobileNumber string
	Amount       float64
	OrderID      string
	RedirectURL  string
}

type payPayload struct {
	MerchantID            string            `json:"merchantId"`
	MerchantUserID        string            `json:"merchantUserId"`
	MobileNumber          string            `json:"mobileNumber"`
	Amount                int64             `json:"amount"`
	MerchantTransactionID string            `json:"merchantTransactionId"`
	RedirectURL           string            `json:"redirectUrl"`
	RedirectMode          string            `json:"redirectMode"`
	PaymentInstrument     paymentInstrument `json:"paymentInstrument"`
}

type paymentInstrument struct {
	Type string `json:"type"`
}

type payResponse struct {
	Data struct {
		InstrumentResponse struct {
			RedirectInfo struct {
				URL string `json:"url"`
			} `json:"redirectInfo"`
		} `json:"instrumentResponse"`
	} `json:"data"`
}

// Pay initiates an order at the gateway and returns the page the caller
// should redirect the payer to. Amounts are rupees; the gateway wants paise.
func (g *Gateway) Pay(ctx context.Context, req PayRequest) (string, error) {
	payload := payPayload{
		MerchantID:            g.MerchantID,
		MerchantUserID:        req.Name,
		MobileNumber:          req.MobileNumber,
		Amount:                int64(req.Amount * 100),
		MerchantTransactionID: req.OrderID,
		RedirectURL:           req.RedirectURL,
		RedirectMode:          "POST",
		PaymentInstrument:     paymentInstrument{Type: "PAY_PAGE"},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payment payload: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	body, err := json.Marshal(map[string]string{"request": encoded})
	if err != nil {
		return "", fmt.Errorf("marshal request envelope: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-VERIFY", g.Checksum(encoded, payPath))

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gateway pay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway pay request: status %d", resp.StatusCode)
	}

	var parsed payResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gateway pay response: %w", err)
	}
	if parsed.Data.InstrumentResponse.RedirectInfo.URL == "" {
		return "", fmt.Errorf("gateway pay response missing redirect url")
	}
	return parsed.Data.InstrumentResponse.RedirectInfo.URL, nil
}

type statusResponse struct {
	Success bool `json:"success"`
	Data    struct {
		TransactionID string `json:"transactionId"`
	} `json:"data"`
}

// Status queries the transaction outcome for an order.
func (g *Gateway) Status(ctx context.Context, merchantTransactionID string) (bool, string, error) {
	path := fmt.Sprintf("%s/%s/%s", statusPath, g.MerchantID, merchantTransactionID)
	url := fmt.Sprintf("%s/%s/%s", g.StatusURL, g.MerchantID, merchantTransactionID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, "", err
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-VERIFY", g.Checksum("", path))
	httpReq.Header.Set("X-MERCHANT-ID", g.MerchantID)

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return false, "", fmt.Errorf("gateway status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "", fmt.Errorf("gateway status request: status %d", resp.StatusCode)
	}

	var parsed statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, "", fmt.Errorf("decode gateway status response: %w", err)
	}
	return parsed.Success, parsed.Data.TransactionID, nil
}
