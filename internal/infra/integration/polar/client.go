package polar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.polar.sh/v1"

type Client struct {
	baseURL        string
	apiKey         string
	organizationID string
	successURL     string
	cancelURL      string
	http           *http.Client
}

func NewClient(apiKey, organizationID, baseURL, successURL, cancelURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		organizationID: organizationID,
		successURL:     successURL,
		cancelURL:      cancelURL,
		http:           &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateCheckout cria o link de checkout e devolve o JSON do Polar sem alterar.
func (c *Client) CreateCheckout(ctx context.Context, productID, customerEmail string) (map[string]any, error) {
	url := fmt.Sprintf("%s/checkouts", c.baseURL)

	payload := createCheckoutRequest{
		OrganizationID: c.organizationID,
		ProductID:      productID,
		CustomerEmail:  customerEmail,
		SuccessURL:     c.successURL,
		CancelURL:      c.cancelURL,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request polar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ [POLAR] checkout recusado (status %d): %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("polar rejected checkout (status %d)", resp.StatusCode)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("erro decode polar: %w", err)
	}
	return out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
