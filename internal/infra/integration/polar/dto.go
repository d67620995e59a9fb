package polar

type createCheckoutRequest struct {
	OrganizationID string `json:"organization_id,omitempty"`
	ProductID      string `json:"product_id"`
	CustomerEmail  string `json:"customer_email"`
	SuccessURL     string `json:"success_url,omitempty"`
	CancelURL      string `json:"cancel_url,omitempty"`
}
