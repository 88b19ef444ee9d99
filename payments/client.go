package payments

// CheckoutParams describes a listing-fee checkout session to be created.
type CheckoutParams struct {
	Tier          string
	Amount        int64
	CustomerEmail string
	ProductName   string
	Description   string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession is the subset of the provider's session the API exposes.
type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookEvent is a verified event received from the payment provider.
type WebhookEvent struct {
	Type      string
	SessionID string
}

// Client abstracts the payment provider for dependency injection and testing.
type Client interface {
	CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error)
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
