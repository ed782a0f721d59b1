package entities

// CheckoutSessionRequest describes a hosted checkout session to be created
// with the payment provider. Metadata is echoed back by the provider on
// retrieval and carries the references needed to materialize the payment.
type CheckoutSessionRequest struct {
	Description string            `json:"description"`
	UnitPrice   Money             `json:"unit_price"`
	Quantity    int64             `json:"quantity"`
	Metadata    map[string]string `json:"metadata"`
}

// CheckoutSession is the provider's view of a session. TransactionID is only
// set once the session has been paid.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Paid          bool              `json:"paid"`
	TransactionID string            `json:"transaction_id"`
	Metadata      map[string]string `json:"metadata"`
}
