package gateway

// Intent statuses as the processor reports them. Only the subset the
// storefront branches on is named; anything else means "still in flight".
type IntentStatus string

const (
	IntentStatusSucceeded       IntentStatus = "succeeded"
	IntentStatusCanceled        IntentStatus = "canceled"
	IntentStatusProcessing      IntentStatus = "processing"
	IntentStatusRequiresPayment IntentStatus = "requires_payment_method"
)

type IntentRequest struct {
	AmountCents   int64
	Currency      string
	OrderID       string
	CustomerEmail string
	CustomerName  string
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	AmountCents  int64
}

type WebhookEventType string

const (
	WebhookPaymentSucceeded WebhookEventType = "payment_intent.succeeded"
	WebhookPaymentFailed    WebhookEventType = "payment_intent.payment_failed"
	// WebhookIgnored covers event kinds the storefront acknowledges but
	// does not act on.
	WebhookIgnored WebhookEventType = "ignored"
)

// WebhookEvent is a processor event after signature verification, reduced
// to the fields the reconciler needs. OrderID comes from the intent's
// correlation metadata and may be empty for events created out of band.
type WebhookEvent struct {
	ID          string
	Type        WebhookEventType
	IntentID    string
	OrderID     string
	AmountCents int64
}

// PaymentGateway is the processor-side surface: create an intent for a
// checkout, or ask what became of one.
type PaymentGateway interface {
	CreateIntent(req IntentRequest) (*Intent, error)
	GetIntent(id string) (*Intent, error)
}

// WebhookVerifier authenticates a raw webhook delivery. An error means the
// signature did not check out and nothing may be processed.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, signature string) (*WebhookEvent, error)
}
