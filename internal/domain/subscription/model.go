package subscription

import "time"

// Item is a line item belonging to exactly one subscription. It holds a
// non-owning reference to a shared price and never outlives its subscription.
type Item struct {
	ID       string `json:"id"`
	PriceID  string `json:"price_id"`
	Quantity int64  `json:"quantity"`
}

// Subscription is the central entity of the lifecycle engine. The ID mirrors
// the billing provider's subscription id once the provider has confirmed the
// subscription, which is what lets inbound invoice webhooks resolve the local
// record directly.
//
// ExpirationDate is always stored and compared in UTC so that the expiration
// sweep and the webhook reconciler operate in a single clock domain.
type Subscription struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customer_id"`
	ExpirationDate time.Time `json:"expiration_date"`
	Items          []*Item   `json:"items"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AddItem appends a line item to the subscription.
func (s *Subscription) AddItem(item *Item) {
	s.Items = append(s.Items, item)
}

// IsExpiredAt reports whether the subscription's billing period has lapsed
// relative to the given instant.
func (s *Subscription) IsExpiredAt(now time.Time) bool {
	return s.ExpirationDate.Before(now)
}
