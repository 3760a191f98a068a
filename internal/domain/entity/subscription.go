// Package entity contains the core business objects of the project.
package entity

// Subscription represents the plan a user is on.
type Subscription string

const (
	// SubscriptionStarter is the plan every new account starts on.
	SubscriptionStarter Subscription = "starter"
	// SubscriptionPro is the mid-tier plan.
	SubscriptionPro Subscription = "pro"
	// SubscriptionBusiness is the top-tier plan.
	SubscriptionBusiness Subscription = "business"
)

// String returns the string representation of the Subscription.
func (s Subscription) String() string {
	return string(s)
}

// IsValid checks if the Subscription is a known plan.
func (s Subscription) IsValid() bool {
	switch s {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	default:
		return false
	}
}

// SubscriptionOrDefault parses s, falling back to the starter plan for empty input.
func SubscriptionOrDefault(s string) Subscription {
	if s == "" {
		return SubscriptionStarter
	}

	return Subscription(s)
}
