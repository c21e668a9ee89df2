package models

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

type Plan string

const (
	PlanFree   Plan = "free"
	PlanPro    Plan = "pro"
	PlanTeam   Plan = "team"
	PlanCustom Plan = "custom"
)

var plans = []Plan{PlanFree, PlanPro, PlanTeam, PlanCustom}

func PlanFrom(s string) (Plan, error) {
	for _, p := range plans {
		if string(p) == s {
			return p, nil
		}
	}
	return "", errors.Wrapf(BadParameterError, "unknown plan %q", s)
}

func (p Plan) String() string {
	return string(p)
}

// Only paid plans can be bought through the billing provider
func (p Plan) IsPurchasable() bool {
	return p == PlanPro || p == PlanTeam
}

type PlanPeriod string

const (
	PlanPeriodMonthly PlanPeriod = "monthly"
	PlanPeriodYearly  PlanPeriod = "yearly"
)

func PlanPeriodFrom(s string) (PlanPeriod, error) {
	switch PlanPeriod(s) {
	case PlanPeriodMonthly, PlanPeriodYearly:
		return PlanPeriod(s), nil
	}
	return "", errors.Wrapf(BadParameterError, "unknown plan period %q", s)
}

// Prices are registered on the billing provider with a "<plan>_<period>" lookup key
func PriceLookupKey(plan Plan, period PlanPeriod) string {
	return fmt.Sprintf("%s_%s", plan, period)
}

func PlanFromLookupKey(lookupKey string) (Plan, error) {
	planPart, _, found := strings.Cut(lookupKey, "_")
	if !found {
		return "", errors.Wrapf(BadParameterError, "malformed price lookup key %q", lookupKey)
	}
	return PlanFrom(planPart)
}

type UpgradeInput struct {
	Plan   Plan
	Period PlanPeriod
	Origin string
}

// Result of an upgrade request: either a checkout session url the user must
// visit, or an immediate subscription update
type UpgradeResult struct {
	CheckoutUrl *string
}

type Price struct {
	Id        string
	LookupKey string
}

type Subscription struct {
	Id         string
	CustomerId string
	Status     string
	ItemId     string
	LookupKey  string
	Metadata   map[string]string
}

type CheckoutSessionInput struct {
	OrganizationId string
	CustomerId     *string
	PriceId        string
	SuccessUrl     string
	CancelUrl      string
}

type SubscriptionUpdateInput struct {
	SubscriptionId string
	ItemId         string
	PriceId        string
	Plan           Plan
	Period         PlanPeriod
}

// Playground quota granted every day, per plan
type PlaygroundAllowances map[Plan]int

func DefaultPlaygroundAllowances() PlaygroundAllowances {
	return PlaygroundAllowances{
		PlanFree:   3,
		PlanPro:    1000,
		PlanTeam:   1000,
		PlanCustom: 10000,
	}
}

type BillingEventType string

const (
	BillingEventCheckoutCompleted   BillingEventType = "checkout.session.completed"
	BillingEventSubscriptionUpdated BillingEventType = "customer.subscription.updated"
	BillingEventSubscriptionDeleted BillingEventType = "customer.subscription.deleted"
)

// BillingEvent is the part of a billing provider webhook the backend acts upon
type BillingEvent struct {
	Id   string
	Type BillingEventType
	// Set on checkout completion, from the session client reference
	OrganizationId string
	CustomerId     string
	SubscriptionId string
	// Lookup key of the first subscription item price, set on subscription events
	LookupKey string
}
