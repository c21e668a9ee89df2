package models

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	Id                 uuid.UUID
	Name               string
	Plan               Plan
	StripeCustomer     *string
	StripeSubscription *string
	PlayAllowance      int
	Verified           bool
	Canceled           bool
	CreatedAt          time.Time
}

func (org Organization) HasSubscription() bool {
	return org.StripeSubscription != nil && *org.StripeSubscription != ""
}

type UpdateOrganizationInput struct {
	Id   uuid.UUID
	Name *string
}

// Fields synchronized from the billing provider, nil fields are left untouched
type UpdateOrganizationBillingInput struct {
	Id                      uuid.UUID
	Plan                    *Plan
	StripeCustomer          *string
	StripeSubscription      *string
	ClearStripeSubscription bool
	Canceled                *bool
}
