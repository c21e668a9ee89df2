package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type DBOrganization struct {
	Id                 uuid.UUID `db:"id"`
	Name               string    `db:"name"`
	Plan               string    `db:"plan"`
	StripeCustomer     *string   `db:"stripe_customer"`
	StripeSubscription *string   `db:"stripe_subscription"`
	PlayAllowance      int       `db:"play_allowance"`
	Verified           bool      `db:"verified"`
	Canceled           bool      `db:"canceled"`
	CreatedAt          time.Time `db:"created_at"`
}

const TABLE_ORGANIZATION = "org"

var ColumnsSelectOrganization = utils.ColumnList[DBOrganization]()

func AdaptOrganization(db DBOrganization) (models.Organization, error) {
	plan, err := models.PlanFrom(db.Plan)
	if err != nil {
		return models.Organization{}, err
	}

	return models.Organization{
		Id:                 db.Id,
		Name:               db.Name,
		Plan:               plan,
		StripeCustomer:     db.StripeCustomer,
		StripeSubscription: db.StripeSubscription,
		PlayAllowance:      db.PlayAllowance,
		Verified:           db.Verified,
		Canceled:           db.Canceled,
		CreatedAt:          db.CreatedAt,
	}, nil
}
