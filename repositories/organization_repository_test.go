package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories/dbmodels"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func TestGetOrganizationById(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := DbRepository{}
	orgId := uuid.New()
	createdAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, name, plan, stripe_customer, stripe_subscription, play_allowance, verified, canceled, created_at FROM org WHERE id = \$1`).
		WithArgs(orgId.String()).
		WillReturnRows(pgxmock.NewRows(dbmodels.ColumnsSelectOrganization).
			AddRow(orgId, "Acme", "pro", utils.Ptr("cus_1"), utils.Ptr("sub_1"), 998, true, false, createdAt))

	org, err := repo.GetOrganizationById(context.Background(), mock, orgId)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, models.Organization{
		Id:                 orgId,
		Name:               "Acme",
		Plan:               models.PlanPro,
		StripeCustomer:     utils.Ptr("cus_1"),
		StripeSubscription: utils.Ptr("sub_1"),
		PlayAllowance:      998,
		Verified:           true,
		CreatedAt:          createdAt,
	}, org)
	assert.True(t, org.HasSubscription())
}

func TestGetOrganizationById_notFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := DbRepository{}
	orgId := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM org WHERE id = \$1`).
		WithArgs(orgId.String()).
		WillReturnRows(pgxmock.NewRows(dbmodels.ColumnsSelectOrganization))

	_, err = repo.GetOrganizationById(context.Background(), mock, orgId)
	assert.ErrorIs(t, err, models.ErrOrgNotFound)
	assert.True(t, errors.Is(err, models.NotFoundError))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrganizationBilling(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := DbRepository{}
	orgId := uuid.New()

	mock.ExpectExec(`UPDATE org SET plan = \$1, stripe_subscription = \$2, canceled = \$3 WHERE id = \$4`).
		WithArgs("free", nil, true, orgId.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateOrganizationBilling(context.Background(), mock, models.UpdateOrganizationBillingInput{
		Id:                      orgId,
		Plan:                    utils.Ptr(models.PlanFree),
		ClearStripeSubscription: true,
		Canceled:                utils.Ptr(true),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrganizationBilling_noop(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := DbRepository{}

	err = repo.UpdateOrganizationBilling(context.Background(), mock, models.UpdateOrganizationBillingInput{Id: uuid.New()})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementPlayAllowance(t *testing.T) {
	decrementQuery := `UPDATE org SET play_allowance = play_allowance - 1 WHERE id = \$1 AND play_allowance > \$2 RETURNING play_allowance`
	existsQuery := `SELECT EXISTS \( SELECT 1 FROM org WHERE id = \$1 \)`

	t.Run("allowance left", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := DbRepository{}
		orgId := uuid.New()

		mock.ExpectQuery(decrementQuery).
			WithArgs(orgId.String(), 0).
			WillReturnRows(pgxmock.NewRows([]string{"play_allowance"}).AddRow(2))

		remaining, err := repo.DecrementPlayAllowance(context.Background(), mock, orgId)
		assert.NoError(t, err)
		assert.Equal(t, 2, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("allowance exhausted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := DbRepository{}
		orgId := uuid.New()

		mock.ExpectQuery(decrementQuery).
			WithArgs(orgId.String(), 0).
			WillReturnRows(pgxmock.NewRows([]string{"play_allowance"}))
		mock.ExpectQuery(existsQuery).
			WithArgs(orgId.String()).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		_, err = repo.DecrementPlayAllowance(context.Background(), mock, orgId)
		assert.ErrorIs(t, err, models.ErrNoAllowanceLeft)
		assert.True(t, errors.Is(err, models.PaymentRequiredError))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown org", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := DbRepository{}
		orgId := uuid.New()

		mock.ExpectQuery(decrementQuery).
			WithArgs(orgId.String(), 0).
			WillReturnRows(pgxmock.NewRows([]string{"play_allowance"}))
		mock.ExpectQuery(existsQuery).
			WithArgs(orgId.String()).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		_, err = repo.DecrementPlayAllowance(context.Background(), mock, orgId)
		assert.ErrorIs(t, err, models.ErrOrgNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResetPlayAllowances(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := DbRepository{}

	mock.ExpectExec(`UPDATE org SET play_allowance = CASE plan WHEN \$1 THEN \$2::integer WHEN \$3 THEN \$4::integer WHEN \$5 THEN \$6::integer WHEN \$7 THEN \$8::integer ELSE \$9::integer END`).
		WithArgs("custom", 10000, "free", 3, "pro", 1000, "team", 1000, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 12))

	updated, err := repo.ResetPlayAllowances(context.Background(), mock, models.DefaultPlaygroundAllowances())
	assert.NoError(t, err)
	assert.Equal(t, int64(12), updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
