package repositories

import (
	"context"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories/dbmodels"
)

func (repo *DbRepository) GetOrganizationById(ctx context.Context, exec Executor, organizationId uuid.UUID) (models.Organization, error) {
	org, err := SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectOrganization...).
			From(dbmodels.TABLE_ORGANIZATION).
			Where(squirrel.Eq{"id": organizationId}),
		dbmodels.AdaptOrganization,
	)
	if err != nil {
		return models.Organization{}, err
	}
	if org == nil {
		return models.Organization{}, models.ErrOrgNotFound
	}
	return *org, nil
}

func (repo *DbRepository) GetOrganizationByStripeCustomer(ctx context.Context, exec Executor, customerId string) (models.Organization, error) {
	org, err := SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectOrganization...).
			From(dbmodels.TABLE_ORGANIZATION).
			Where(squirrel.Eq{"stripe_customer": customerId}),
		dbmodels.AdaptOrganization,
	)
	if err != nil {
		return models.Organization{}, err
	}
	if org == nil {
		return models.Organization{}, errors.WithDetailf(models.ErrOrgNotFound, "no org for stripe customer %s", customerId)
	}
	return *org, nil
}

func (repo *DbRepository) UpdateOrganization(ctx context.Context, exec Executor, input models.UpdateOrganizationInput) error {
	if input.Name == nil {
		return nil
	}
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_ORGANIZATION).
			Set("name", *input.Name).
			Where(squirrel.Eq{"id": input.Id}),
	)
}

func (repo *DbRepository) UpdateOrganizationBilling(ctx context.Context, exec Executor, input models.UpdateOrganizationBillingInput) error {
	query := NewQueryBuilder().Update(dbmodels.TABLE_ORGANIZATION)
	hasUpdates := false

	if input.Plan != nil {
		query = query.Set("plan", input.Plan.String())
		hasUpdates = true
	}
	if input.StripeCustomer != nil {
		query = query.Set("stripe_customer", *input.StripeCustomer)
		hasUpdates = true
	}
	if input.ClearStripeSubscription {
		query = query.Set("stripe_subscription", nil)
		hasUpdates = true
	} else if input.StripeSubscription != nil {
		query = query.Set("stripe_subscription", *input.StripeSubscription)
		hasUpdates = true
	}
	if input.Canceled != nil {
		query = query.Set("canceled", *input.Canceled)
		hasUpdates = true
	}
	if !hasUpdates {
		return nil
	}

	return ExecBuilder(ctx, exec, query.Where(squirrel.Eq{"id": input.Id}))
}

// DecrementPlayAllowance consumes one playground call in a single statement,
// so that concurrent calls can never bring the allowance below zero.
// It returns the remaining allowance.
func (repo *DbRepository) DecrementPlayAllowance(ctx context.Context, exec Executor, organizationId uuid.UUID) (int, error) {
	sql, args, err := NewQueryBuilder().
		Update(dbmodels.TABLE_ORGANIZATION).
		Set("play_allowance", squirrel.Expr("play_allowance - 1")).
		Where(squirrel.Eq{"id": organizationId}).
		Where(squirrel.Gt{"play_allowance": 0}).
		Suffix("RETURNING play_allowance").
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	var remaining int
	err = exec.QueryRow(ctx, sql, args...).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		exists, existsErr := repo.organizationExists(ctx, exec, organizationId)
		if existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, models.ErrOrgNotFound
		}
		return 0, models.ErrNoAllowanceLeft
	}
	if err != nil {
		return 0, errors.Wrap(err, "error decrementing play allowance")
	}
	return remaining, nil
}

func (repo *DbRepository) organizationExists(ctx context.Context, exec Executor, organizationId uuid.UUID) (bool, error) {
	sql, args, err := NewQueryBuilder().
		Select("1").
		Prefix("SELECT EXISTS (").
		From(dbmodels.TABLE_ORGANIZATION).
		Where(squirrel.Eq{"id": organizationId}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "can't build sql query")
	}

	var exists bool
	if err := exec.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "error checking organization existence")
	}
	return exists, nil
}

// ResetPlayAllowances sets every organization's allowance to its plan quota.
// Organizations on a plan missing from the quotas get the free quota.
func (repo *DbRepository) ResetPlayAllowances(ctx context.Context, exec Executor, allowances models.PlaygroundAllowances) (int64, error) {
	plans := make([]string, 0, len(allowances))
	for plan := range allowances {
		plans = append(plans, plan.String())
	}
	slices.Sort(plans)

	quota := squirrel.Case("plan")
	for _, plan := range plans {
		quota = quota.When(squirrel.Expr("?", plan), squirrel.Expr("?::integer", allowances[models.Plan(plan)]))
	}
	quota = quota.Else(squirrel.Expr("?::integer", allowances[models.PlanFree]))

	return ExecBuilderRowsAffected(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_ORGANIZATION).
			Set("play_allowance", quota),
	)
}
