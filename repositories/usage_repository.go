package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories/dbmodels"
)

// GetDailyUsage counts the runs of the organization per day over the usage
// window, optionally restricted to one project. Days without runs are absent.
func (repo *DbRepository) GetDailyUsage(ctx context.Context, exec Executor, filter models.UsageFilter) ([]models.DailyUsage, error) {
	query := NewQueryBuilder().
		Select("date_trunc('day', r.created_at) AS date", "count(*) AS count").
		From(dbmodels.TABLE_RUN + " AS r").
		Join(dbmodels.TABLE_PROJECT + " AS a ON a.id = r.app").
		Where(squirrel.Eq{"a.org_id": filter.OrgId}).
		Where(fmt.Sprintf("r.created_at > now() - interval '%d days'", int(models.UsageWindow.Hours()/24))).
		GroupBy("date").
		OrderBy("date")

	if filter.ProjectId != nil {
		query = query.Where(squirrel.Eq{"r.app": *filter.ProjectId})
	}

	return SqlToListOfRow(ctx, exec, query, func(row pgx.CollectableRow) (models.DailyUsage, error) {
		var usage models.DailyUsage
		var date time.Time
		if err := row.Scan(&date, &usage.Count); err != nil {
			return models.DailyUsage{}, err
		}
		usage.Date = date.UTC()
		return usage, nil
	})
}
