package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories/dbmodels"
	"github.com/promptdeck/promptdeck-backend/utils"
)

// ListProjects returns the projects of the organization, each flagged as
// activated once it has recorded at least one run.
func (repo *DbRepository) ListProjects(ctx context.Context, exec Executor, organizationId uuid.UUID) ([]models.Project, error) {
	columns := append(
		utils.ColumnList[dbmodels.DBProject]("a"),
		fmt.Sprintf("EXISTS (SELECT 1 FROM %s AS r WHERE r.app = a.id) AS activated", dbmodels.TABLE_RUN),
	)

	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(columns...).
			From(dbmodels.TABLE_PROJECT+" AS a").
			Where(squirrel.Eq{"a.org_id": organizationId}).
			OrderBy("a.created_at"),
		dbmodels.AdaptProjectWithActivation,
	)
}

func (repo *DbRepository) GetProjectById(ctx context.Context, exec Executor, projectId uuid.UUID) (models.Project, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectProject...).
			From(dbmodels.TABLE_PROJECT).
			Where(squirrel.Eq{"id": projectId}),
		dbmodels.AdaptProject,
	)
}
