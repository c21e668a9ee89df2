package repositories

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories/dbmodels"
)

func (repo *DbRepository) ListChecklists(ctx context.Context, exec Executor, projectId uuid.UUID) ([]models.Checklist, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectChecklist...).
			From(dbmodels.TABLE_CHECKLIST).
			Where(squirrel.Eq{"project_id": projectId}).
			OrderBy("created_at DESC"),
		dbmodels.AdaptChecklist,
	)
}

func (repo *DbRepository) GetChecklist(ctx context.Context, exec Executor, checklistId uuid.UUID) (models.Checklist, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.ColumnsSelectChecklist...).
			From(dbmodels.TABLE_CHECKLIST).
			Where(squirrel.Eq{"id": checklistId}),
		dbmodels.AdaptChecklist,
	)
}

func (repo *DbRepository) CreateChecklist(ctx context.Context, exec Executor, checklistId uuid.UUID, input models.CreateChecklistInput) error {
	checks, err := json.Marshal(input.Checks)
	if err != nil {
		return errors.Wrap(err, "could not marshal checks")
	}

	err = ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_CHECKLIST).
			Columns("id", "project_id", "slug", "logic", "checks").
			Values(checklistId, input.ProjectId, input.Slug, string(input.Logic), checks),
	)
	return wrapUniqueViolation(err, "a checklist with this slug already exists in the project")
}
