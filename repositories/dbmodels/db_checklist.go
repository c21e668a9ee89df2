package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type DBChecklist struct {
	Id        uuid.UUID `db:"id"`
	ProjectId uuid.UUID `db:"project_id"`
	Slug      string    `db:"slug"`
	Logic     string    `db:"logic"`
	Checks    []byte    `db:"checks"`
	CreatedAt time.Time `db:"created_at"`
}

const TABLE_CHECKLIST = "checklist"

var ColumnsSelectChecklist = utils.ColumnList[DBChecklist]()

func AdaptChecklist(db DBChecklist) (models.Checklist, error) {
	var checks []models.Check
	if err := json.Unmarshal(db.Checks, &checks); err != nil {
		return models.Checklist{}, errors.Wrapf(err, "invalid checks on checklist %s", db.Id)
	}
	return models.Checklist{
		Id:        db.Id,
		ProjectId: db.ProjectId,
		Slug:      db.Slug,
		Logic:     models.ChecklistLogic(db.Logic),
		Checks:    checks,
		CreatedAt: db.CreatedAt,
	}, nil
}
