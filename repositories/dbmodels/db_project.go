package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type DBProject struct {
	Id        uuid.UUID `db:"id"`
	OrgId     uuid.UUID `db:"org_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type DBProjectWithActivation struct {
	DBProject
	Activated bool `db:"activated"`
}

const (
	TABLE_PROJECT = "app"
	TABLE_RUN     = "run"
)

var ColumnsSelectProject = utils.ColumnList[DBProject]()

func AdaptProject(db DBProject) (models.Project, error) {
	return models.Project{
		Id:        db.Id,
		OrgId:     db.OrgId,
		Name:      db.Name,
		CreatedAt: db.CreatedAt,
	}, nil
}

func AdaptProjectWithActivation(db DBProjectWithActivation) (models.Project, error) {
	project, err := AdaptProject(db.DBProject)
	project.Activated = db.Activated
	return project, err
}
