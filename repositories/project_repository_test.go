package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func TestListProjects(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := DbRepository{}
	orgId := uuid.New()
	first, second := uuid.New(), uuid.New()
	createdAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT a.id, a.org_id, a.name, a.created_at, EXISTS \(SELECT 1 FROM run AS r WHERE r.app = a.id\) AS activated FROM app AS a WHERE a.org_id = \$1 ORDER BY a.created_at`).
		WithArgs(orgId.String()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "org_id", "name", "created_at", "activated"}).
			AddRow(first, orgId, "chatbot", createdAt, true).
			AddRow(second, orgId, "summarizer", createdAt.Add(time.Hour), false))

	projects, err := repo.ListProjects(context.Background(), mock, orgId)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, projects, 2)
	assert.Equal(t, models.Project{Id: first, OrgId: orgId, Name: "chatbot", CreatedAt: createdAt, Activated: true}, projects[0])
	assert.False(t, projects[1].Activated)
}

func TestGetDailyUsage(t *testing.T) {
	baseQuery := `SELECT date_trunc\('day', r.created_at\) AS date, count\(\*\) AS count FROM run AS r JOIN app AS a ON a.id = r.app WHERE a.org_id = \$1 AND r.created_at > now\(\) - interval '30 days'`
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	t.Run("whole organization", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := DbRepository{}
		orgId := uuid.New()

		mock.ExpectQuery(baseQuery + ` GROUP BY date ORDER BY date`).
			WithArgs(orgId.String()).
			WillReturnRows(pgxmock.NewRows([]string{"date", "count"}).
				AddRow(day, 4).
				AddRow(day.AddDate(0, 0, 1), 7))

		usage, err := repo.GetDailyUsage(context.Background(), mock, models.UsageFilter{OrgId: orgId})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Equal(t, []models.DailyUsage{
			{Date: day, Count: 4},
			{Date: day.AddDate(0, 0, 1), Count: 7},
		}, usage)
	})

	t.Run("one project", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := DbRepository{}
		orgId, projectId := uuid.New(), uuid.New()

		mock.ExpectQuery(baseQuery + ` AND r.app = \$2 GROUP BY date ORDER BY date`).
			WithArgs(orgId.String(), projectId.String()).
			WillReturnRows(pgxmock.NewRows([]string{"date", "count"}))

		usage, err := repo.GetDailyUsage(context.Background(), mock, models.UsageFilter{
			OrgId:     orgId,
			ProjectId: utils.Ptr(projectId),
		})
		require.NoError(t, err)
		assert.Empty(t, usage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
