package usecases

import (
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/usecases/billing"
	"github.com/promptdeck/promptdeck-backend/usecases/security"
)

type UsecasesWithCreds struct {
	Usecases
	Credentials models.Credentials
}

func (usecases *UsecasesWithCreds) NewEnforceSecurity() security.EnforceSecurity {
	return &security.EnforceSecurityImpl{
		Credentials: usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceProjectSecurity() security.EnforceSecurityProject {
	return &security.EnforceSecurityProjectImpl{
		EnforceSecurity: usecases.NewEnforceSecurity(),
		Credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewOrganizationUsecase() OrganizationUsecase {
	return OrganizationUsecase{
		enforceSecurity:        usecases.NewEnforceSecurity(),
		executorFactory:        usecases.NewExecutorFactory(),
		organizationRepository: usecases.Repositories.DbRepository,
		projectRepository:      usecases.Repositories.DbRepository,
	}
}

func (usecases *UsecasesWithCreds) NewUpgradeUsecase() billing.UpgradeUsecaseInterface {
	return billing.NewUpgradeUsecase(
		usecases.NewEnforceSecurity(),
		usecases.Repositories.BillingRepository,
		usecases.NewExecutorFactory(),
		usecases.Repositories.DbRepository,
	)
}

func (usecases *UsecasesWithCreds) NewPlaygroundUsecase() PlaygroundUsecase {
	return PlaygroundUsecase{
		enforceSecurity:        usecases.NewEnforceSecurity(),
		executorFactory:        usecases.NewExecutorFactory(),
		organizationRepository: usecases.Repositories.DbRepository,
		llmRepository:          usecases.Repositories.LLMRepository,
	}
}

func (usecases *UsecasesWithCreds) NewDatasetUsecase() DatasetUsecase {
	return DatasetUsecase{
		enforceSecurity:    usecases.NewEnforceProjectSecurity(),
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		projectRepository:  usecases.Repositories.DbRepository,
		datasetRepository:  usecases.Repositories.DbRepository,
	}
}

func (usecases *UsecasesWithCreds) NewChecklistUsecase() ChecklistUsecase {
	return ChecklistUsecase{
		enforceSecurity:     usecases.NewEnforceProjectSecurity(),
		executorFactory:     usecases.NewExecutorFactory(),
		projectRepository:   usecases.Repositories.DbRepository,
		checklistRepository: usecases.Repositories.DbRepository,
	}
}

func (usecases *UsecasesWithCreds) NewEvaluationUsecase() EvaluationUsecase {
	return EvaluationUsecase{
		enforceSecurity:      usecases.NewEnforceProjectSecurity(),
		executorFactory:      usecases.NewExecutorFactory(),
		transactionFactory:   usecases.NewTransactionFactory(),
		projectRepository:    usecases.Repositories.DbRepository,
		datasetRepository:    usecases.Repositories.DbRepository,
		checklistRepository:  usecases.Repositories.DbRepository,
		evaluationRepository: usecases.Repositories.DbRepository,
		taskQueueRepository:  usecases.Repositories.TaskQueueRepository,
	}
}
