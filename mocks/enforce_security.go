package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/models"
)

type EnforceSecurity struct {
	mock.Mock
}

func (e *EnforceSecurity) ReadOrganization(organizationId uuid.UUID) error {
	args := e.Called(organizationId)
	return args.Error(0)
}

func (e *EnforceSecurity) WriteOrganization(organizationId uuid.UUID) error {
	args := e.Called(organizationId)
	return args.Error(0)
}

func (e *EnforceSecurity) ReadProject(project models.Project) error {
	args := e.Called(project)
	return args.Error(0)
}

func (e *EnforceSecurity) WriteProject(project models.Project) error {
	args := e.Called(project)
	return args.Error(0)
}

func (e *EnforceSecurity) ProjectResource(project models.Project, resourceProjectId uuid.UUID) error {
	args := e.Called(project, resourceProjectId)
	return args.Error(0)
}
