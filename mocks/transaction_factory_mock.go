package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/repositories"
)

type TransactionFactory struct {
	mock.Mock
	TxMock *Transaction
}

func (t *TransactionFactory) Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	args := t.Called(ctx, fn)
	err := fn(t.TxMock)
	if err != nil {
		return err
	}
	return args.Error(0)
}
