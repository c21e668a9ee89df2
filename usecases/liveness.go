package usecases

import (
	"context"
)

type livenessRepository interface {
	Liveness(ctx context.Context) error
}

type LivenessUsecase struct {
	livenessRepository livenessRepository
}

func (u *LivenessUsecase) Liveness(ctx context.Context) error {
	return u.livenessRepository.Liveness(ctx)
}
