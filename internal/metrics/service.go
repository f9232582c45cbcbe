package metrics

import (
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/services"
	"context"
)

type serviceWithOutcomes[T any, S any] struct {
	operation string
	inner     services.Service[T, S]
}

// WithOutcomes counts every run of inner in AuthOutcomesTotal.
func WithOutcomes[T any, S any](operation string, inner services.Service[T, S]) services.Service[T, S] {
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithOutcomes[T, S]{operation: operation, inner: inner}
}

func (s *serviceWithOutcomes[T, S]) Run(ctx context.Context, input T) (S, error) {
	result, err := s.inner.Run(ctx, input)
	AuthOutcomesTotal.WithLabelValues(s.operation, Outcome(err)).Inc()
	return result, err
}
