package storage

import (
	"context"
	"errors"
)

// Multi writes each row to the primary sink and then to every mirror.
// Only a primary failure is returned; mirror failures go to OnMirrorErr.
type Multi struct {
	Primary     Sink
	Mirrors     []Sink
	OnMirrorErr func(error)
}

func (m *Multi) Append(ctx context.Context, r Row) error {
	if err := m.Primary.Append(ctx, r); err != nil {
		return err
	}
	var errs []error
	for _, s := range m.Mirrors {
		if err := s.Append(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil && m.OnMirrorErr != nil {
		m.OnMirrorErr(err)
	}
	return nil
}
