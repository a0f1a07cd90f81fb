package postgresadapter

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator assigns server-side ids to new rows.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
