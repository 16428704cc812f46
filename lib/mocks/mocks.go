package mocks

import (
	"context"

	"github.com/goto/scout/core/entity"
	"github.com/goto/scout/core/search"
	"github.com/stretchr/testify/mock"
)

type Catalog struct {
	mock.Mock
}

func (c *Catalog) Search(ctx context.Context, req search.Request) ([]entity.Entity, error) {
	args := c.Called(ctx, req)
	return args.Get(0).([]entity.Entity), args.Error(1)
}

type Reporter struct {
	mock.Mock
}

func (r *Reporter) Report(ctx context.Context, err error) {
	r.Called(ctx, err)
}
