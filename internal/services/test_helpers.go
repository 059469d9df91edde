package services

import (
	"context"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/mock"

	"edacli/internal/dataset"
)

// MockDatasetStore is a mock for the DatasetStore interface
type MockDatasetStore struct {
	mock.Mock
}

func (m *MockDatasetStore) List(ctx context.Context) ([]dataset.Info, error) {
	args := m.Called(ctx)
	infos, _ := args.Get(0).([]dataset.Info)
	return infos, args.Error(1)
}

func (m *MockDatasetStore) Open(ctx context.Context, name string) (dataframe.DataFrame, error) {
	args := m.Called(ctx, name)
	df, _ := args.Get(0).(dataframe.DataFrame)
	return df, args.Error(1)
}
