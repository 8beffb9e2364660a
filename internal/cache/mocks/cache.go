package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Cache is a mock type for the Cache type
type Cache struct {
	mock.Mock
}

func (_m *Cache) Get(ctx context.Context, key string, value any) (bool, error) {
	ret := _m.Called(ctx, key, value)

	return ret.Bool(0), ret.Error(1)
}

func (_m *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return _m.Called(ctx, key, value, ttl).Error(0)
}

func (_m *Cache) Delete(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

func (_m *Cache) Close() error {
	return _m.Called().Error(0)
}
