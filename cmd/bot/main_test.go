package main

import (
	"errors"
	"testing"

	"assistant/internal/config"
	"assistant/internal/domain"
	"assistant/internal/repository/static"
	"assistant/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadReferenceData_Static(t *testing.T) {
	cities, products, err := loadReferenceData(static.NewSource())

	require.NoError(t, err)
	assert.Len(t, cities, 9)
	assert.Len(t, products, 6)
}

func TestLoadReferenceData_Errors(t *testing.T) {
	t.Run("cities fail", func(t *testing.T) {
		source := &testutil.MockReferenceSource{}
		source.On("ListCities", mock.Anything).Return(nil, errors.New("relation does not exist"))

		_, _, err := loadReferenceData(source)

		assert.ErrorContains(t, err, "failed to load cities")
		source.AssertNotCalled(t, "ListProducts", mock.Anything)
	})

	t.Run("empty city table", func(t *testing.T) {
		source := &testutil.MockReferenceSource{}
		source.On("ListCities", mock.Anything).Return([]domain.City{}, nil)

		_, _, err := loadReferenceData(source)

		assert.Error(t, err)
	})

	t.Run("products fail", func(t *testing.T) {
		source := &testutil.MockReferenceSource{}
		source.On("ListCities", mock.Anything).
			Return([]domain.City{testutil.NewTestCity("москва", "Москва", 55.7558, 37.6176)}, nil)
		source.On("ListProducts", mock.Anything).Return(nil, errors.New("timeout"))

		_, _, err := loadReferenceData(source)

		assert.ErrorContains(t, err, "failed to load products")
	})
}

func TestNewLogger(t *testing.T) {
	for _, cfg := range []*config.Config{nil, {Debug: false}, {Debug: true}} {
		logger, err := newLogger(cfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
