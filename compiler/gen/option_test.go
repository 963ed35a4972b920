package gen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	require := require.New(t)
	cfg, err := NewConfig()
	require.NoError(err)
	require.Positive(cfg.Workers)
	require.Equal(DefaultModuleSuffix, cfg.ModuleSuffix)

	cfg, err = NewConfig(WithWorkers(2), WithModuleSuffix("_gen"))
	require.NoError(err)
	require.Equal(2, cfg.Workers)
	require.Equal("_gen", cfg.ModuleSuffix)
}

func TestConfigOptions_Invalid(t *testing.T) {
	require := require.New(t)
	_, err := NewConfig(WithWorkers(0))
	require.ErrorIs(err, ErrInvalidConfig)

	_, err = NewConfig(WithWorkers(-1))
	require.ErrorIs(err, ErrInvalidConfig)

	_, err = NewConfig(WithModuleSuffix(""))
	require.ErrorIs(err, ErrInvalidConfig)
}
