package simcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		InitialNum:      5,
		Density:         0.1,
		MaxTranslation:  0.1,
		MaxRotation:     0.1,
		MaxDeformation:  0.1,
		Epsilon:         1,
		Delta:           0.5,
		TimeIncrement:   1,
		NumSteps:        10,
		OutputIncrement: 1,
		NG:              1,
		Seed:            1,
		Variant:         "DrasdoHohme",
		CellTypes: []CellTypeConfig{
			{Name: "default", Size: 1, MinCycle: 24},
		},
	}
}

func TestConfigValidateAccepts(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfigValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"initial num", func(c *Config) { c.InitialNum = 0 }},
		{"density too high", func(c *Config) { c.Density = 1.5 }},
		{"negative translation", func(c *Config) { c.MaxTranslation = -1 }},
		{"epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"delta", func(c *Config) { c.Delta = 0 }},
		{"time increment", func(c *Config) { c.TimeIncrement = 0 }},
		{"ng", func(c *Config) { c.NG = 0 }},
		{"no cell types", func(c *Config) { c.CellTypes = nil }},
		{"unknown variant", func(c *Config) { c.Variant = "nope" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var simErr *Error
			require.ErrorAs(t, err, &simErr)
			assert.Equal(t, ErrConfiguration, simErr.Kind)
		})
	}
}

func TestConfigValidateRejectsDrugReferencingUnknownType(t *testing.T) {
	cfg := validConfig()
	cfg.Drugs = []DrugConfig{{Name: "x", TimeAdded: 1, EffectByType: map[string]float64{"ghost": 0.5}}}
	require.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsDuplicateCellTypeNames(t *testing.T) {
	cfg := validConfig()
	cfg.CellTypes = append(cfg.CellTypes, CellTypeConfig{Name: "default", Size: 2, MinCycle: 10})
	require.Error(t, cfg.Validate())
}
