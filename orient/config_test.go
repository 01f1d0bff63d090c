package orient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/mixdag/diag"
)

func TestConfig_Defaults(t *testing.T) {
	got := Config{}.withDefaults()
	assert.Equal(t, Config{MaxIter: DefaultMaxIter, Ridge: DefaultRidge, Tolerance: DefaultTolerance}, got)

	tiny := Config{MaxIter: 5, Ridge: 1e-12, Tolerance: 1e-12}.withDefaults()
	assert.Equal(t, Config{MaxIter: 5, Ridge: 1e-12, Tolerance: 1e-12}, tiny)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	for _, c := range []Config{{MaxIter: -1}, {Ridge: -1e-3}, {Tolerance: -1}} {
		assert.True(t, errors.Is(c.Validate(), diag.ErrConfig), "%+v", c)
	}
}
