package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.Equal(t, "%rice%", Contains(" Rice "))
	assert.Equal(t, `%50\%\_off%`, Contains("50%_off"))
}
