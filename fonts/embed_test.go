package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltinFaces(t *testing.T) {
	for f := range faces {
		data, err := Load("embed:" + string(f))
		require.NoError(t, err, f)
		assert.NotEmpty(t, data, f)
	}
	_, err := Load("Inter-Regular")
	assert.Error(t, err)
}

func TestForVariant(t *testing.T) {
	assert.Equal(t, Italic, ForVariant("italic"))
	assert.Equal(t, BoldItalic, ForVariant("bold-italic"))
	assert.Equal(t, Regular, ForVariant("size3"))
	assert.Equal(t, Regular, ForVariant("whatever"))
}
