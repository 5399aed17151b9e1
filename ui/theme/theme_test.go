package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentPalette_FollowsMode(t *testing.T) {
	t.Cleanup(func() { darkMode = false })

	darkMode = false
	var p PaletteSnapshot = CurrentPalette()
	assert.Equal(t, light, p)

	darkMode = true
	p = CurrentPalette()
	assert.Equal(t, dark, p)
	assert.NotEqual(t, light.AppBg, p.AppBg)
}
