package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLoadingMirrorsSpinner(t *testing.T) {
	ui := NewUIStore()

	ui.SetLoading(true)
	assert.True(t, ui.IsLoading())
	assert.True(t, ui.ShowSpinner())

	ui.SetLoading(false)
	assert.False(t, ui.IsLoading())
	assert.False(t, ui.ShowSpinner())
}

func TestSpinnerOverridableIndependently(t *testing.T) {
	ui := NewUIStore()

	ui.SetLoading(true)
	ui.SetShowSpinner(false)
	assert.True(t, ui.IsLoading())
	assert.False(t, ui.ShowSpinner())
}

func TestSiteLogoCached(t *testing.T) {
	ui := NewUIStore()
	assert.Empty(t, ui.SiteLogo())

	ui.SetSiteLogo("https://cdn.example.com/logo.png")
	assert.Equal(t, "https://cdn.example.com/logo.png", ui.SiteLogo())
}
