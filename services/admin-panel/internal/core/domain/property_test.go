package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormFromProperty_AppliesServerDefaults(t *testing.T) {
	f := FormFromProperty(Property{Title: "Villa", PropertyType: "villa", IsActive: true})

	assert.Equal(t, 0.0, f.Latitude)
	assert.Equal(t, 0.0, f.Longitude)
	assert.NotNil(t, f.Images)
	assert.Empty(t, f.Images)
	assert.NotNil(t, f.Features)
	assert.True(t, f.IsActive)
}

func TestFormFromProperty_CopiesCoordinates(t *testing.T) {
	lat, lng := -8.69, 115.16
	f := FormFromProperty(Property{Latitude: &lat, Longitude: &lng, Images: []string{"a.jpg"}})
	assert.Equal(t, lat, f.Latitude)
	assert.Equal(t, lng, f.Longitude)
	assert.Equal(t, []string{"a.jpg"}, f.Images)
}

func TestPropertyForm_Operations(t *testing.T) {
	f := NewPropertyForm()

	f.AddImage("  ")
	assert.Empty(t, f.Images)

	f.AddImage(" https://cdn/a.jpg ")
	f.AddImage("https://cdn/b.jpg")
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, f.Images)

	f.RemoveImage(5)
	assert.Len(t, f.Images, 2)
	f.RemoveImage(0)
	assert.Equal(t, []string{"https://cdn/b.jpg"}, f.Images)

	f.ToggleFeature("Pool")
	f.ToggleFeature("Garden")
	assert.Equal(t, []string{"Pool", "Garden"}, f.Features)
	f.ToggleFeature("Pool")
	assert.Equal(t, []string{"Garden"}, f.Features)
}

func TestFormFromProperty_DoesNotShareSlices(t *testing.T) {
	p := Property{Images: []string{"a.jpg", "b.jpg"}}
	f := FormFromProperty(p)
	f.RemoveImage(0)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)
}
