package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardNext(t *testing.T) {
	testCases := []struct {
		name      string
		title     string
		price     string
		wantStep  int
		wantError string
	}{
		{name: "empty title", title: "  ", price: "100", wantStep: 0, wantError: "Title is required"},
		{name: "missing price", title: "X", price: "", wantStep: 0, wantError: "Price is required"},
		{name: "valid basics", title: "X", price: "100", wantStep: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := WizardState{Form: NewWizardForm()}
			s.Form.Title = tc.title
			s.Form.Price = tc.price

			next := s.Next()
			assert.Equal(t, tc.wantStep, next.Step)
			assert.Equal(t, tc.wantError, next.Error)
		})
	}
}

func TestWizardStepsAfterBasicsAreNotGated(t *testing.T) {
	s := WizardState{Step: 1}
	s = s.Next().Next().Next()
	assert.Equal(t, len(WizardSteps)-1, s.Step)
	assert.True(t, s.LastStep())
	assert.Empty(t, s.Error)

	s = s.Back().Back().Back().Back()
	assert.Equal(t, 0, s.Step)
}

func TestWizardResetKeepsSelections(t *testing.T) {
	s := WizardState{Step: 3, Form: WizardForm{
		Title:        "Villa",
		Description:  "Nice",
		Price:        "100",
		PropertyType: "land",
		ListingType:  "long_term_rent",
		Currency:     "IDR",
		Area:         "Ubud",
		Bedrooms:     "3",
	}}.Succeeded(RoleUser)
	require.True(t, s.Success)

	r := s.Reset()
	assert.False(t, r.Success)
	assert.Equal(t, 0, r.Step)
	assert.Empty(t, r.Form.Title)
	assert.Empty(t, r.Form.Description)
	assert.Empty(t, r.Form.Price)
	assert.Equal(t, "land", r.Form.PropertyType)
	assert.Equal(t, "long_term_rent", r.Form.ListingType)
	assert.Equal(t, "IDR", r.Form.Currency)
	assert.Equal(t, "Ubud", r.Form.Area)
	assert.Equal(t, "3", r.Form.Bedrooms)
}

func TestSubmission(t *testing.T) {
	f := NewWizardForm()
	f.Title = "Villa"
	f.Price = "250000"
	f.Bedrooms = "3"
	f.Bathrooms = "abc"
	f.PricePeriod = "per_month"
	f.Features = " Pool, ,Garden ,"

	sub := f.Submission()
	assert.Equal(t, 250000.0, sub.Price)
	require.NotNil(t, sub.Bedrooms)
	assert.Equal(t, 3, *sub.Bedrooms)
	assert.Nil(t, sub.Bathrooms)
	assert.Equal(t, []string{"Pool", "Garden"}, sub.Features)
	assert.Empty(t, sub.PricePeriod, "sale listings carry no price period")

	f.ListingType = string(ListingLongTermRent)
	assert.Equal(t, "per_month", f.Submission().PricePeriod)
}

func TestSubmissionMessage(t *testing.T) {
	assert.Contains(t, SubmissionMessage(RoleAgent), "now live")
	assert.Contains(t, SubmissionMessage(RoleAdmin), "now live")
	assert.Contains(t, SubmissionMessage(RoleUser), "submitted for review")
}
