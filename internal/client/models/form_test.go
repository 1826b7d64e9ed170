package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		in      string
		want    *int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "   ", want: nil},
		{in: "0", want: intPtr(0)},
		{in: " 12 ", want: intPtr(12)},
		{in: "1.5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOptionalInt(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrValidation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseOptionalFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    *float64
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "0", want: floatPtr(0)},
		{in: "4.25", want: floatPtr(4.25)},
		{in: "NaN", wantErr: true},
		{in: "heavy", wantErr: true},
		{in: "-3", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOptionalFloat(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrValidation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCatForm_BlankNumbersAreAbsentInPayload(t *testing.T) {
	form := CatForm{Name: "Mike", Breed: "Japanese", Personality: "friendly", Age: "", Weight: " "}

	cat, err := form.Cat()
	require.NoError(t, err)
	assert.Nil(t, cat.Age)
	assert.Nil(t, cat.Weight)

	b, err := json.Marshal(cat.Fields())
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(b, &body))
	assert.NotContains(t, body, "age")
	assert.NotContains(t, body, "weight")
}

func TestCatForm_ZeroIsKept(t *testing.T) {
	cat, err := CatForm{Name: "a", Breed: "b", Personality: "c", Age: "0", Weight: "0"}.Cat()
	require.NoError(t, err)
	require.NotNil(t, cat.Age)
	require.NotNil(t, cat.Weight)
	assert.Equal(t, 0, *cat.Age)
	assert.Equal(t, 0.0, *cat.Weight)
}

func TestCatForm_BadNumber(t *testing.T) {
	_, err := CatForm{Age: "three"}.Cat()
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorContains(t, err, "age:")

	_, err = CatForm{Weight: "x"}.Cat()
	require.ErrorContains(t, err, "weight:")
}

func TestFormFromCat_RoundTrip(t *testing.T) {
	cat := Cat{
		ID:          4,
		Name:        "Tama",
		Breed:       "Persian",
		Personality: "calm",
		Origin:      "Tokyo",
		Age:         intPtr(7),
		Weight:      floatPtr(3.5),
		UserID:      int64Ptr(2),
	}

	form := FormFromCat(cat)
	assert.Equal(t, "7", form.Age)
	assert.Equal(t, "3.5", form.Weight)

	back, err := form.Cat()
	require.NoError(t, err)
	assert.Equal(t, cat.Fields(), back.Fields())
	assert.Zero(t, back.ID)
	assert.Nil(t, back.UserID)
}

func TestFormFromCat_AbsentNumbersStayBlank(t *testing.T) {
	form := FormFromCat(Cat{Name: "a"})
	assert.Equal(t, "", form.Age)
	assert.Equal(t, "", form.Weight)
}
