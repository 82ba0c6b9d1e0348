package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecipeInput() RecipeInput {
	return RecipeInput{
		Ingredients: []IngredientAmount{{ID: 1, Amount: 5}, {ID: 2, Amount: 10}},
		Tags:        []uint{1, 2},
		Image:       "recipes/images/soup.png",
		Name:        "Soup",
		Text:        "Boil everything.",
		CookingTime: 30,
	}
}

func TestValidateRecipeInput(t *testing.T) {
	limits := Limits{MaxCookingTime: 600, MaxAmount: 1000}

	testCases := []struct {
		name   string
		mutate func(in *RecipeInput)
		field  string
	}{
		{name: "valid input", mutate: func(in *RecipeInput) {}},
		{name: "no tags", mutate: func(in *RecipeInput) { in.Tags = nil }, field: "tags"},
		{name: "duplicate tag", mutate: func(in *RecipeInput) { in.Tags = []uint{3, 3} }, field: "tags"},
		{name: "no ingredients", mutate: func(in *RecipeInput) { in.Ingredients = []IngredientAmount{} }, field: "ingredients"},
		{
			name:   "duplicate ingredient",
			mutate: func(in *RecipeInput) { in.Ingredients = []IngredientAmount{{ID: 4, Amount: 1}, {ID: 4, Amount: 2}} },
			field:  "ingredients",
		},
		{name: "zero amount", mutate: func(in *RecipeInput) { in.Ingredients[0].Amount = 0 }, field: "ingredients"},
		{name: "negative amount", mutate: func(in *RecipeInput) { in.Ingredients[1].Amount = -3 }, field: "ingredients"},
		{name: "amount above limit", mutate: func(in *RecipeInput) { in.Ingredients[0].Amount = 1001 }, field: "ingredients"},
		{name: "zero cooking time", mutate: func(in *RecipeInput) { in.CookingTime = 0 }, field: "cooking_time"},
		{name: "cooking time above limit", mutate: func(in *RecipeInput) { in.CookingTime = 601 }, field: "cooking_time"},
		{name: "blank name", mutate: func(in *RecipeInput) { in.Name = "   " }, field: "name"},
		{name: "missing text", mutate: func(in *RecipeInput) { in.Text = "" }, field: "text"},
		{name: "missing image", mutate: func(in *RecipeInput) { in.Image = "" }, field: "image"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			in := validRecipeInput()
			tt.mutate(&in)

			verr := ValidateRecipeInput(in, limits)
			if tt.field == "" {
				assert.False(t, verr.HasErrors(), verr.Error())
				assert.NoError(t, verr.OrNil())
				return
			}
			assert.Contains(t, verr.Fields, tt.field)
			assert.True(t, IsValidationError(verr.OrNil()))
		})
	}
}

func TestValidateRecipeInputRejectsEmptyListsRegardlessOfOtherFields(t *testing.T) {
	in := RecipeInput{}
	verr := ValidateRecipeInput(in, DefaultLimits())

	assert.Contains(t, verr.Fields, "tags")
	assert.Contains(t, verr.Fields, "ingredients")
	assert.Contains(t, verr.Fields, "cooking_time")
}

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		username string
		valid    bool
	}{
		{"chef", true},
		{"chef.john+1@home", true},
		{"me", false},
		{"ME", false},
		{"", false},
		{"bad name", false},
		{"semi;colon", false},
	}

	for _, tt := range testCases {
		t.Run(tt.username, func(t *testing.T) {
			verr := ValidateUsername(tt.username)
			assert.Equal(t, !tt.valid, verr.HasErrors())
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	verr := NewValidationError("tags", "at least one tag is required")
	verr.Add("cooking_time", "too long")

	assert.Equal(t, "validation failed: cooking_time: too long, tags: at least one tag is required", verr.Error())
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("breakfast_2-day"))
	assert.False(t, ValidSlug("with space"))
	assert.False(t, ValidSlug(""))
}
