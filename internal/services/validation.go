package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Bounds applied to recipe fields
const (
	MinCookingTime = 1
	MinAmount      = 1

	DefaultMaxCookingTime = 32000
	DefaultMaxAmount      = 32000

	MaxRecipeNameLength = 256
)

// ReservedUsername cannot be registered because it collides with the /users/me route
const ReservedUsername = "me"

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Limits are the configurable upper bounds for recipe validation
type Limits struct {
	MaxCookingTime int
	MaxAmount      int
}

// DefaultLimits returns the limits used when nothing is configured
func DefaultLimits() Limits {
	return Limits{MaxCookingTime: DefaultMaxCookingTime, MaxAmount: DefaultMaxAmount}
}

// IngredientAmount references an ingredient with the amount used in a recipe
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeInput is the writable part of a recipe
type RecipeInput struct {
	Ingredients []IngredientAmount `json:"ingredients"`
	Tags        []uint             `json:"tags"`
	Image       string             `json:"image"`
	Name        string             `json:"name"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"`
}

// ValidateRecipeInput checks the field-level invariants of a recipe that need no store access
func ValidateRecipeInput(in RecipeInput, limits Limits) *ValidationError {
	verr := &ValidationError{}

	if len(in.Tags) == 0 {
		verr.Add("tags", "at least one tag is required")
	} else {
		seen := make(map[uint]bool, len(in.Tags))
		for _, id := range in.Tags {
			if seen[id] {
				verr.Add("tags", fmt.Sprintf("tag %d is listed more than once", id))
				break
			}
			seen[id] = true
		}
	}

	if len(in.Ingredients) == 0 {
		verr.Add("ingredients", "at least one ingredient is required")
	} else {
		seen := make(map[uint]bool, len(in.Ingredients))
		for _, item := range in.Ingredients {
			if seen[item.ID] {
				verr.Add("ingredients", fmt.Sprintf("ingredient %d is listed more than once", item.ID))
				break
			}
			seen[item.ID] = true
		}
		for _, item := range in.Ingredients {
			if item.Amount < MinAmount || item.Amount > limits.MaxAmount {
				verr.Add("ingredients", fmt.Sprintf("amount of ingredient %d must be between %d and %d", item.ID, MinAmount, limits.MaxAmount))
			}
		}
	}

	if in.CookingTime < MinCookingTime || in.CookingTime > limits.MaxCookingTime {
		verr.Add("cooking_time", fmt.Sprintf("cooking time must be between %d and %d", MinCookingTime, limits.MaxCookingTime))
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "this field is required")
	} else if len(name) > MaxRecipeNameLength {
		verr.Add("name", fmt.Sprintf("at most %d characters", MaxRecipeNameLength))
	}
	if strings.TrimSpace(in.Text) == "" {
		verr.Add("text", "this field is required")
	}
	if strings.TrimSpace(in.Image) == "" {
		verr.Add("image", "this field is required")
	}

	return verr
}

// ValidateUsername rejects malformed usernames and the reserved value "me"
func ValidateUsername(username string) *ValidationError {
	verr := &ValidationError{}
	switch {
	case username == "":
		verr.Add("username", "this field is required")
	case strings.EqualFold(username, ReservedUsername):
		verr.Add("username", fmt.Sprintf("username %q is reserved", ReservedUsername))
	case !usernamePattern.MatchString(username):
		verr.Add("username", "only letters, digits and @/./+/-/_ are allowed")
	}
	return verr
}

// ValidSlug reports whether s can be used as a tag slug
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
