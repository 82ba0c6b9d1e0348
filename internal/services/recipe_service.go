package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Actor is the authenticated user performing a write
type Actor struct {
	ID    uint
	Admin bool
}

// RecipeFilter narrows a recipe listing; zero values disable a filter.
// The favorited and shopping cart filters are ignored for anonymous viewers.
type RecipeFilter struct {
	AuthorID         uint
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// RecipeService manages recipes and renders their views
type RecipeService interface {
	// CreateRecipe validates and stores a recipe authored by authorID
	CreateRecipe(authorID uint, in RecipeInput) (models.RecipeView, error)
	// UpdateRecipe replaces the writable fields; only the author or an admin may do so
	UpdateRecipe(actor Actor, id uint, in RecipeInput) (models.RecipeView, error)
	// DeleteRecipe removes a recipe together with its join rows
	DeleteRecipe(actor Actor, id uint) error
	// GetRecipe returns the full view of a recipe for viewerID (0 for anonymous)
	GetRecipe(viewerID, id uint) (models.RecipeView, error)
	// ListRecipes returns a page of recipes, newest first
	ListRecipes(viewerID uint, filter RecipeFilter, p Pagination) (models.Page[models.RecipeView], error)
}

type recipeService struct {
	db     *gorm.DB
	limits Limits
}

// NewRecipeService creates a new instance of RecipeService
func NewRecipeService(db *gorm.DB, limits Limits) RecipeService {
	return &recipeService{db: db, limits: limits}
}

func (s *recipeService) CreateRecipe(authorID uint, in RecipeInput) (models.RecipeView, error) {
	if err := ValidateRecipeInput(in, s.limits).OrNil(); err != nil {
		return models.RecipeView{}, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(in.Name),
		Image:       in.Image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, authorID); err != nil {
			return err
		}
		tags, err := checkReferences(tx, in)
		if err != nil {
			return err
		}
		if err := tx.Omit("Tags", "Ingredients", "Author").Create(&recipe).Error; err != nil {
			return err
		}
		return writeComposition(tx, &recipe, tags, in.Ingredients)
	})
	if err != nil {
		return models.RecipeView{}, err
	}

	log.WithFields(logrus.Fields{"recipe_id": recipe.ID, "author_id": authorID}).Info("Recipe created")
	return s.GetRecipe(authorID, recipe.ID)
}

func (s *recipeService) UpdateRecipe(actor Actor, id uint, in RecipeInput) (models.RecipeView, error) {
	if err := ValidateRecipeInput(in, s.limits).OrNil(); err != nil {
		return models.RecipeView{}, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		recipe, err := s.ownedRecipe(tx, actor, id)
		if err != nil {
			return err
		}
		tags, err := checkReferences(tx, in)
		if err != nil {
			return err
		}

		err = tx.Model(recipe).Updates(map[string]interface{}{
			"name":         strings.TrimSpace(in.Name),
			"image":        in.Image,
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		}).Error
		if err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return writeComposition(tx, recipe, tags, in.Ingredients)
	})
	if err != nil {
		return models.RecipeView{}, err
	}

	log.WithFields(logrus.Fields{"recipe_id": id, "actor_id": actor.ID}).Info("Recipe updated")
	return s.GetRecipe(actor.ID, id)
}

func (s *recipeService) DeleteRecipe(actor Actor, id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedRecipe(tx, actor, id); err != nil {
			return err
		}
		return deleteRecipes(tx, []uint{id})
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"recipe_id": id, "actor_id": actor.ID}).Info("Recipe deleted")
	return nil
}

func (s *recipeService) GetRecipe(viewerID, id uint) (models.RecipeView, error) {
	var recipe models.Recipe
	err := s.preloaded(s.db).First(&recipe, id).Error
	if err != nil {
		if isNotFound(err) {
			return models.RecipeView{}, newError(ErrNotFound, "recipe %d not found", id)
		}
		return models.RecipeView{}, err
	}

	views, err := s.views(viewerID, []models.Recipe{recipe})
	if err != nil {
		return models.RecipeView{}, err
	}
	return views[0], nil
}

func (s *recipeService) ListRecipes(viewerID uint, filter RecipeFilter, p Pagination) (models.Page[models.RecipeView], error) {
	var page models.Page[models.RecipeView]

	query := func() *gorm.DB {
		q := s.db.Model(&models.Recipe{})
		if filter.AuthorID != 0 {
			q = q.Where("recipes.author_id = ?", filter.AuthorID)
		}
		if len(filter.TagSlugs) > 0 {
			tagged := s.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs)
			q = q.Where("recipes.id IN (?)", tagged)
		}
		if filter.IsFavorited && viewerID != 0 {
			q = q.Where("recipes.id IN (?)", s.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", viewerID))
		}
		if filter.IsInShoppingCart && viewerID != 0 {
			q = q.Where("recipes.id IN (?)", s.db.Model(&models.ShoppingCartEntry{}).Select("recipe_id").Where("user_id = ?", viewerID))
		}
		return q
	}

	if err := query().Count(&page.Count).Error; err != nil {
		return page, err
	}

	var recipes []models.Recipe
	err := s.preloaded(query()).
		Order("recipes.created_at DESC, recipes.id DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&recipes).Error
	if err != nil {
		return page, err
	}

	page.Results, err = s.views(viewerID, recipes)
	return page, err
}

func (s *recipeService) preloaded(q *gorm.DB) *gorm.DB {
	return q.Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id") }).
		Preload("Ingredients.Ingredient")
}

// ownedRecipe loads a recipe the actor may modify
func (s *recipeService) ownedRecipe(tx *gorm.DB, actor Actor, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := tx.First(&recipe, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "recipe %d not found", id)
		}
		return nil, err
	}
	if recipe.AuthorID != actor.ID && !actor.Admin {
		return nil, newError(ErrForbidden, "only the author can modify recipe %d", id)
	}
	return &recipe, nil
}

// views renders recipes with per-viewer flags and favorite counts, preserving order
func (s *recipeService) views(viewerID uint, recipes []models.Recipe) ([]models.RecipeView, error) {
	result := make([]models.RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return result, nil
	}

	ids := make([]uint, len(recipes))
	authorIDs := make([]uint, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
		authorIDs[i] = recipes[i].AuthorID
	}

	counts, err := favoriteCounts(s.db, ids)
	if err != nil {
		return nil, err
	}
	favorited, err := viewerRecipes(s.db, &models.Favorite{}, viewerID, ids)
	if err != nil {
		return nil, err
	}
	inCart, err := viewerRecipes(s.db, &models.ShoppingCartEntry{}, viewerID, ids)
	if err != nil {
		return nil, err
	}
	subscribed, err := subscribedAuthors(s.db, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	for i := range recipes {
		r := &recipes[i]
		view := models.RecipeView{
			ID:               r.ID,
			Tags:             r.Tags,
			Author:           models.NewUserView(&r.Author, subscribed[r.AuthorID]),
			Ingredients:      make([]models.RecipeIngredientView, len(r.Ingredients)),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			FavoriteCount:    counts[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		}
		if view.Tags == nil {
			view.Tags = []models.Tag{}
		}
		for j, ri := range r.Ingredients {
			view.Ingredients[j] = models.RecipeIngredientView{
				ID:              ri.IngredientID,
				Name:            ri.Ingredient.Name,
				MeasurementUnit: ri.Ingredient.MeasurementUnit,
				Amount:          ri.Amount,
			}
		}
		result = append(result, view)
	}
	return result, nil
}

// checkReferences verifies that every referenced tag and ingredient exists and returns the tags
func checkReferences(tx *gorm.DB, in RecipeInput) ([]models.Tag, error) {
	verr := &ValidationError{}

	var tags []models.Tag
	if err := tx.Where("id IN ?", in.Tags).Find(&tags).Error; err != nil {
		return nil, err
	}
	if missing := missingIDs(in.Tags, tagIDs(tags)); len(missing) > 0 {
		verr.Add("tags", fmt.Sprintf("unknown tags: %v", missing))
	}

	requested := make([]uint, len(in.Ingredients))
	for i, item := range in.Ingredients {
		requested[i] = item.ID
	}
	var found []uint
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", requested).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	if missing := missingIDs(requested, found); len(missing) > 0 {
		verr.Add("ingredients", fmt.Sprintf("unknown ingredients: %v", missing))
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return tags, nil
}

// writeComposition stores the tag links and ingredient rows of a recipe
func writeComposition(tx *gorm.DB, recipe *models.Recipe, tags []models.Tag, items []IngredientAmount) error {
	if err := tx.Model(recipe).Association("Tags").Append(tags); err != nil {
		return err
	}
	rows := make([]models.RecipeIngredient, len(items))
	for i, item := range items {
		rows[i] = models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: item.ID, Amount: item.Amount}
	}
	return tx.Create(&rows).Error
}

// deleteRecipes removes recipes with every row referencing them
func deleteRecipes(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id IN ?", ids).Error; err != nil {
		return err
	}
	for _, model := range []interface{}{
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCartEntry{},
		&models.ShortLink{},
	} {
		if err := tx.Where("recipe_id IN ?", ids).Delete(model).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", ids).Delete(&models.Recipe{}).Error
}

func favoriteCounts(db *gorm.DB, ids []uint) (map[uint]int64, error) {
	var rows []struct {
		RecipeID uint
		Total    int64
	}
	err := db.Model(&models.Favorite{}).
		Select("recipe_id, COUNT(*) AS total").
		Where("recipe_id IN ?", ids).
		Group("recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.RecipeID] = row.Total
	}
	return counts, nil
}

// viewerRecipes returns which of ids the viewer holds in the given relation table
func viewerRecipes(db *gorm.DB, model interface{}, viewerID uint, ids []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if viewerID == 0 {
		return result, nil
	}
	var held []uint
	if err := db.Model(model).Where("user_id = ? AND recipe_id IN ?", viewerID, ids).Pluck("recipe_id", &held).Error; err != nil {
		return nil, err
	}
	for _, id := range held {
		result[id] = true
	}
	return result, nil
}

func tagIDs(tags []models.Tag) []uint {
	ids := make([]uint, len(tags))
	for i := range tags {
		ids[i] = tags[i].ID
	}
	return ids
}

func missingIDs(requested, found []uint) []uint {
	present := make(map[uint]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	var missing []uint
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
