package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/models"
)

// RecipeFilter narrows recipe listings. TagSlugs uses OR semantics: a recipe
// matches when it carries any of the slugs, and matches each recipe at most
// once. Favorited/InShoppingCart restrict to recipes where that flag is true
// for the requesting user, so for anonymous requests they match nothing.
type RecipeFilter struct {
	AuthorID       *uuid.UUID
	TagSlugs       []string
	Favorited      bool
	InShoppingCart bool
}

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db}
}

// annotated attaches is_favorited and is_in_shopping_cart as correlated
// EXISTS subselects, one per flag for the whole result set. No per-row
// queries are issued, so paginated listings stay at a constant query count.
// Anonymous readers get constant false flags and no subselects at all.
func (r *RecipeRepo) annotated(userID *uuid.UUID) *gorm.DB {
	q := r.db.Model(&models.Recipe{})
	if userID == nil {
		return q.Select("recipes.*, ? AS is_favorited, ? AS is_in_shopping_cart", false, false)
	}
	return q.Select(
		"recipes.*, "+
			"EXISTS(SELECT 1 FROM favorites fav WHERE fav.user_id = ? AND fav.recipe_id = recipes.id) AS is_favorited, "+
			"EXISTS(SELECT 1 FROM shopping_carts cart WHERE cart.user_id = ? AND cart.recipe_id = recipes.id) AS is_in_shopping_cart",
		*userID, *userID,
	)
}

func (r *RecipeRepo) applyFilter(q *gorm.DB, userID *uuid.UUID, filter RecipeFilter) *gorm.DB {
	if filter.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		// EXISTS instead of a JOIN: a recipe carrying several of the
		// requested slugs still yields one row, and the count query and the
		// page query see the same row set.
		q = q.Where(
			"EXISTS(SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE rt.recipe_id = recipes.id AND t.slug IN ?)",
			filter.TagSlugs,
		)
	}
	if filter.Favorited {
		if userID == nil {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("EXISTS(SELECT 1 FROM favorites ff WHERE ff.user_id = ? AND ff.recipe_id = recipes.id)", *userID)
		}
	}
	if filter.InShoppingCart {
		if userID == nil {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("EXISTS(SELECT 1 FROM shopping_carts cf WHERE cf.user_id = ? AND cf.recipe_id = recipes.id)", *userID)
		}
	}
	return q
}

// FindAll returns one page of annotated recipes, newest first, with the total
// count of recipes matching the filter.
func (r *RecipeRepo) FindAll(userID *uuid.UUID, filter RecipeFilter, limit, offset int) ([]*models.Recipe, int64, error) {
	var total int64
	countQ := r.applyFilter(r.db.Model(&models.Recipe{}), userID, filter)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*models.Recipe
	q := r.applyFilter(r.annotated(userID), userID, filter)
	err := q.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.pub_date DESC").
		Order("recipes.id").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, total, err
}

// FindByID returns one annotated recipe with author, tags and ingredients.
func (r *RecipeRepo) FindByID(id uuid.UUID, userID *uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.annotated(userID).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("recipes.id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindByAuthor returns the author's newest recipes, up to limit (no limit
// when limit <= 0). Used for subscription previews.
func (r *RecipeRepo) FindByAuthor(authorID uuid.UUID, limit int) ([]*models.Recipe, error) {
	q := r.db.Where("author_id = ?", authorID).Order("pub_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var recipes []*models.Recipe
	err := q.Find(&recipes).Error
	return recipes, err
}

// CountByAuthor returns how many recipes the author has published.
func (r *RecipeRepo) CountByAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// Add inserts a recipe together with its tag references and ingredient rows
// in one transaction. Tags must already exist; only join rows are written.
func (r *RecipeRepo) Add(recipe *models.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Tags.* skips upserting the tags themselves; only join rows are
		// written. Ingredient children carry bare IngredientIDs, so their
		// zero-valued Ingredient structs are never saved.
		return tx.
			Omit("Author", "Tags.*").
			Create(recipe).Error
	})
}

// Update rewrites the recipe's own columns and replaces the tag set and the
// whole ingredient set atomically. Replace, not merge: ingredient rows absent
// from the payload are gone afterwards.
func (r *RecipeRepo) Update(recipe *models.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"image":        recipe.Image,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = uuid.Nil
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Omit("Ingredient").Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}

		return tx.Model(recipe).Association("Tags").Replace(recipe.Tags)
	})
}

// Delete removes a recipe and everything hanging off it.
func (r *RecipeRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}
