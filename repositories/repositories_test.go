package repositories_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/issue-tracker/errs"
	"github.com/issue-tracker/models"
	"github.com/issue-tracker/repositories"
	"github.com/issue-tracker/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsFoldEscapesWildcards(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateProject(t, db, "snake_case", "x", testutil.Day(2024, 1, 1), nil)
	testutil.CreateProject(t, db, "snakeXcase", "x", testutil.Day(2024, 1, 2), nil)

	var names []string
	err := db.Model(&models.Project{}).
		Scopes(repositories.ContainsFold("E_C", "name")).
		Pluck("name", &names).Error
	require.NoError(t, err)
	assert.Equal(t, []string{"snake_case"}, names)
}

func TestProjectSoftDeleteHidesRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	project := testutil.CreateProject(t, db, "Alpha", "x", testutil.Day(2024, 1, 1), nil)
	repo := repositories.NewProjectRepository()

	require.NoError(t, repo.SoftDelete(project.ID))
	assert.ErrorIs(t, repo.SoftDelete(project.ID), errs.ErrProjectNotFound)

	_, err := repo.FindByID(project.ID)
	assert.ErrorIs(t, err, errs.ErrProjectNotFound)

	found, err := repo.FindByIDs([]uint{project.ID})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindTypesDeduplicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	bug := testutil.TypeID(t, db, models.TypeBug)
	repo := repositories.NewReferenceRepository()

	types, err := repo.FindTypes([]uint{bug, bug})
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, models.TypeBug, types[0].Name)

	_, err = repo.FindTypes([]uint{bug, 42})
	assert.ErrorIs(t, err, errs.ErrTypeNotFound)

	_, err = repo.FindStatus(42)
	assert.ErrorIs(t, err, errs.ErrStatusNotFound)
}

func TestCartTotalIsScopedToSession(t *testing.T) {
	db := testutil.NewTestDB(t)
	widget := testutil.CreateProduct(t, db, "Widget", 1.25, 10)
	gadget := testutil.CreateProduct(t, db, "Gadget", 4, 10)
	repo := repositories.NewCartRepository()
	mine, theirs := uuid.NewString(), uuid.NewString()

	for _, key := range []string{mine, theirs} {
		require.NoError(t, repo.EnsureSession(key))
	}
	require.NoError(t, repo.EnsureSession(mine))

	_, err := repo.Create(models.Cart{SessionKey: mine, ProductID: widget.ID, Qty: 4})
	require.NoError(t, err)
	_, err = repo.Create(models.Cart{SessionKey: mine, ProductID: gadget.ID, Qty: 1})
	require.NoError(t, err)
	_, err = repo.Create(models.Cart{SessionKey: theirs, ProductID: gadget.ID, Qty: 9})
	require.NoError(t, err)

	total, err := repo.Total(mine)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, total, 0.0001)

	empty, err := repo.Total(uuid.NewString())
	require.NoError(t, err)
	assert.Zero(t, empty)

	require.NoError(t, repo.Clear(mine))
	lines, err := repo.ListWithProduct(theirs)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestProductSaveAllUpdatesStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	a := testutil.CreateProduct(t, db, "A", 1, 5)
	b := testutil.CreateProduct(t, db, "B", 1, 5)
	repo := repositories.NewProductRepository()

	a.Amount, b.Amount = 2, 0
	require.NoError(t, repo.SaveAll([]models.Product{a, b}))

	products, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 2, products[0].Amount)
	assert.Equal(t, 0, products[1].Amount)
}
