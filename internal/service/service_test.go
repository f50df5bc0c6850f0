package service

import (
	"context"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/recipe-blog-api/internal/model"
	"github.com/iliyamo/recipe-blog-api/internal/queue"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
	"github.com/iliyamo/recipe-blog-api/internal/repository/memstore"
)

// flakyUsers fails list updates while down is set.
type flakyUsers struct {
	repository.UserStore
	down bool
}

var errDown = errors.New("store down")

func (f *flakyUsers) AddRecipe(ctx context.Context, u, r primitive.ObjectID) error {
	if f.down {
		return errDown
	}
	return f.UserStore.AddRecipe(ctx, u, r)
}

func (f *flakyUsers) RemoveRecipe(ctx context.Context, u, r primitive.ObjectID) error {
	if f.down {
		return errDown
	}
	return f.UserStore.RemoveRecipe(ctx, u, r)
}

type recordingPublisher struct {
	events []queue.RecipeLinkEvent
	err    error
}

func (p *recordingPublisher) PublishRecipeLink(_ context.Context, ev queue.RecipeLinkEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func newUser(t *testing.T, s repository.UserStore, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", Role: model.RoleUser}
	require.NoError(t, s.Create(context.Background(), u))
	return u
}

func recipesOf(t *testing.T, s repository.UserStore, id primitive.ObjectID) []primitive.ObjectID {
	t.Helper()
	u, err := s.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u.Recipes
}

func TestLinkerLinksAndUnlinks(t *testing.T) {
	ctx := context.Background()
	log, _ := logtest.NewNullLogger()
	users := memstore.NewUsers()
	pub := &recordingPublisher{}
	l := &RecipeLinker{Users: users, Publisher: pub, Log: log}

	u := newUser(t, users, "ann")
	rid := primitive.NewObjectID()

	l.Link(ctx, u.ID, rid)
	assert.Equal(t, []primitive.ObjectID{rid}, recipesOf(t, users, u.ID))

	l.Unlink(ctx, u.ID, rid)
	assert.Empty(t, recipesOf(t, users, u.ID))
	assert.Empty(t, pub.events)
}

func TestLinkerQueuesRepairOnFailure(t *testing.T) {
	ctx := context.Background()
	log, hook := logtest.NewNullLogger()
	users := &flakyUsers{UserStore: memstore.NewUsers(), down: true}
	pub := &recordingPublisher{}
	l := &RecipeLinker{Users: users, Publisher: pub, Log: log}

	u := newUser(t, users, "ann")
	rid := primitive.NewObjectID()

	l.Link(ctx, u.ID, rid)
	require.Len(t, pub.events, 1)
	assert.Equal(t, queue.OpLink, pub.events[0].Op)
	assert.Equal(t, rid.Hex(), pub.events[0].RecipeID)
	assert.NotEmpty(t, hook.AllEntries())

	// the consumer applies it once the store is back
	users.down = false
	require.NoError(t, l.Apply(ctx, pub.events[0]))
	assert.Equal(t, []primitive.ObjectID{rid}, recipesOf(t, users, u.ID))
}

func TestLinkerIgnoresMissingUser(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	pub := &recordingPublisher{}
	l := &RecipeLinker{Users: memstore.NewUsers(), Publisher: pub, Log: log}

	l.Link(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.Empty(t, pub.events)

	ev := queue.NewRecipeLinkEvent(queue.OpUnlink, primitive.NewObjectID(), primitive.NewObjectID())
	assert.NoError(t, l.Apply(context.Background(), ev))
}

func TestLinkerApplyReportsStoreErrors(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	users := &flakyUsers{UserStore: memstore.NewUsers()}
	u := newUser(t, users, "ann")
	users.down = true
	l := &RecipeLinker{Users: users, Log: log}

	err := l.Apply(context.Background(), queue.NewRecipeLinkEvent(queue.OpLink, u.ID, primitive.NewObjectID()))
	assert.ErrorIs(t, err, errDown)
}

func TestReconcilerSweep(t *testing.T) {
	ctx := context.Background()
	log, _ := logtest.NewNullLogger()
	stores := memstore.New()

	ann := newUser(t, stores.Users, "ann")
	bob := newUser(t, stores.Users, "bob")

	// ann's recipe was never linked
	missing := &model.Recipe{RecipeName: "Soup", User: ann.ID}
	require.NoError(t, stores.Recipes.Create(ctx, missing))

	// bob's list names a deleted recipe and one owned by ann
	linked := &model.Recipe{RecipeName: "Stew", User: bob.ID}
	require.NoError(t, stores.Recipes.Create(ctx, linked))
	require.NoError(t, stores.Users.AddRecipe(ctx, bob.ID, linked.ID))
	gone := primitive.NewObjectID()
	require.NoError(t, stores.Users.AddRecipe(ctx, bob.ID, gone))
	require.NoError(t, stores.Users.AddRecipe(ctx, bob.ID, missing.ID))

	r := &Reconciler{Users: stores.Users, Recipes: stores.Recipes, Log: log}
	res, err := r.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Linked: 1, Unlinked: 2}, res)

	assert.Equal(t, []primitive.ObjectID{missing.ID}, recipesOf(t, stores.Users, ann.ID))
	assert.Equal(t, []primitive.ObjectID{linked.ID}, recipesOf(t, stores.Users, bob.ID))

	res, err = r.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, res)
}

func TestReconcilerRunStopsOnCancel(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	stores := memstore.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		(&Reconciler{Users: stores.Users, Recipes: stores.Recipes, Interval: time.Millisecond, Log: log}).Run(ctx)
		close(done)
	}()
	cancel()
	<-done
}

// racingRecipes creates and links a recipe right after Owners takes its
// snapshot, the way a concurrent POST /recipes would.
type racingRecipes struct {
	repository.RecipeStore
	users   repository.UserStore
	owner   primitive.ObjectID
	created *model.Recipe
}

func (r *racingRecipes) Owners(ctx context.Context) ([]model.RecipeOwner, error) {
	owners, err := r.RecipeStore.Owners(ctx)
	if err != nil || r.created != nil {
		return owners, err
	}
	r.created = &model.Recipe{RecipeName: "Late", User: r.owner}
	if err := r.RecipeStore.Create(ctx, r.created); err != nil {
		return nil, err
	}
	return owners, r.users.AddRecipe(ctx, r.owner, r.created.ID)
}

// racingUsers does the same right after List takes its snapshot.
type racingUsers struct {
	repository.UserStore
	recipes repository.RecipeStore
	owner   primitive.ObjectID
	created *model.Recipe
}

func (u *racingUsers) List(ctx context.Context) ([]model.User, error) {
	users, err := u.UserStore.List(ctx)
	if err != nil || u.created != nil {
		return users, err
	}
	u.created = &model.Recipe{RecipeName: "Late", User: u.owner}
	if err := u.recipes.Create(ctx, u.created); err != nil {
		return nil, err
	}
	return users, u.UserStore.AddRecipe(ctx, u.owner, u.created.ID)
}

func TestReconcilerSweepKeepsConcurrentlyCreatedRecipe(t *testing.T) {
	ctx := context.Background()
	log, _ := logtest.NewNullLogger()

	t.Run("created after recipe snapshot", func(t *testing.T) {
		stores := memstore.New()
		ann := newUser(t, stores.Users, "ann")
		recipes := &racingRecipes{RecipeStore: stores.Recipes, users: stores.Users, owner: ann.ID}

		res, err := (&Reconciler{Users: stores.Users, Recipes: recipes, Log: log}).Sweep(ctx)
		require.NoError(t, err)
		require.NotNil(t, recipes.created)
		assert.Zero(t, res.Unlinked)
		assert.Equal(t, []primitive.ObjectID{recipes.created.ID}, recipesOf(t, stores.Users, ann.ID))
	})

	t.Run("created after user snapshot", func(t *testing.T) {
		stores := memstore.New()
		ann := newUser(t, stores.Users, "ann")
		users := &racingUsers{UserStore: stores.Users, recipes: stores.Recipes, owner: ann.ID}

		res, err := (&Reconciler{Users: users, Recipes: stores.Recipes, Log: log}).Sweep(ctx)
		require.NoError(t, err)
		require.NotNil(t, users.created)
		assert.Zero(t, res.Unlinked)
		assert.Equal(t, []primitive.ObjectID{users.created.ID}, recipesOf(t, stores.Users, ann.ID))
	})
}
