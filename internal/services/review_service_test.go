package services_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *services.ReviewService {
	service, _ := newReviewServiceWithCache(db)
	return service
}

func newReviewServiceWithCache(db *gorm.DB) (*services.ReviewService, *cache.MemoryCache) {
	c := cache.NewMemoryCache(time.Minute)
	return services.NewReviewService(repositories.NewGORMReviewRepository(db), c), c
}

func TestReviewService_Create(t *testing.T) {
	db := newTestDB(t)
	service := newReviewService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	review, err := service.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: shirt.ID,
		Rating:    5,
		Comment:   "great shirt",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, user.ID, review.UserID)

	// A second review by the same user for the same product is rejected.
	_, err = service.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: shirt.ID,
		Rating:    1,
		Comment:   "changed my mind",
	})
	assert.ErrorIs(t, err, services.ErrReviewExists)

	// Another user may still review it.
	bob := seedUser(t, db, "bob")
	_, err = service.Create(context.Background(), bob.ID, services.ReviewInput{
		ProductID: shirt.ID,
		Rating:    3,
		Comment:   "it is fine",
	})
	assert.NoError(t, err)
}

func TestReviewService_Create_Invalid(t *testing.T) {
	db := newTestDB(t)
	service := newReviewService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	cases := []struct {
		name  string
		input services.ReviewInput
	}{
		{"rating too high", services.ReviewInput{ProductID: shirt.ID, Rating: 6, Comment: "way too good"}},
		{"rating missing", services.ReviewInput{ProductID: shirt.ID, Comment: "no stars given"}},
		{"comment too short", services.ReviewInput{ProductID: shirt.ID, Rating: 4, Comment: "ok"}},
		{"product missing", services.ReviewInput{Rating: 4, Comment: "about nothing"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), user.ID, tc.input)
			assert.Error(t, err)
		})
	}
}

func TestReviewService_Rating(t *testing.T) {
	db := newTestDB(t)
	service := newReviewService(db)
	shirt := seedProduct(t, db, "shirt", 2500)

	// No reviews yet
	summary, err := service.Rating(shirt.ID)
	assert.NoError(t, err)
	assert.Equal(t, "0", summary.Rating)
	assert.Equal(t, 0, summary.Count)

	for i, rating := range []int{5, 3, 4} {
		user := seedUser(t, db, []string{"alice", "bob", "carol"}[i])
		_, err := service.Create(context.Background(), user.ID, services.ReviewInput{
			ProductID: shirt.ID,
			Rating:    rating,
			Comment:   "some thoughts",
		})
		require.NoError(t, err)
	}

	summary, err = service.Rating(shirt.ID)
	assert.NoError(t, err)
	assert.Equal(t, "4.0", summary.Rating)
	assert.Equal(t, 3, summary.Count)
}

func TestReviewService_Rating_OneDecimal(t *testing.T) {
	db := newTestDB(t)
	service := newReviewService(db)
	shirt := seedProduct(t, db, "shirt", 2500)

	for i, rating := range []int{5, 4} {
		user := seedUser(t, db, []string{"alice", "bob"}[i])
		_, err := service.Create(context.Background(), user.ID, services.ReviewInput{
			ProductID: shirt.ID,
			Rating:    rating,
			Comment:   "some thoughts",
		})
		require.NoError(t, err)
	}

	summary, err := service.Rating(shirt.ID)
	assert.NoError(t, err)
	assert.Equal(t, "4.5", summary.Rating)
	assert.Equal(t, 2, summary.Count)
}

func TestReviewService_Delete_OwnedOnly(t *testing.T) {
	db := newTestDB(t)
	service := newReviewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	shirt := seedProduct(t, db, "shirt", 2500)

	review, err := service.Create(context.Background(), alice.ID, services.ReviewInput{
		ProductID: shirt.ID,
		Rating:    5,
		Comment:   "great shirt",
	})
	require.NoError(t, err)

	// Bob cannot delete Alice's review.
	assert.ErrorIs(t, service.Delete(bob.ID, review.ID), services.ErrNotFound)

	reviews, err := service.ListForProduct(shirt.ID)
	assert.NoError(t, err)
	assert.Len(t, reviews, 1)

	assert.NoError(t, service.Delete(alice.ID, review.ID))

	reviews, err = service.ListForProduct(shirt.ID)
	assert.NoError(t, err)
	assert.Empty(t, reviews)

	// A deleted review no longer counts toward the aggregate.
	summary, err := service.Rating(shirt.ID)
	assert.NoError(t, err)
	assert.Equal(t, "0", summary.Rating)
}

func TestReviewService_FindExisting(t *testing.T) {
	db := newTestDB(t)
	service := newReviewService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	found, err := service.FindExisting(user.ID, shirt.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	review, err := service.Create(context.Background(), user.ID, services.ReviewInput{
		ProductID: shirt.ID,
		Rating:    4,
		Comment:   "pretty good",
	})
	require.NoError(t, err)

	found, err = service.FindExisting(user.ID, shirt.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, review.ID, found.ID)
}

func TestReviewService_Create_InvalidatesProductCache(t *testing.T) {
	db := newTestDB(t)
	service, pageCache := newReviewServiceWithCache(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	ctx := context.Background()
	require.NoError(t, pageCache.Set(ctx, "product:"+shirt.ID, shirt))

	_, err := service.Create(ctx, user.ID, services.ReviewInput{
		ProductID: shirt.ID,
		Rating:    5,
		Comment:   "great shirt",
	})
	require.NoError(t, err)

	// The cached product entry is dropped so the next read sees the review.
	var cached map[string]interface{}
	hit, err := pageCache.Get(ctx, "product:"+shirt.ID, &cached)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestReviewService_ListForUser(t *testing.T) {
	db := newTestDB(t)
	service := newReviewService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)
	mug := seedProduct(t, db, "mug", 1200)

	for _, productID := range []string{shirt.ID, mug.ID} {
		_, err := service.Create(context.Background(), user.ID, services.ReviewInput{
			ProductID: productID,
			Rating:    4,
			Comment:   "pretty good",
		})
		require.NoError(t, err)
	}

	reviews, err := service.ListForUser(user.ID)
	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
	for _, review := range reviews {
		assert.NotEmpty(t, review.Product.Name)
	}
}
