package workflow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/taptosell-creatives/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestApply_PreservesUntouchedCreativeFields(t *testing.T) {
	s := Apply(NewSnapshot(), Patch{Creative: &CreativePatch{VideoScript: ptr("script")}})
	s = Apply(s, Patch{Creative: &CreativePatch{LifestyleImages: []string{"a", "b", "c", "d"}}})

	require.NotNil(t, s.Creatives)
	require.NotNil(t, s.Creatives.VideoScript)
	assert.Equal(t, "script", *s.Creatives.VideoScript)
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Creatives.LifestyleImages)
	assert.Nil(t, s.Creatives.AdCopy)

	s = Apply(s, Patch{Creative: &CreativePatch{AdCopy: &models.AdCopy{TikTok: "t"}}})
	assert.Equal(t, "script", *s.Creatives.VideoScript)
	assert.Len(t, s.Creatives.LifestyleImages, 4)
	assert.Equal(t, "t", s.Creatives.AdCopy.TikTok)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := Apply(NewSnapshot(), Patch{Creative: &CreativePatch{LifestyleImages: []string{"a"}}})
	after := Apply(before, Patch{Creative: &CreativePatch{LifestyleImages: []string{"x", "y"}}})

	assert.Equal(t, []string{"a"}, before.Creatives.LifestyleImages)
	assert.Equal(t, []string{"x", "y"}, after.Creatives.LifestyleImages)

	images := []string{"1"}
	s := Apply(NewSnapshot(), Patch{Creative: &CreativePatch{LifestyleImages: images}})
	images[0] = "changed"
	assert.Equal(t, "1", s.Creatives.LifestyleImages[0])
}

func TestApply_StepIsMonotonic(t *testing.T) {
	s := Apply(NewSnapshot(), Patch{Step: ptr(models.StepSalesPage)})
	assert.Equal(t, models.StepSalesPage, s.Step)

	s = Apply(s, Patch{Step: ptr(models.StepCreatives)})
	assert.Equal(t, models.StepSalesPage, s.Step)

	s = Apply(s, Patch{Step: ptr(models.StepImport)})
	assert.Equal(t, models.StepSalesPage, s.Step)
}

func TestApply_SalesPageReplacedWholesale(t *testing.T) {
	s := Apply(NewSnapshot(), Patch{SalesPage: &models.SalesPage{Headline: "old", CTA: "buy"}})
	s = Apply(s, Patch{SalesPage: &models.SalesPage{Headline: "new"}})
	assert.Equal(t, "new", s.SalesPage.Headline)
	assert.Empty(t, s.SalesPage.CTA)
}

func TestSellingPrice(t *testing.T) {
	s := NewSnapshot()
	assert.Zero(t, s.SellingPrice())

	s = Apply(s, Patch{Product: &models.Product{SupplierPrice: 45.50}})
	assert.InDelta(t, 113.75, s.SellingPrice(), 1e-9)
	assert.Equal(t, s.SellingPrice(), s.SellingPrice())

	for _, margin := range []float64{-100, -50, 0, 33.3, 150, 1000} {
		s = Apply(s, Patch{Margin: ptr(margin)})
		assert.InDelta(t, 45.50*(1+margin/100), s.SellingPrice(), 1e-9, "margin %v", margin)
	}
}

func TestStore_ConcurrentMergesCompose(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			store.Update(Patch{Creative: &CreativePatch{VideoScript: ptr("v")}})
		}()
		go func() {
			defer wg.Done()
			store.Update(Patch{Creative: &CreativePatch{AdCopy: &models.AdCopy{Reels: "r"}}})
		}()
		go func() {
			defer wg.Done()
			store.Update(Patch{Creative: &CreativePatch{LifestyleImages: []string{"1", "2", "3", "4"}}})
		}()
	}
	wg.Wait()

	c := store.Snapshot().Creatives
	require.NotNil(t, c)
	assert.Equal(t, "v", *c.VideoScript)
	assert.Equal(t, "r", c.AdCopy.Reels)
	assert.Len(t, c.LifestyleImages, 4)
}

func TestStore_BeginReleaseIsIdempotent(t *testing.T) {
	store := NewStore()
	release := store.Begin(models.KindImages)
	assert.True(t, store.Snapshot().Loading.Images)

	release()
	release()
	assert.False(t, store.Snapshot().Loading.Images)

	other := store.Begin(models.KindImages)
	release()
	assert.True(t, store.Snapshot().Loading.Images, "stale release must not clear a newer flag")
	other()
}
