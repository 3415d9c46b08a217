package vehicle

import "testing"

func countFeatured(images []Image) int {
	n := 0
	for _, img := range images {
		if img.IsFeature {
			n++
		}
	}
	return n
}

func TestNormalizeFeaturedPromotesFirst(t *testing.T) {
	images := NormalizeFeatured([]Image{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	if !images[0].IsFeature {
		t.Fatal("expected first image to be promoted")
	}
	if countFeatured(images) != 1 {
		t.Fatalf("expected exactly one featured image, got %d", countFeatured(images))
	}
}

func TestNormalizeFeaturedKeepsFirstFlag(t *testing.T) {
	images := NormalizeFeatured([]Image{
		{ID: "a"},
		{ID: "b", IsFeature: true},
		{ID: "c", IsFeature: true},
	})
	if !images[1].IsFeature || images[2].IsFeature {
		t.Fatalf("expected only b featured, got %+v", images)
	}
}

func TestNormalizeFeaturedEmpty(t *testing.T) {
	if got := NormalizeFeatured(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestSetFeaturedClearsOthers(t *testing.T) {
	images := []Image{
		{ID: "a", IsFeature: true},
		{ID: "b"},
		{ID: "c"},
	}
	if !SetFeatured(images, "c") {
		t.Fatal("expected SetFeatured to find image c")
	}
	if images[0].IsFeature || images[1].IsFeature || !images[2].IsFeature {
		t.Fatalf("expected only c featured, got %+v", images)
	}
}

func TestSetFeaturedUnknownID(t *testing.T) {
	images := []Image{{ID: "a", IsFeature: true}}
	if SetFeatured(images, "nope") {
		t.Fatal("expected false for unknown image id")
	}
	if !images[0].IsFeature {
		t.Fatal("a failed SetFeatured must not disturb the existing flag")
	}
}

func TestRemoveFeaturedImagePromotesSuccessor(t *testing.T) {
	images := []Image{
		{ID: "a", IsFeature: true},
		{ID: "b"},
		{ID: "c"},
	}
	images = RemoveImage(images, "a")
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if countFeatured(images) != 1 {
		t.Fatalf("expected exactly one featured image after removal, got %+v", images)
	}
	if !images[0].IsFeature {
		t.Fatalf("expected b to inherit the featured flag, got %+v", images)
	}
}

// The invariant must hold under any sequence of image operations.
func TestFeaturedInvariantUnderSequence(t *testing.T) {
	images := NormalizeFeatured([]Image{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}})

	steps := []func(){
		func() { SetFeatured(images, "c") },
		func() { images = RemoveImage(images, "c") },
		func() { SetFeatured(images, "d") },
		func() { images = RemoveImage(images, "a") },
		func() { images = RemoveImage(images, "d") },
	}
	for i, step := range steps {
		step()
		if len(images) > 0 && countFeatured(images) != 1 {
			t.Fatalf("step %d: expected exactly one featured image, got %+v", i, images)
		}
	}

	images = RemoveImage(images, "b")
	if len(images) != 0 {
		t.Fatalf("expected empty list, got %+v", images)
	}
}
