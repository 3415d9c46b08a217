package vehicle

// NormalizeFeatured enforces the featured-image invariant on an aggregate
// image list: at most one IsFeature flag, and a non-empty list always ends up
// with exactly one. The first flagged image wins; if none is flagged the
// first image is promoted.
func NormalizeFeatured(images []Image) []Image {
	seen := false
	for i := range images {
		if images[i].IsFeature {
			if seen {
				images[i].IsFeature = false
			}
			seen = true
		}
	}
	if !seen && len(images) > 0 {
		images[0].IsFeature = true
	}
	return images
}

// SetFeatured designates one image as featured, clearing the flag from all
// others at the point of designation. Returns false when id is not present.
func SetFeatured(images []Image, id string) bool {
	found := false
	for i := range images {
		if images[i].ID == id {
			found = true
		}
	}
	if !found {
		return false
	}
	for i := range images {
		images[i].IsFeature = images[i].ID == id
	}
	return true
}

// RemoveImage drops an image by id, re-normalizing so the list never loses
// its featured designation while non-empty.
func RemoveImage(images []Image, id string) []Image {
	out := images[:0]
	for _, img := range images {
		if img.ID != id {
			out = append(out, img)
		}
	}
	return NormalizeFeatured(out)
}
