package villain

// DefaultImage is used when nothing more specific matches.
const DefaultImage = "/images/default-villain.jpg"

var imagesByName = map[string]string{
	"Joker":       "/images/joker.png",
	"Darth Vader": "/images/darth-vader.png",
	"Thanos":      "/images/thanos.png",
}

var imagesByFranchise = map[string]string{
	"Marvel":    "/images/marvel-villain.jpg",
	"DC":        "/images/dc-villain.jpg",
	"Star Wars": "/images/starwars-villain.jpg",
}

// ImageFor picks the image path for v: its own image, then a per-name
// image, then a per-franchise image, then DefaultImage.
func ImageFor(v *Villain) string {
	if v.Image != "" {
		return v.Image
	}
	if img, ok := imagesByName[v.Name]; ok {
		return img
	}
	if img, ok := imagesByFranchise[v.Franchise]; ok {
		return img
	}
	return DefaultImage
}
