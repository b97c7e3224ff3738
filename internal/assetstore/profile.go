package assetstore

// Profile describes where an asset class is stored and how it is normalized
// before upload.
type Profile struct {
	Folder    string
	MaxWidth  int
	MaxHeight int
	// Formats lists the accepted encodings by extension, as sniffed from the
	// file content.
	Formats []string
}

var (
	PetImages = Profile{
		Folder:    "AdoptNest/Pets",
		MaxWidth:  800,
		MaxHeight: 800,
		Formats:   []string{"jpg", "jpeg", "png", "webp", "gif"},
	}
	Banners = Profile{
		Folder:    "AdoptNest/Banners",
		MaxWidth:  1200,
		MaxHeight: 600,
		Formats:   []string{"jpg", "jpeg", "png", "webp"},
	}
	CategoryIcons = Profile{
		Folder:    "AdoptNest/CategoryIcons",
		MaxWidth:  300,
		MaxHeight: 300,
		Formats:   []string{"jpg", "jpeg", "png", "webp"},
	}
	// CategoryIconReplacement is used when an existing icon is swapped out.
	// Replacements have always been stored smaller than first uploads.
	CategoryIconReplacement = Profile{
		Folder:    "AdoptNest/CategoryIcons",
		MaxWidth:  200,
		MaxHeight: 200,
		Formats:   []string{"jpg", "jpeg", "png", "webp"},
	}
)

func (p Profile) allows(ext string) bool {
	for _, f := range p.Formats {
		if f == ext {
			return true
		}
	}
	return false
}
