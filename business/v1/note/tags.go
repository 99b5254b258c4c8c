package note

const (
	TagRandomThoughts = "random thoughts"
	TagReflection     = "reflection"
	TagEssay          = "essay"

	DefaultTag = TagRandomThoughts
)

// Tags is the closed set offered to whoever writes a note. The store itself accepts any tag.
var Tags = []string{TagRandomThoughts, TagReflection, TagEssay}

// ValidTag reports whether tag is one of Tags
func ValidTag(tag string) bool {
	for _, t := range Tags {
		if t == tag {
			return true
		}
	}
	return false
}
