package reference

// Type is the publication type of a record. It selects rendering rules.
type Type string

const (
	TypeArticle Type = "article"
	TypeBook    Type = "book"
	TypeWebsite Type = "website"
)

// DefaultType is assigned to imported entries with no category.
const DefaultType = TypeArticle

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}
