package models

// Kind names an entity type exposed by the admin surface.
type Kind string

const (
	KindGenre        Kind = "genre"
	KindLanguage     Kind = "language"
	KindAuthor       Kind = "author"
	KindBook         Kind = "book"
	KindBookInstance Kind = "bookinstance"
	KindMyModelName  Kind = "mymodelname"
)

// Kinds lists every entity kind in registration order.
var Kinds = []Kind{KindGenre, KindLanguage, KindAuthor, KindBook, KindBookInstance, KindMyModelName}
