package entity

// Page is a rendered document together with the hash of its content.
// The hash doubles as the ETag.
type Page struct {
	Content string
	Hash    string
}
