package model

// User is an allow-list entry. Presence of the record grants access.
type User struct {
	ID       int64  `bson:"id"`
	Username string `bson:"username,omitempty"`
	IsAdmin  bool   `bson:"is_admin,omitempty"`
}
