package models

// Entity is implemented by every stored document. The version token is
// managed by the store: it changes on every successful write and is only
// meaningful for equality comparison.
type Entity interface {
	EntityID() string
	EntityVersion() int64
	SetEntityVersion(version int64)
}
