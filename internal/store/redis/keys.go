package redis

const (
	// KeyPrefix namespaces every key this service writes.
	KeyPrefix = "cocktails:"
)

// Key returns the namespaced Redis key for a collection key.
func Key(name string) string {
	return KeyPrefix + name
}
