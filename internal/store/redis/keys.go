package redis

const (
	// KeyPrefix namespaces every linker key in a shared Redis database
	KeyPrefix = "linker:"
)

// Key returns the Redis key for a persisted store key
func Key(name string) string {
	return KeyPrefix + name
}
