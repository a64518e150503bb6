package cache

import "fmt"

// Version namespaces all cache entries. Bumping it invalidates every prior
// entry without deleting anything.
const Version = "v1"

// Key builds the document key for a (version, topic, style) tuple. Pure and
// deterministic: the same inputs always yield the same string.
func Key(version, topicID, style string) string {
	return fmt.Sprintf("mystery:%s:%s:%s", version, topicID, style)
}

// LockKey is the advisory lock slot for the same tuple. Lives in a distinct
// namespace via the suffix so it can never collide with a document key.
func LockKey(version, topicID, style string) string {
	return Key(version, topicID, style) + ":lock"
}
