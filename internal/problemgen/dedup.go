package problemgen

// UsedSet remembers which problem keys have been served in the current
// stage. It is not safe for concurrent use.
type UsedSet struct {
	keys  map[string]struct{}
	limit int
}

// NewUsedSet creates a set that clears itself once it holds more than limit
// keys. A non-positive limit disables the cap.
func NewUsedSet(limit int) *UsedSet {
	return &UsedSet{
		keys:  make(map[string]struct{}),
		limit: limit,
	}
}

// Has reports whether key was recorded since the last clear.
func (u *UsedSet) Has(key string) bool {
	_, ok := u.keys[key]
	return ok
}

// Add records key, clearing the whole set if it grows past the limit.
func (u *UsedSet) Add(key string) {
	u.keys[key] = struct{}{}
	if u.limit > 0 && len(u.keys) > u.limit {
		u.Clear()
	}
}

// Clear forgets every recorded key.
func (u *UsedSet) Clear() {
	clear(u.keys)
}

// Len returns the number of recorded keys.
func (u *UsedSet) Len() int {
	return len(u.keys)
}
