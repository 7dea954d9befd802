package utils

// LastIndexFunc returns the highest index i for which pred(s[i]) is true,
// or -1 if there is none. The standard slices package only scans forward.
func LastIndexFunc[T any](s []T, pred func(T) bool) int {
	for i := len(s) - 1; i >= 0; i-- {
		if pred(s[i]) {
			return i
		}
	}
	return -1
}
