package testcase

// Reconcile trims or pads parsed so the collection holds exactly req.Count() cases.
// Padding continues the sequence after the parsed cases; a padded id already used
// by a parsed case moves to the next free sequence number.
func Reconcile(parsed []TestCase, req Request) *Collection {
	want := req.Count()

	switch {
	case len(parsed) > want:
		out := make([]TestCase, want)
		copy(out, parsed[:want])
		return NewCollection(out)

	case len(parsed) < want:
		out := make([]TestCase, 0, want)
		out = append(out, parsed...)

		seen := make(map[string]bool, want)
		for _, tc := range parsed {
			seen[tc.ID] = true
		}

		seq := len(parsed) + 1
		for _, tc := range FallbackFrom(req, len(parsed), want-len(parsed)) {
			if seen[tc.ID] {
				tc.ID = nextFreeID(req, seq, seen)
			}
			seen[tc.ID] = true
			seq++
			out = append(out, tc)
		}
		return NewCollection(out)

	default:
		return NewCollection(parsed)
	}
}
