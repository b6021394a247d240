package model

// Draft is the in-progress set of form values for one booking attempt. All
// values are strings, counts included, until the draft is handed off.
type Draft map[string]string

func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Equal reports whether both drafts hold the same keys and values.
func (d Draft) Equal(other Draft) bool {
	if len(d) != len(other) {
		return false
	}
	for k, v := range d {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
