package imageset

// Sequence is an ordered list of images.
type Sequence []Image

// Names returns the ordered file names.
func (s Sequence) Names() []string {
	out := make([]string, len(s))
	for i, img := range s {
		out[i] = img.Name
	}
	return out
}

// DataURLs returns one data URL per slot, padding with empty-payload URLs up
// to minSlots entries so the page script can always index the first minSlots slots.
func (s Sequence) DataURLs(minSlots int) []string {
	n := max(len(s), minSlots)
	out := make([]string, n)
	for i := range out {
		out[i] = s.DataURL(i)
	}
	return out
}

// DataURL returns the data URL at index i. Out-of-range indices yield a data
// URL with an empty payload instead of panicking.
func (s Sequence) DataURL(i int) string {
	if i < 0 || i >= len(s) {
		return "data:" + defaultMIMEType + ";base64,"
	}
	return s[i].DataURL()
}
