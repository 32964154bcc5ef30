// Package imageset loads base64-encoded image files and orders them for
// embedding into the generated page.
package imageset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Defaults matching the shipped image set.
const (
	DefaultExtension = ".b64"
	DefaultLeadImage = "giphy.gif.b64"
)

// ErrReadImages wraps any I/O failure other than a missing directory.
var ErrReadImages = errors.New("failed to read images")

// Image is one encoded image asset. Payload is base64 text with line breaks
// removed so it fits in a quoted string literal.
type Image struct {
	Name     string
	Payload  string
	MIMEType string
}

// DataURL returns the image as a data: URL.
func (img Image) DataURL() string {
	return "data:" + img.MIMEType + ";base64," + img.Payload
}

// LoadResult is the outcome of Load.
type LoadResult struct {
	Images map[string]Image
	// Missing is set when the directory does not exist. This is a degraded
	// build, not a failure.
	Missing bool
}

// Load reads every file in dir whose name ends with ext. Subdirectories are
// not descended into.
func Load(dir, ext string) (*LoadResult, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &LoadResult{Images: map[string]Image{}, Missing: true}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrReadImages, err)
	}

	images := make(map[string]Image, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304 -- entry from ReadDir
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadImages, name, err)
		}
		images[name] = Image{
			Name:     name,
			Payload:  Sanitize(string(data)),
			MIMEType: MIMEType(name, ext),
		}
	}

	return &LoadResult{Images: images}, nil
}

// Sanitize strips carriage returns and line feeds.
func Sanitize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// Order puts the image named lead first and the rest in lexicographic order
// by name. When lead is absent the order is purely lexicographic.
func Order(images map[string]Image, lead string) Sequence {
	names := make([]string, 0, len(images))
	for name := range images {
		if name != lead {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	seq := make(Sequence, 0, len(images))
	if img, ok := images[lead]; ok {
		seq = append(seq, img)
	}
	for _, name := range names {
		seq = append(seq, images[name])
	}
	return seq
}
