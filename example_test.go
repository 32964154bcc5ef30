package valentine_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-valentine"
)

// Example builds a page from an image directory that does not exist yet.
// The page is still produced, with placeholder image slots.
func Example() {
	dir, err := os.MkdirTemp("", "valentine-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	asm, err := valentine.NewAssembler(
		valentine.WithImageDir(filepath.Join(dir, "images_b64")),
		valentine.WithScriptPath(filepath.Join(dir, "confetti.min.js")),
		valentine.WithNotePath(""),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := asm.Build(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("degraded:", result.Degraded)
	fmt.Println("slots:", len(result.Images))
	// Output:
	// degraded: true
	// slots: 7
}

// Example_pageText shows how to translate the page.
func Example_pageText() {
	text := valentine.DefaultPageText()
	text.Lang = "en"
	text.Question = "Will you be my Valentine?"
	text.AcceptLabel = "Yes"
	text.DeclineLabels = []string{"No", "Are you sure?", "Really sure?", "Really really sure?", "Still no?", "Why not?"}

	_, err := valentine.NewAssembler(valentine.WithPage(text))
	fmt.Println("valid:", err == nil)
	// Output: valid: true
}
