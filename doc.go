// Package valentine assembles a self-contained Valentine greeting page: a
// set of base64-encoded images and a small confetti library are inlined into
// one HTML file that opens from disk without network access.
//
// # Quick Start
//
// Build the page with the defaults and write it next to the inputs:
//
//	asm, err := valentine.NewAssembler()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := asm.Write(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Wrote %s (%d bytes)\n", result.Path, result.Size)
//
// # Inputs
//
// The defaults read images from images_b64/*.b64 and the confetti library
// from libs/confetti.min.js, relative to the working directory:
//
//	images_b64/
//	├── giphy.gif.b64   (shown first)
//	├── 1.gif.b64
//	└── ...
//	libs/
//	└── confetti.min.js
//	note.md              (optional, rendered under the buttons)
//
// A missing image directory or script is not an error: the page is still
// produced with empty image slots or an empty script block. A directory that
// holds some images but fewer than the page shows fails with ErrTooFewImages.
//
// # Page Behaviour
//
// The page starts with the lead image and a question. Each click on the
// decline button shows the next image, grows the accept button by 20px in
// both directions (6px font) and changes the decline label, up to five times.
// Accepting shows the final image, replaces the question with a celebration,
// hides the buttons and fires confetti. A failed image load falls back to the
// final image.
//
// # Configuration
//
// Use functional options to customize the assembler:
//
//	asm, err := valentine.NewAssembler(
//	    valentine.WithImageDir("photos"),
//	    valentine.WithOutputPath("public/index.html"),
//	    valentine.WithStyle("midnight"),
//	    valentine.WithPage(text),
//	)
//
// # Verification
//
// Verifier drives a generated page in headless Chrome (go-rod) and checks
// that the rendered state matches the expected state after every click:
//
//	v := valentine.NewVerifier(30 * time.Second)
//	defer v.Close()
//	report, err := v.Verify(ctx, result.Path, result)
//
// Set ROD_BROWSER_BIN to use a pre-installed Chrome and ROD_NO_SANDBOX=1 in
// containers.
package valentine
