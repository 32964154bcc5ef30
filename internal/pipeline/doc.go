// Package pipeline renders the standalone page.
//
// Stages:
//   - optional markdown note to HTML fragment via Goldmark
//   - page template rendering (html/template) with inline style, the
//     auxiliary script inlined verbatim, and the interaction script data
//   - structural validation of the result via golang.org/x/net/html
//
// Loading inputs and writing the output file belong to the root package;
// this package only turns values into bytes.
package pipeline
