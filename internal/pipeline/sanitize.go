package pipeline

import (
	"regexp"
	"strings"
)

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var closeScript = regexp.MustCompile(`(?i)</(script)`)

// sanitizeScript neutralises "</script" and "<!--" so inlined code can neither
// close its own <script> element nor switch the HTML tokenizer into the
// double-escaped state. Everything else is kept byte for byte.
func sanitizeScript(js string) string {
	js = strings.ReplaceAll(js, "<!--", `<\!--`)
	if !strings.Contains(js, "</") {
		return js
	}
	return closeScript.ReplaceAllString(js, `<\/$1`)
}
