// Package assets provides the CSS styles and the HTML page template used to
// render the standalone page. Assets can be loaded from embedded files or
// from a custom directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in style and page template)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css     # e.g. midnight.css
//	└── templates/
//	    └── {name}.html    # page.html overrides the page layout
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
