// Package assets provides the stylesheets and the syntax-highlighting archive
// bundled into docgrinder.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from the go:embed filesystem
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// # Highlight Archive
//
// highlight.zip holds one chroma stylesheet per bundled theme under
// styles/. It is extracted into the document tree on first run (see the
// root package's Bootstrapper) and linked from web output. ArchiveSource
// abstracts where the archive comes from: EmbeddedArchive (default) or
// FileArchive (user override). Regenerate it with go generate.
//
// # Directory Structure
//
// A custom asset directory mirrors the embedded layout:
//
//	{basePath}/
//	└── styles/
//	    ├── web.css     # base stylesheet for HTML output
//	    └── print.css   # base stylesheet for PDF output
package assets
