// Package docgrinder converts a directory of Markdown and AsciiDoc documents
// into a web edition (HTML5) and a print edition (PDF).
//
// # Quick Start
//
//	report, err := docgrinder.Run(ctx, docgrinder.RunConfig{
//	    InputDir:  "./docs",
//	    Bootstrap: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range report.Conversions {
//	    fmt.Println(c.Backend, len(c.Artifacts))
//	}
//
// Output lands in a dist directory next to the input directory, mirroring
// the document tree: docs/guide/intro.md becomes dist/guide/intro.html and
// dist/guide/intro.pdf.
//
// # Pipeline
//
//  1. Bootstrap: extract the highlight asset archive into docs/highlight
//     unless that directory already exists (once per tree)
//  2. html5: render every document with linked syntax highlighting, then
//     mirror docs/highlight into dist so theme stylesheets resolve
//  3. pdf: render every document with inline highlighting and print it
//     through headless Chrome (go-rod)
//
// # Safe Mode
//
// SafeModeUnsafe, the default, trusts documents to reference any file. Every
// other mode removes image and link references that resolve outside the
// input directory.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). Set ROD_BROWSER_BIN to use
// a preinstalled binary and ROD_NO_SANDBOX=1 in containers and CI.
package docgrinder
