package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docgrinder [flags] <document-root-dir>")
	fmt.Fprintln(w, "       docgrinder version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every Markdown and AsciiDoc file under a directory to HTML")
	fmt.Fprintln(w, "and PDF. Output goes to a sibling directory (default: dist).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -o, --output-dir <name>     Output directory name (default: dist)")
	fmt.Fprintln(w, "      --safe-mode <s>         unsafe, safe, server, secure (default: unsafe)")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory holding styles/{web,print}.css")
	fmt.Fprintln(w, "  -t, --timeout <d>           PDF page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --no-bootstrap          Do not extract highlight assets")
	fmt.Fprintln(w, "      --highlight-archive <f> Highlight asset zip (default: bundled)")
	fmt.Fprintln(w, "      --highlight-dir <name>  Highlight directory inside the input (default: highlight)")
	fmt.Fprintln(w, "      --theme <name>          Theme for html5 (default: monokai)")
	fmt.Fprintln(w, "      --print-theme <name>    Theme for pdf (default: --theme)")
	fmt.Fprintln(w, "      --list-themes           List available themes and exit. Bundled themes")
	fmt.Fprintln(w, "                              are linked in html5; others are inlined")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --print-config          Print the effective config as YAML and exit")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logs")
	fmt.Fprintln(w, "  -h, --help                  Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "   0  success")
	fmt.Fprintln(w, "   1  conversion failure or other error")
	fmt.Fprintln(w, "  -2  missing argument or invalid flag")
	fmt.Fprintln(w, "  -3  argument is not a directory")
	fmt.Fprintln(w, "  -4  highlight directory blocked by a file")
	fmt.Fprintln(w, "  -5  highlight archive extraction failed")
	fmt.Fprintln(w, "  -6  highlight archive not found")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN             Chrome/Chromium binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1            Disable the Chrome sandbox (Docker/CI)")
}
