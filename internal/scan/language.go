package scan

import (
	"path/filepath"
	"strings"
)

// languageByExtension is the built-in extension-to-language table (spec
// section 6). Unknown extensions yield no language tag; the file is still
// scanned.
var languageByExtension = map[string]string{
	".ts":     "typescript",
	".tsx":    "typescript",
	".js":     "javascript",
	".jsx":    "javascript",
	".mjs":    "javascript",
	".cjs":    "javascript",
	".py":     "python",
	".pyi":    "python",
	".rs":     "rust",
	".go":     "go",
	".java":   "java",
	".cs":     "csharp",
	".cpp":    "cpp",
	".cc":     "cpp",
	".cxx":    "cpp",
	".hpp":    "cpp",
	".c":      "c",
	".h":      "c",
	".php":    "php",
	".rb":     "ruby",
	".swift":  "swift",
	".kt":     "kotlin",
	".kts":    "kotlin",
	".scala":  "scala",
	".html":   "html",
	".htm":    "html",
	".css":    "css",
	".scss":   "css",
	".sass":   "css",
	".sql":    "sql",
	".sh":     "shell",
	".bash":   "shell",
	".zsh":    "shell",
	".md":     "markdown",
	".markdown": "markdown",
	".yaml":   "yaml",
	".yml":    "yaml",
	".json":   "json",
	".toml":   "toml",
	".xml":    "xml",
	".lua":    "lua",
	".dart":   "dart",
	".ex":     "elixir",
	".exs":    "elixir",
	".hs":     "haskell",
	".clj":    "clojure",
	".r":      "r",
	".m":      "objective-c",
	".proto":  "protobuf",
}

// DetectLanguage returns the language tag for a path's extension, or ""
// when the extension is unrecognized.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return languageByExtension[ext]
}
