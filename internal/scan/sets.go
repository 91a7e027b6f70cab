package scan

// skipDirs are directory names pruned from every walk: version-control
// metadata, dependency trees, build output, editor state.
var skipDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".venv":        true,
	"venv":         true,
	".tox":         true,
	".idea":        true,
	".vscode":      true,
	"target":       true,
	"out":          true,
	"__pycache__":  true,
	"vendor":       true,
	".next":        true,
	".cache":       true,
}

// binaryExts is the denylist of extensions never treated as text.
var binaryExts = map[string]bool{
	".png":   true,
	".jpg":   true,
	".jpeg":  true,
	".gif":   true,
	".pdf":   true,
	".zip":   true,
	".gz":    true,
	".bz2":   true,
	".7z":    true,
	".tar":   true,
	".woff":  true,
	".woff2": true,
	".ttf":   true,
}

// includeExts marks recognized code, config and doc extensions. Files
// outside this set are still scanned; the set only drives the ranking
// bonus when no keywords are given.
var includeExts = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true,
	".java": true, ".go": true, ".rb": true, ".rs": true,
	".cpp": true, ".cc": true, ".c": true, ".h": true, ".hpp": true,
	".cs": true, ".kt": true, ".swift": true, ".php": true, ".scala": true,
	".m": true, ".mm": true, ".sh": true, ".bash": true, ".ps1": true,
	".yml": true, ".yaml": true, ".json": true, ".toml": true,
	".gradle": true, ".md": true,
}
