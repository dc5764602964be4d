package harvest

import (
	"path"
	"path/filepath"
	"strings"
)

// OutputPath maps (hostname, requestPath) to the directory and filename
// the response body is written under. Hosts are bucketed two levels deep
// by their first two characters so no single directory grows unbounded;
// the bucket directories are shared by many hostnames.
func OutputPath(root, hostname, requestPath string) (dir, file string) {
	file = path.Base(requestPath)
	if file == "" || file == "/" || file == "." || !strings.Contains(file, ".") {
		// Directory-style and extensionless paths are index requests.
		file = "index.html"
	}

	runes := []rune(hostname)
	first, second := "_", "_"
	if len(runes) > 0 {
		first = strings.ToLower(string(runes[0]))
	}
	if len(runes) > 1 {
		second = strings.ToLower(string(runes[1]))
	}

	dir = filepath.Join(root, first, second, hostname, path.Dir(requestPath))
	return dir, file
}

// OutputFilePath is the absolute path OutputPath resolves to.
func OutputFilePath(root, hostname, requestPath string) string {
	dir, file := OutputPath(root, hostname, requestPath)
	return filepath.Join(dir, file)
}
