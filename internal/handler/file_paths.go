package handler

import (
	"os"
	"path/filepath"
	"strings"

	"clip-automator/internal/appdirs"
)

var appDirsResolver = appdirs.Resolve

type downloadRoot struct {
	alias string
	dirs  []string
}

// rootCandidates pairs the resolved app-dir root with its relative
// fallback, so file lookups work both installed and when running from a
// checkout.
func rootCandidates(resolve func(appdirs.Paths) string, fallback string) []string {
	candidates := make([]string, 0, 2)
	if dirs, err := appDirsResolver(); err == nil {
		candidates = append(candidates, resolve(dirs))
	}
	return uniquePaths(append(candidates, fallback)...)
}

func taskRootCandidates() []string {
	return rootCandidates(appdirs.TaskRootFor, appdirs.TaskRootName)
}

func uploadRootCandidates() []string {
	return rootCandidates(appdirs.UploadRootFor, appdirs.UploadRootName)
}

func taskDirCandidates(taskID string) []string {
	roots := taskRootCandidates()
	dirs := make([]string, 0, len(roots))
	for _, root := range roots {
		dirs = append(dirs, filepath.Join(root, taskID))
	}
	return uniquePaths(dirs...)
}

func preferredUploadRoot() string {
	candidates := uploadRootCandidates()
	if len(candidates) == 0 {
		return "uploads"
	}
	return candidates[0]
}

// resolveDownloadPath maps a requested download path onto one of the
// servable roots, rejecting traversal outside them.
func resolveDownloadPath(requested string) (string, bool) {
	requested = strings.TrimSpace(requested)
	requested = strings.TrimPrefix(requested, string(filepath.Separator))
	requested = strings.TrimPrefix(requested, "/")
	if hasParentTraversal(requested) {
		return "", false
	}
	requested = filepath.Clean(requested)
	if requested == "." {
		requested = ""
	}
	requested = filepath.ToSlash(requested)

	roots := []downloadRoot{
		{alias: appdirs.TaskRootName, dirs: taskRootCandidates()},
		{alias: appdirs.UploadRootName, dirs: uploadRootCandidates()},
		{alias: "static", dirs: []string{"static"}},
	}

	matchedAlias := ""
	relativePath := requested
	for _, root := range roots {
		prefix := root.alias + "/"
		if requested == root.alias {
			matchedAlias = root.alias
			relativePath = ""
			break
		}
		if strings.HasPrefix(requested, prefix) {
			matchedAlias = root.alias
			relativePath = strings.TrimPrefix(requested, prefix)
			break
		}
	}

	var fallback string
	for _, root := range roots {
		if matchedAlias != "" && root.alias != matchedAlias {
			continue
		}

		pathToJoin := requested
		if matchedAlias == root.alias {
			pathToJoin = relativePath
		}
		pathToJoin = filepath.FromSlash(pathToJoin)

		for _, rootDir := range root.dirs {
			candidate := filepath.Clean(filepath.Join(rootDir, pathToJoin))
			if !isPathWithinRoot(rootDir, candidate) {
				continue
			}
			if fallback == "" {
				fallback = candidate
			}
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}

	if fallback == "" {
		return "", false
	}
	return fallback, true
}

func uniquePaths(values ...string) []string {
	seen := make(map[string]struct{}, len(values))
	paths := make([]string, 0, len(values))
	for _, value := range values {
		cleaned := strings.TrimSpace(value)
		if cleaned == "" {
			continue
		}
		cleaned = filepath.Clean(cleaned)
		if _, exists := seen[cleaned]; exists {
			continue
		}
		seen[cleaned] = struct{}{}
		paths = append(paths, cleaned)
	}
	return paths
}

func isPathWithinRoot(root, candidate string) bool {
	root = filepath.Clean(root)
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func hasParentTraversal(path string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	for _, part := range strings.Split(normalized, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
