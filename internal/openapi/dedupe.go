package openapi

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bgricker/specrelease/internal/report"
)

// Methods lists the operation keys of a path item in canonical order. The
// order decides which duplicate keeps its operationId.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

var (
	methodSuffix = regexp.MustCompile(`_(get|put|post|delete|options|head|patch|trace)$`)
	nonAlnum     = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// DedupeOperationIDs makes every operationId in the document unique. Paths
// are walked in stored order and methods in canonical order; the first
// occurrence of an id is kept and later ones are renamed in place. Entries
// that are not objects, and operations without a string operationId, are
// skipped.
func (d *Document) DedupeOperationIDs() []report.Rename {
	renames := []report.Rename{}
	seen := make(map[string]struct{})

	paths, ok := d.root.Get("paths")
	if !ok {
		return renames
	}
	pathsObj, ok := paths.(*Object)
	if !ok {
		return renames
	}

	for _, path := range pathsObj.Keys() {
		item, _ := pathsObj.Get(path)
		pathItem, ok := item.(*Object)
		if !ok {
			continue
		}
		for _, method := range Methods {
			raw, ok := pathItem.Get(method)
			if !ok {
				continue
			}
			operation, ok := raw.(*Object)
			if !ok {
				continue
			}
			idVal, _ := operation.Get("operationId")
			id, ok := idVal.(string)
			if !ok || id == "" {
				continue
			}

			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				continue
			}

			candidate := renameCandidate(id, method, path, seen)
			operation.Set("operationId", candidate)
			seen[candidate] = struct{}{}
			renames = append(renames, report.Rename{
				Path:   path,
				Method: strings.ToUpper(method),
				Old:    id,
				New:    candidate,
			})
		}
	}

	return renames
}

// renameCandidate picks a new id for a duplicate. A trailing method token is
// swapped for the current method when that yields an unused id; otherwise the
// method and sanitized path are appended, with a numeric suffix from 2 on
// until the id is unused.
func renameCandidate(id, method, path string, seen map[string]struct{}) string {
	preferred := methodSuffix.ReplaceAllLiteralString(id, "_"+method)
	if preferred != id {
		if _, used := seen[preferred]; !used {
			return preferred
		}
	}

	base := fmt.Sprintf("%s_%s_%s", id, method, SanitizePath(path))
	candidate := base
	for suffix := 2; ; suffix++ {
		if _, used := seen[candidate]; !used {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, suffix)
	}
}

// SanitizePath turns a path template into an identifier fragment.
func SanitizePath(path string) string {
	cleaned := strings.Trim(nonAlnum.ReplaceAllString(path, "_"), "_")
	if cleaned == "" {
		return "root"
	}
	return cleaned
}
