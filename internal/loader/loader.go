// Package loader implements the one-shot batch load: wipe the recipe
// collection, then insert every JSON source file's array of recipe
// documents, file by file in lexicographic path order.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"recipedex/internal/storage"
	"recipedex/pkg/model"
)

// Summary reports what a load run inserted.
type Summary struct {
	Files   int
	Recipes int
}

// Run wipes the collection and loads every *.json file under dir. The load
// is not transactional across files: a failure partway through leaves the
// collection with only the files processed so far.
func Run(ctx context.Context, store storage.RecipeStore, dir string) (*Summary, error) {
	files, err := sourceFiles(dir)
	if err != nil {
		return nil, err
	}

	if err := store.DeleteAll(ctx); err != nil {
		return nil, model.WrapDbError(err)
	}
	slog.Info("Cleared recipe collection")

	summary := &Summary{}
	for _, path := range files {
		docs, err := readSourceFile(path)
		if err != nil {
			return nil, err
		}

		if err := store.InsertMany(ctx, docs); err != nil {
			return nil, model.WrapDbError(err)
		}

		slog.Info("Loaded recipe file", "file", path, "recipes", len(docs))
		summary.Files++
		summary.Recipes += len(docs)
	}

	return summary, nil
}

// sourceFiles lists the *.json entries of dir sorted lexicographically by
// path, which fixes the load order.
func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, model.WrapIOError(err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// readSourceFile parses one source file: a JSON array of recipe-shaped
// documents. Documents are inserted as-is; the query service validates
// shapes on read.
func readSourceFile(path string) ([]map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapIOError(err)
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, model.WrapIOError(fmt.Errorf("parsing %s: %w", path, err))
	}

	return docs, nil
}
