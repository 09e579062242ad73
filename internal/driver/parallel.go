package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"rxguard/internal/diag"
	"rxguard/internal/source"
	"rxguard/internal/syntax"
)

// FileResult is the complete analysis outcome for one file. The tree is
// retained so the fix pipeline can rewrite it without re-parsing.
type FileResult struct {
	Path   string
	FileID source.FileID
	Tree   *syntax.Tree
	Bag    *diag.Bag
}

// Event reports per-file progress during a directory run.
type Event struct {
	Path     string
	Findings int
	Done     bool // true once the file finished, false when it starts
}

// ListSourceFiles returns the analysis targets for a path: the path itself
// when it is a file, otherwise the sorted *.cs files under it.
func ListSourceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return listSourceFiles(path)
}

// listSourceFiles returns the sorted list of all *.cs files under dir.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".cs") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every *.cs file under dir in parallel. Results keep
// the listing order regardless of completion order. A file that fails to
// load still yields a result, carrying an I/O diagnostic instead of a tree.
// When events is non-nil the driver sends one Event per file completion;
// the channel is closed before AnalyzeDir returns.
func AnalyzeDir(ctx context.Context, dir string, opts Options, events chan<- Event) (*source.FileSet, []FileResult, error) {
	if events != nil {
		defer close(events)
	}

	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Loading is serial; FileSet is not safe for concurrent mutation.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Index per file is unique, so no mutex around results. A result is
	// published only whole: the bag is filled and sorted before the
	// assignment, never observable half-built.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				emit(gctx, events, Event{Path: path, Findings: bag.Len(), Done: true})
				return nil
			}

			id := fileIDs[path]
			tree := syntax.Parse(fileSet.Get(id))
			bag := AnalyzeFile(tree, opts)
			results[i] = FileResult{Path: path, FileID: id, Tree: tree, Bag: bag}
			emit(gctx, events, Event{Path: path, Findings: bag.Len(), Done: true})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// AnalyzePath analyzes a single file or a directory tree.
func AnalyzePath(ctx context.Context, path string, opts Options, events chan<- Event) (*source.FileSet, []FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return AnalyzeDir(ctx, path, opts, events)
	}
	if events != nil {
		defer close(events)
	}

	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, err
	}
	tree := syntax.Parse(fileSet.Get(id))
	bag := AnalyzeFile(tree, opts)
	emit(ctx, events, Event{Path: path, Findings: bag.Len(), Done: true})
	return fileSet, []FileResult{{Path: path, FileID: id, Tree: tree, Bag: bag}}, nil
}

func emit(ctx context.Context, events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
