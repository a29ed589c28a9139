package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fstrlit/internal/diag"
	"fstrlit/internal/logging"
	"fstrlit/internal/source"
)

// FileExt is the extension of literal files.
const FileExt = ".fstr"

// FileResult содержит результат разбора одного файла каталога.
type FileResult struct {
	Path string
	// File is nil when the file could not be loaded.
	File     *source.File
	Literals []Literal
	Bag      *diag.Bag
	// Cached reports that diagnostics came from the disk cache; Literals
	// is empty then.
	Cached bool
}

type DirResult struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *DirResult) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// ListFiles возвращает отсортированный список всех *.fstr файлов в директории.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, FileExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir разбирает все *.fstr файлы каталога на opts.Jobs воркерах.
// Results are sorted by path. Unreadable files get an IO5001 diagnostic
// instead of failing the run; only cancellation is returned as an error.
func ParseDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	log := logging.FromContext(ctx)
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return &DirResult{FileSet: fileSet}, nil
	}
	emitQueued(opts.Progress, files)

	// FileSet не потокобезопасен: загружаем последовательно
	loaded := make([]*source.File, len(files))
	loadErrors := make(map[string]error)
	for i, path := range files {
		start := time.Now()
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		file, err := loadFile(ctx, fileSet, path, opts)
		if err != nil {
			loadErrors[path] = err
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
			continue
		}
		loaded[i] = file
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))
	log.Debug("parsing directory", logging.FieldDir, dir, logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(loadErrorDiagnostic(loadErr))
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}
			res, err := parseOne(gctx, path, loaded[i], opts)
			if err != nil {
				emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
				return err
			}
			res.Path = path
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &DirResult{FileSet: fileSet, Files: results}, err
	}
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusDone})
	return &DirResult{FileSet: fileSet, Files: results}, nil
}

// parseOne parses a loaded file, consulting the cache in diagnostics-only runs.
func parseOne(ctx context.Context, path string, file *source.File, opts Options) (FileResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()
	useCache := opts.DiagnosticsOnly && opts.Cache != nil

	var key Digest
	if useCache {
		var err error
		key, err = cacheKey(file, opts)
		if err != nil {
			useCache = false
		} else {
			var payload DiskPayload
			hit, err := opts.Cache.Get(key, &payload)
			switch {
			case err != nil:
				log.Warn("cache read failed", logging.FieldPath, path, logging.FieldError, err)
			case hit:
				log.Debug("cache hit", logging.FieldPath, path, logging.FieldHash, key.Short())
				emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusCached, Elapsed: time.Since(start)})
				return FileResult{File: file, Bag: payloadToBag(file, &payload, opts.MaxDiagnostics), Cached: true}, nil
			default:
				log.Debug("cache miss", logging.FieldPath, path, logging.FieldHash, key.Short())
			}
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	literals, bag, err := parseLiterals(ctx, file, opts)
	if err != nil {
		return FileResult{}, err
	}
	if useCache {
		if err := opts.Cache.Put(key, literalsToPayload(file, opts.mode(), literals)); err != nil {
			log.Warn("cache write failed", logging.FieldPath, path, logging.FieldError, err)
		}
	}
	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusDone, Elapsed: time.Since(start)})
	return FileResult{File: file, Literals: literals, Bag: bag}, nil
}
