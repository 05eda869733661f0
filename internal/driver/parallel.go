package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"stepcheck/internal/diag"
	"stepcheck/internal/source"
	"stepcheck/internal/trace"
)

// DirResult содержит результат проверки одного файла каталога.
type DirResult struct {
	Path   string        // путь файла, как его нашёл обход каталога
	FileID source.FileID // ID файла в общем FileSet
	Result *Result
}

// ListFiles возвращает отсортированный список файлов с подходящими
// расширениями (без учёта регистра).
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// ValidateDir проверяет все подходящие файлы каталога параллельно.
// Результаты идут в порядке путей; файл, который не удалось прочитать,
// получает IO-диагностику и не прерывает остальные. jobs <= 0 означает
// GOMAXPROCS.
func ValidateDir(ctx context.Context, dir string, opts Options, jobs int, sink ProgressSink) (*source.FileSet, []DirResult, error) {
	files, err := ListFiles(dir, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "validate-dir")
	span.WithFiles(len(files))

	// FileSet не потокобезопасен на запись: загружаем всё заранее.
	results := make([]DirResult, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		emit(sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			id = fileSet.AddVirtual(path, nil)
			loadErrors[i] = loadErr
		}
		results[i] = DirResult{Path: path, FileID: id}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range results {
		g.Go(func() (err error) {
			entry := &results[i]
			defer func() {
				if r := recover(); r != nil {
					dumpRing(gctx)
					err = fmt.Errorf("panic while validating %s: %v\n%s", entry.Path, r, debug.Stack())
				}
			}()

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				entry.Result = loadFailure(fileSet, entry.FileID, loadErr, opts)
				trace.ProgressFrom(gctx).FileDone(0, entry.Result.Bag.Len())
				emit(sink, Event{File: entry.Path, Stage: StageLoad, Status: StatusError, Diagnostics: 1, Err: loadErr})
				return nil
			}

			start := time.Now()
			emit(sink, Event{File: entry.Path, Stage: StageParse, Status: StatusWorking})
			fileOpts := opts
			fileOpts.Observer = stageObserver(opts.Observer, sink, entry.Path)
			entry.Result = validateLoaded(gctx, fileSet, entry.FileID, fileOpts)

			status := StatusDone
			if !entry.Result.Valid() {
				status = StatusInvalid
			}
			emit(sink, Event{
				File:        entry.Path,
				Stage:       StageSema,
				Status:      status,
				Diagnostics: entry.Result.Bag.Len(),
				Cached:      entry.Result.Cached,
				Elapsed:     time.Since(start),
			})
			return nil
		})
	}

	err = g.Wait()
	span.End("")
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// stageObserver forwards the start of sema to the progress sink and keeps
// the caller's observer working.
func stageObserver(next PhaseObserver, sink ProgressSink, path string) PhaseObserver {
	if sink == nil {
		return next
	}
	return func(ev PhaseEvent) {
		if ev.Name == PhaseSema && ev.Status == PhaseStart {
			emit(sink, Event{File: path, Stage: StageSema, Status: StatusWorking})
		}
		next.notify(ev)
	}
}

func loadFailure(fs *source.FileSet, id source.FileID, err error, opts Options) *Result {
	res := &Result{
		FileSet: fs,
		File:    fs.Get(id),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	res.Bag.Add(diag.New(diag.KindIO, diag.IOLoadFileError, source.Span{File: id},
		"failed to load file: "+err.Error()))
	return res
}

// dumpRing prints the in-memory trace of a crashed run to stderr.
func dumpRing(ctx context.Context) {
	ring := trace.RingOf(trace.FromContext(ctx))
	if ring == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "--- trace ring buffer ---")
	if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
		fmt.Fprintf(os.Stderr, "trace dump failed: %v\n", err)
	}
}
