package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"stepcheck/internal/diag"
	"stepcheck/internal/sema"
	"stepcheck/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// Digest identifies a cached result: file content plus the options that
// change which diagnostics are produced.
type Digest [32]byte

// DiskCache хранит результаты проверки файлов на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one cache entry stores.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Diagnostics []cachedDiagnostic
	Sema        sema.Result
}

type cachedSpan struct {
	Start uint32
	End   uint32
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

// cachedArg keeps the dynamic type of a diagnostic argument explicit so
// the value decodes back to the same Go type.
type cachedArg struct {
	Key  string
	Type uint8 // 0 string, 1 uint64, 2 int
	Str  string
	Uint uint64
	Int  int64
}

type cachedDiagnostic struct {
	Kind      uint8
	Severity  uint8
	Code      uint16
	Message   string
	Primary   cachedSpan
	Expected  []string
	HasFound  bool
	FoundType string
	FoundVal  string
	FoundChar bool
	Notes     []cachedNote
	Args      []cachedArg
}

// OpenDiskCache opens (and creates) a cache directory. An empty dir selects
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог по первым двум символам, чтобы не держать тысячи файлов в одном месте.
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// lookup treats unreadable entries as misses.
func (c *DiskCache) lookup(key Digest) (*DiskPayload, bool) {
	var payload DiskPayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		return nil, false
	}
	return &payload, true
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheKey mixes the content hash with every option that changes output.
func cacheKey(f *source.File, opts Options) Digest {
	h := sha256.New()
	h.Write(f.Hash[:])
	var flags [8]byte
	if opts.CheckReferences {
		flags[0] = 1
	}
	if opts.CheckHeader {
		flags[1] = 1
	}
	if opts.OnlyHeader {
		flags[2] = 1
	}
	binary.LittleEndian.PutUint16(flags[4:], diskCacheSchemaVersion)
	h.Write(flags[:])
	var limits [16]byte
	binary.LittleEndian.PutUint64(limits[:8], uint64(max(opts.MaxDepth, 0)))        // #nosec G115 -- clamped
	binary.LittleEndian.PutUint64(limits[8:], uint64(max(opts.MaxDiagnostics, 0))) // #nosec G115 -- clamped
	h.Write(limits[:])

	var key Digest
	copy(key[:], h.Sum(nil))
	return key
}

func toCachedSpan(sp source.Span) cachedSpan {
	return cachedSpan{Start: sp.Start, End: sp.End}
}

func (s cachedSpan) span(id source.FileID) source.Span {
	return source.Span{File: id, Start: s.Start, End: s.End}
}

// newPayload snapshots a fresh result for the cache.
func newPayload(res *Result) *DiskPayload {
	p := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   res.File.Path,
		Sema:   res.Sema,
	}
	for _, d := range res.Bag.Items() {
		cd := cachedDiagnostic{
			Kind:     uint8(d.Kind),
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  toCachedSpan(d.Primary),
			Expected: d.Expected,
		}
		if d.Found != nil {
			cd.HasFound = true
			cd.FoundType = d.Found.Type
			cd.FoundVal = d.Found.Value
			cd.FoundChar = d.Found.Char
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Span: toCachedSpan(n.Span), Msg: n.Msg})
		}
		for _, a := range d.Args {
			ca := cachedArg{Key: a.Key}
			switch v := a.Value.(type) {
			case uint64:
				ca.Type, ca.Uint = 1, v
			case int:
				ca.Type, ca.Int = 2, int64(v)
			default:
				ca.Str = fmt.Sprint(v)
			}
			cd.Args = append(cd.Args, ca)
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// restore rebuilds diagnostics for file id; spans are offsets so they stay
// valid for identical content.
func (p *DiskPayload) restore(res *Result, id source.FileID) {
	res.Sema = p.Sema
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Kind:     diag.Kind(cd.Kind),
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  cd.Primary.span(id),
			Expected: cd.Expected,
		}
		if cd.HasFound {
			d.Found = &diag.Found{Type: cd.FoundType, Value: cd.FoundVal, Char: cd.FoundChar}
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: n.Span.span(id), Msg: n.Msg})
		}
		for _, a := range cd.Args {
			var v any
			switch a.Type {
			case 1:
				v = a.Uint
			case 2:
				v = int(a.Int)
			default:
				v = a.Str
			}
			d.Args = append(d.Args, diag.Arg{Key: a.Key, Value: v})
		}
		res.Bag.Add(d)
	}
}
