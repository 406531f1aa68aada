// Package pager maps fixed-size page numbers onto a backing file, with a
// direct-mapped in-memory cache and explicit write-back. It is the only
// component in this repository that blocks on I/O.
package pager

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	// PageSize is the fixed size, in bytes, of every page in the file.
	PageSize = 4096
	// TableMaxPages bounds how many pages the cache (and therefore the
	// file) may ever hold. There is no page reclamation, so this is also
	// the lifetime capacity of a database file.
	TableMaxPages = 100
)

var (
	// ErrCorruptFile is returned by Open when the file length is not a
	// whole multiple of PageSize.
	ErrCorruptFile = errors.New("pager: file length is not a multiple of page size")
	// ErrPagerFull is returned by GetPage/AllocatePage when a page number
	// at or beyond TableMaxPages is requested.
	ErrPagerFull = errors.New("pager: page number exceeds table max pages")
	// ErrNullPage is returned by Flush when asked to flush a slot that was
	// never loaded.
	ErrNullPage = errors.New("pager: cannot flush an empty page slot")
	// ErrIOError wraps any underlying read/write/seek/close failure.
	ErrIOError = errors.New("pager: io error")
)

// Page is a single fixed-size buffer, the unit of both the on-disk file and
// the in-memory cache.
type Page struct {
	Data [PageSize]byte
}

// Pager owns the backing file and a direct-mapped cache of up to
// TableMaxPages page buffers. It never evicts: the working set of a
// tutorial-scale engine like this one always fits in TableMaxPages slots.
type Pager struct {
	fs       afero.Fs
	file     afero.File
	numPages uint32
	pages    [TableMaxPages]*Page
	log      *logrus.Entry
}

// Open opens path for read/write through fs, creating it if absent, and
// computes the page count from the file's length. fs is almost always
// afero.NewOsFs(); tests use afero.NewMemMapFs() to avoid touching disk.
func Open(fs afero.Fs, path string) (*Pager, error) {
	log := logrus.WithFields(logrus.Fields{"component": "pager", "path": path})

	f, err := fs.OpenFile(path, pagerOpenFlags(), 0600)
	if err != nil {
		return nil, fmt.Errorf("pager: open %q: %w", path, errors.Join(ErrIOError, err))
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("pager: stat %q: %w", path, errors.Join(ErrIOError, err))
	}
	fileLength := fi.Size()
	if fileLength%PageSize != 0 {
		_ = f.Close()
		log.WithField("file_length", fileLength).Error("corrupt file: length is not a multiple of page size")
		return nil, fmt.Errorf("pager: %q: length %d is not a multiple of page size %d: %w",
			path, fileLength, PageSize, ErrCorruptFile)
	}

	p := &Pager{
		fs:       fs,
		file:     f,
		numPages: uint32(fileLength / PageSize),
		log:      log,
	}
	log.WithField("num_pages", p.numPages).Debug("pager opened")
	return p, nil
}

// OpenFile opens path on the real filesystem. It is a convenience wrapper
// around Open(afero.NewOsFs(), path) for production callers.
func OpenFile(path string) (*Pager, error) {
	return Open(afero.NewOsFs(), path)
}

// NumPages reports how many pages currently exist, counting both on-disk
// pages and pages allocated but not yet flushed.
func (p *Pager) NumPages() uint32 {
	return p.numPages
}

// GetPage returns the cached buffer for pageNum, loading it from disk on
// first access. A page beyond the on-disk extent but below numPages is
// returned uninitialized: the caller is expected to initialize it as a
// fresh node. This is the only blocking point in the storage engine.
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if pageNum >= TableMaxPages {
		p.log.WithField("page_num", pageNum).Error("page number exceeds table max pages")
		return nil, fmt.Errorf("pager: GetPage(%d): %w", pageNum, ErrPagerFull)
	}

	if p.pages[pageNum] == nil {
		page := &Page{}
		onDiskPages := uint32((p.diskFileLength() + PageSize - 1) / PageSize)
		if pageNum < onDiskPages {
			if err := p.readPageFromDisk(pageNum, page); err != nil {
				return nil, err
			}
		}
		p.pages[pageNum] = page
	}

	if pageNum >= p.numPages {
		p.numPages = pageNum + 1
	}
	return p.pages[pageNum], nil
}

// AllocatePage reserves the next unused page number and installs a fresh,
// zeroed buffer for it in the cache. The caller must initialize the page
// (InitializeLeafNode / InitializeInternalNode) before relying on its
// contents.
func (p *Pager) AllocatePage() (uint32, error) {
	next := p.NextUnusedPageNum()
	if next >= TableMaxPages {
		return 0, fmt.Errorf("pager: AllocatePage: %w", ErrPagerFull)
	}
	p.pages[next] = &Page{}
	p.numPages = next + 1
	p.log.WithField("page_num", next).Debug("allocated page")
	return next, nil
}

// NextUnusedPageNum returns the page number that the next AllocatePage call
// will hand out. There is no free list: allocation is tail-only.
func (p *Pager) NextUnusedPageNum() uint32 {
	return p.numPages
}

// Flush writes the cached contents of pageNum back to the file at the
// correct offset.
func (p *Pager) Flush(pageNum uint32) error {
	page := p.pages[pageNum]
	if page == nil {
		return fmt.Errorf("pager: Flush(%d): %w", pageNum, ErrNullPage)
	}

	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		p.log.WithField("page_num", pageNum).WithError(err).Error("seek failed during flush")
		return fmt.Errorf("pager: seek page %d: %w", pageNum, errors.Join(ErrIOError, err))
	}
	n, err := p.file.Write(page.Data[:])
	if err != nil {
		p.log.WithField("page_num", pageNum).WithError(err).Error("write failed during flush")
		return fmt.Errorf("pager: write page %d: %w", pageNum, errors.Join(ErrIOError, err))
	}
	if n != PageSize {
		return fmt.Errorf("pager: short write on page %d (%d of %d bytes): %w", pageNum, n, PageSize, ErrIOError)
	}
	return nil
}

// FlushAll flushes every loaded page in [0, NumPages) in order.
func (p *Pager) FlushAll() error {
	for i := uint32(0); i < p.numPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes every loaded page and releases the file handle.
func (p *Pager) Close() error {
	if err := p.FlushAll(); err != nil {
		return err
	}
	if err := p.file.Close(); err != nil {
		return fmt.Errorf("pager: close: %w", errors.Join(ErrIOError, err))
	}
	p.log.Debug("pager closed")
	return nil
}

func (p *Pager) diskFileLength() int64 {
	fi, err := p.file.Stat()
	if err != nil {
		return 0
	}
	return fi.Size()
}

func (p *Pager) readPageFromDisk(pageNum uint32, page *Page) error {
	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		p.log.WithField("page_num", pageNum).WithError(err).Error("seek failed during load")
		return fmt.Errorf("pager: seek page %d: %w", pageNum, errors.Join(ErrIOError, err))
	}
	if _, err := io.ReadFull(p.file, page.Data[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		p.log.WithField("page_num", pageNum).WithError(err).Error("read failed during load")
		return fmt.Errorf("pager: read page %d: %w", pageNum, errors.Join(ErrIOError, err))
	}
	return nil
}
