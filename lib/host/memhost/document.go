// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package memhost

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/bureau-foundation/latexplace/lib/codec"
	"github.com/bureau-foundation/latexplace/lib/host"
	"github.com/bureau-foundation/latexplace/lib/pdfbox"
	"github.com/bureau-foundation/latexplace/lib/placement"
)

// fileVersion is the version of the persisted document layout.
const fileVersion = 1

// DefaultJournalDepth is the number of undo steps kept.
const DefaultJournalDepth = 32

// ErrNothingToUndo is returned by Undo on an empty journal.
var ErrNothingToUndo = errors.New("nothing to undo")

// Options configures a Document.
type Options struct {
	// Describe returns the page box of an artifact file. Defaults to
	// reading the first page with pdfbox.
	Describe func(path string) (rect.Rect, error)

	// Bleed is how far a keep-scale, unclipped object's bounds extend
	// beyond its artifact box, in document units.
	Bleed float64

	// JournalDepth bounds the undo journal. Zero means
	// DefaultJournalDepth.
	JournalDepth int

	Logger *slog.Logger
}

type record struct {
	ID         string     `cbor:"id"`
	Name       string     `cbor:"name"`
	Note       string     `cbor:"note"`
	LinkedPath string     `cbor:"linked_path"`
	Matrix     [6]float64 `cbor:"matrix"`
	Box        [4]float64 `cbor:"box"`
	Method     int        `cbor:"method"`
	Anchor     int        `cbor:"anchor"`
	Clip       bool       `cbor:"clip"`
	Hidden     bool       `cbor:"hidden"`
	Locked     bool       `cbor:"locked"`
}

type journalEntry struct {
	Name    string   `cbor:"name"`
	Objects []record `cbor:"objects"`
	NextID  uint64   `cbor:"next_id"`
}

type documentFile struct {
	Version int            `cbor:"version"`
	NextID  uint64         `cbor:"next_id"`
	Objects []record       `cbor:"objects"`
	Journal []journalEntry `cbor:"journal"`
}

// Document is an in-memory host document. It is not safe for
// concurrent use.
type Document struct {
	path    string
	saved   bool
	nextID  uint64
	objects []*record
	journal []journalEntry

	transactionDepth int

	describe     func(string) (rect.Rect, error)
	bleed        float64
	journalDepth int
	logger       *slog.Logger
}

// New returns an empty document that will be saved at path.
func New(path string, options Options) *Document {
	document := &Document{path: path, nextID: 1}
	document.describe = options.Describe
	if document.describe == nil {
		document.describe = describePDF
	}
	document.bleed = options.Bleed
	document.journalDepth = options.JournalDepth
	if document.journalDepth <= 0 {
		document.journalDepth = DefaultJournalDepth
	}
	document.logger = options.Logger
	if document.logger == nil {
		document.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return document
}

// Open loads the document at path. A missing file yields an empty,
// unsaved document.
func Open(path string, options Options) (*Document, error) {
	document := New(path, options)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return document, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	var file documentFile
	if err := codec.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", path, err)
	}
	if file.Version > fileVersion {
		return nil, fmt.Errorf("document %s has version %d, newer than supported %d", path, file.Version, fileVersion)
	}
	document.saved = true
	document.nextID = max(file.NextID, 1)
	document.objects = pointers(file.Objects)
	document.journal = file.Journal
	return document, nil
}

func describePDF(path string) (rect.Rect, error) {
	info, err := pdfbox.Inspect(path)
	if err != nil {
		return rect.Rect{}, err
	}
	box := info.MediaBox
	return rect.Rect{LLx: box.LLx, LLy: box.LLy, URx: box.URx, URy: box.URy}, nil
}

// Save writes the document to its path atomically.
func (d *Document) Save() error {
	file := documentFile{
		Version: fileVersion,
		NextID:  d.nextID,
		Objects: values(d.objects),
		Journal: d.journal,
	}
	data, err := codec.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := writeFileAtomic(d.path, data); err != nil {
		return err
	}
	d.saved = true
	d.logger.Debug("document saved", "document", d.path, "objects", len(d.objects))
	return nil
}

// Path implements host.Document.
func (d *Document) Path() string { return d.path }

// Saved implements host.Document.
func (d *Document) Saved() bool { return d.saved }

// Objects implements host.Document.
func (d *Document) Objects() ([]host.Object, error) {
	objects := make([]host.Object, len(d.objects))
	for i, r := range d.objects {
		objects[i] = &Object{document: d, id: r.ID}
	}
	return objects, nil
}

// Object implements host.Document.
func (d *Document) Object(id string) (host.Object, error) {
	object, err := d.Lookup(id)
	if err != nil {
		return nil, err
	}
	return object, nil
}

// Lookup returns the concrete object with the given ID.
func (d *Document) Lookup(id string) (*Object, error) {
	if d.find(id) == nil {
		return nil, fmt.Errorf("%s: %w", id, host.ErrNotFound)
	}
	return &Object{document: d, id: id}, nil
}

// Place implements host.Document.
func (d *Document) Place(path string, at vec.Vec2) (host.Object, error) {
	box, err := d.describe(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact box of %s: %w", path, err)
	}
	placed := placement.Canonical
	placed[4] = at.X - box.LLx
	placed[5] = box.LLy - at.Y

	r := &record{
		ID:         d.allocateID(),
		Name:       filepath.Base(path),
		LinkedPath: path,
		Matrix:     placed,
		Box:        [4]float64{box.LLx, box.LLy, box.URx, box.URy},
		Method:     int(placement.MethodConform),
		Anchor:     int(placement.BottomLeft),
	}
	d.objects = append(d.objects, r)
	d.logger.Debug("object placed", "item", r.ID, "path", path)
	return &Object{document: d, id: r.ID}, nil
}

// Remove deletes the object with the given ID.
func (d *Document) Remove(id string) error {
	for i, r := range d.objects {
		if r.ID == id {
			d.objects = append(d.objects[:i], d.objects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", id, host.ErrNotFound)
}

// Transaction implements host.Document.
func (d *Document) Transaction(name string, fn func() error) error {
	if d.transactionDepth > 0 {
		return fn()
	}
	before := journalEntry{Name: name, Objects: values(d.objects), NextID: d.nextID}

	err := d.run(before, fn)
	if err != nil {
		d.objects = pointers(before.Objects)
		d.nextID = before.NextID
		d.logger.Debug("transaction rolled back", "document", d.path, "transaction", name, "error", err)
		return err
	}
	d.journal = append(d.journal, before)
	if len(d.journal) > d.journalDepth {
		d.journal = d.journal[len(d.journal)-d.journalDepth:]
	}
	return nil
}

// run calls fn at one deeper transaction level. A panic in fn unwinds
// the level and restores before ahead of propagating.
func (d *Document) run(before journalEntry, fn func() error) error {
	d.transactionDepth++
	defer func() {
		d.transactionDepth--
		if recovered := recover(); recovered != nil {
			d.objects = pointers(before.Objects)
			d.nextID = before.NextID
			panic(recovered)
		}
	}()
	return fn()
}

// Undo restores the state before the most recent transaction and
// returns its name.
func (d *Document) Undo() (string, error) {
	if len(d.journal) == 0 {
		return "", ErrNothingToUndo
	}
	last := d.journal[len(d.journal)-1]
	d.journal = d.journal[:len(d.journal)-1]
	d.objects = pointers(last.Objects)
	d.nextID = last.NextID
	return last.Name, nil
}

// UndoDepth returns the number of recorded undo steps.
func (d *Document) UndoDepth() int { return len(d.journal) }

func (d *Document) allocateID() string {
	id := "obj-" + strconv.FormatUint(d.nextID, 10)
	d.nextID++
	return id
}

func (d *Document) find(id string) *record {
	for _, r := range d.objects {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func values(objects []*record) []record {
	copied := make([]record, len(objects))
	for i, r := range objects {
		copied[i] = *r
	}
	return copied
}

func pointers(objects []record) []*record {
	result := make([]*record, len(objects))
	for i := range objects {
		r := objects[i]
		result[i] = &r
	}
	return result
}

func (r *record) matrix() matrix.Matrix { return matrix.Matrix(r.Matrix) }

func (r *record) box() rect.Rect {
	return rect.Rect{LLx: r.Box[0], LLy: r.Box[1], URx: r.Box[2], URy: r.Box[3]}
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	success = true
	return nil
}
