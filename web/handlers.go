// Package web serves a decoded sprite archive over HTTP: animation GIFs,
// frame and palette PNGs, raw records and the JSON manifest.
package web

import (
	"fmt"
	"hash/crc32"
	"html/template"
	"image"
	"image/gif"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-bnsa/bnsa"
	"badc0de.net/pkg/go-bnsa/compositor"
	"badc0de.net/pkg/go-bnsa/datafiles"
	"badc0de.net/pkg/go-bnsa/export"
)

// maxScale caps the scale query parameter of frame images.
const maxScale = 16

var indexTemplate = template.Must(template.New("index").Parse(datafiles.IndexHTML))

type Handler struct {
	a         *bnsa.Archive
	path      string
	signature uint32

	manifestOnce sync.Once
	manifest     []byte
	manifestErr  error
}

// NewHandler decodes the archive at path and serves it. The archive is read
// once; restart to pick up changes.
func NewHandler(path string) (*Handler, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	h, err := NewHandlerFromBytes(b)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %q", path)
	}
	h.path = path
	return h, nil
}

// NewHandlerFromBytes serves an archive held in memory.
func NewHandlerFromBytes(b []byte) (*Handler, error) {
	tr := trace.New("bnsa.web", "decode")
	defer tr.Finish()

	a, err := bnsa.DecodeBytes(b)
	if err != nil {
		tr.LazyPrintf("decode failed: %v", err)
		tr.SetError()
		return nil, err
	}
	if !a.Valid() {
		tr.LazyPrintf("rejected: %s", a.Rejection)
		tr.SetError()
		return nil, errors.Errorf("not a sprite archive: %s", a.Rejection)
	}
	tr.LazyPrintf("%d animations, %d tilesets, %d palettes", len(a.Animations), len(a.Tilesets), len(a.Palettes))
	return &Handler{a: a, signature: crc32.ChecksumIEEE(b)}, nil
}

// etag builds a weak validator from the archive contents and the request
// specifics. Bump generation if the way a response is generated changes.
func (h *Handler) etag(kind string, parts ...interface{}) string {
	generation := 1
	tag := fmt.Sprintf("%s:%d:%08x", kind, generation, h.signature)
	for _, p := range parts {
		tag += fmt.Sprintf(":%v", p)
	}
	return `W/"` + tag + `"`
}

// notModified answers a conditional request. It returns true when nothing
// else needs to be written.
func (h *Handler) notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if r.Header.Get("If-None-Match") != etag {
		return false
	}
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
	return true
}

func (h *Handler) writeHeaders(w http.ResponseWriter, mime, etag string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	if h.path != "" {
		if s, err := os.Stat(h.path); err == nil {
			w.Header().Set("Last-Modified", s.ModTime().Format(http.TimeFormat))
		}
	}
	w.WriteHeader(http.StatusOK)
}

func intVar(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		http.Error(w, name+" not a number", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	title := "sprite archive"
	if h.path != "" {
		title = filepath.Base(h.path)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct {
		Title string
		*bnsa.Archive
	}{title, h.a}); err != nil {
		glog.Errorf("rendering index: %v", err)
	}
}

func (h *Handler) animGIFHandler(w http.ResponseWriter, r *http.Request) {
	idx, ok := intVar(w, r, "idx")
	if !ok {
		return
	}
	if idx >= len(h.a.Animations) {
		http.Error(w, "no such animation", http.StatusNotFound)
		return
	}

	mime := "image/gif"
	etag := h.etag("anim", idx, mime)
	if h.notModified(w, r, etag) {
		return
	}

	tr := trace.New("bnsa.web", r.URL.Path)
	defer tr.Finish()
	g, err := compositor.AnimationGIF(h.a, idx)
	if err != nil {
		tr.LazyPrintf("composing animation %d: %v", idx, err)
		tr.SetError()
		glog.Errorf("composing animation %d: %v", idx, err)
		http.Error(w, "animation could not be generated", http.StatusInternalServerError)
		return
	}
	tr.LazyPrintf("%d frames, loop count %d", len(g.Image), g.LoopCount)

	h.writeHeaders(w, mime, etag)
	gif.EncodeAll(w, g)
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	idx, ok := intVar(w, r, "idx")
	if !ok {
		return
	}
	fr, ok := intVar(w, r, "fr")
	if !ok {
		return
	}
	if idx >= len(h.a.Animations) || fr >= len(h.a.Animations[idx].Frames) {
		http.Error(w, "no such frame", http.StatusNotFound)
		return
	}

	scale := 1
	if s := r.URL.Query().Get("scale"); s != "" {
		scale, _ = strconv.Atoi(s)
		// ignore invalid scale
	}
	if scale < 1 {
		scale = 1
	}
	if scale > maxScale {
		scale = maxScale
	}

	mime := "image/png"
	etag := h.etag("frame", idx, fr, scale, mime)
	if h.notModified(w, r, etag) {
		return
	}

	tr := trace.New("bnsa.web", r.URL.Path)
	defer tr.Finish()
	var img image.Image
	img, err := compositor.Frame(h.a, idx, fr)
	if err != nil {
		tr.LazyPrintf("composing frame: %v", err)
		tr.SetError()
		glog.Errorf("composing animation %d frame %d: %v", idx, fr, err)
		http.Error(w, "frame could not be generated", http.StatusInternalServerError)
		return
	}
	if scale > 1 {
		img = resize.Resize(uint(img.Bounds().Dx()*scale), uint(img.Bounds().Dy()*scale), img, resize.NearestNeighbor)
	}

	h.writeHeaders(w, mime, etag)
	png.Encode(w, img)
}

func (h *Handler) paletteHandler(w http.ResponseWriter, r *http.Request) {
	idx, ok := intVar(w, r, "idx")
	if !ok {
		return
	}
	p := h.a.Palette(idx)
	if p == nil {
		http.Error(w, "no such palette", http.StatusNotFound)
		return
	}

	mime := "image/png"
	etag := h.etag("palette", idx, mime)
	if h.notModified(w, r, etag) {
		return
	}
	h.writeHeaders(w, mime, etag)
	png.Encode(w, compositor.PaletteSwatch(p, 16))
}

func (h *Handler) rawHandler(w http.ResponseWriter, r *http.Request) {
	idx, ok := intVar(w, r, "idx")
	if !ok {
		return
	}

	var raw []byte
	switch kind := mux.Vars(r)["kind"]; kind {
	case "tileset":
		if ts := h.a.Tileset(idx); ts != nil {
			raw = ts.Raw()
		}
	case "palette":
		if p := h.a.Palette(idx); p != nil {
			raw = p.Raw()
		}
	case "minianim":
		if g := h.a.MiniAnimGroup(idx); g != nil {
			raw = g.Raw()
		}
	case "oam":
		if g := h.a.OAMGroup(idx); g != nil {
			raw = g.Raw()
		}
	}
	if raw == nil {
		http.Error(w, "no such record", http.StatusNotFound)
		return
	}

	mime := "application/octet-stream"
	etag := h.etag("raw", mux.Vars(r)["kind"], idx)
	if h.notModified(w, r, etag) {
		return
	}
	h.writeHeaders(w, mime, etag)
	w.Write(raw)
}

func (h *Handler) manifestHandler(w http.ResponseWriter, r *http.Request) {
	h.manifestOnce.Do(func() {
		h.manifest, h.manifestErr = export.Manifest(h.a)
	})
	if h.manifestErr != nil {
		glog.Errorf("building manifest: %v", h.manifestErr)
		http.Error(w, "manifest could not be generated", http.StatusInternalServerError)
		return
	}

	mime := "application/json"
	etag := h.etag("manifest", mime)
	if h.notModified(w, r, etag) {
		return
	}
	h.writeHeaders(w, mime, etag)
	w.Write(h.manifest)
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/manifest.json", h.manifestHandler)
	r.HandleFunc("/anim/{idx:[0-9]+}.gif", h.animGIFHandler)
	r.HandleFunc("/anim/{idx:[0-9]+}/{fr:[0-9]+}", h.frameHandler)
	r.HandleFunc("/palette/{idx:[0-9]+}", h.paletteHandler)
	r.HandleFunc("/raw/{kind:tileset|palette|minianim|oam}/{idx:[0-9]+}", h.rawHandler)
}
