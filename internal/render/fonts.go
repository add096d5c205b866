package render

import (
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontCandidates is the best-effort ladder of bold display fonts across
// common Linux/macOS deployments. The embedded Go Bold face is the
// guaranteed final fallback, so face resolution can never fail.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/System/Library/Fonts/Supplemental/Impact.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"/Library/Fonts/Impact.ttf",
}

// FontResolver loads the first available display font once and hands
// out sized faces. Safe for concurrent use.
type FontResolver struct {
	mu     sync.Mutex
	parsed *sfnt.Font
	faces  map[int]font.Face
}

// NewFontResolver builds a resolver over the default candidate ladder.
func NewFontResolver() *FontResolver {
	return &FontResolver{faces: make(map[int]font.Face)}
}

// Face returns a face at the given pixel size. Never fails: the ladder
// ends in the embedded default.
func (r *FontResolver) Face(size int) font.Face {
	if size < 1 {
		size = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if face, ok := r.faces[size]; ok {
		return face
	}
	if r.parsed == nil {
		r.parsed = loadFirstAvailable()
	}
	face, err := opentype.NewFace(r.parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// A parsed font that cannot produce a face is effectively
		// corrupt; fall back to the embedded default permanently.
		r.parsed = mustParse(gobold.TTF)
		face, _ = opentype.NewFace(r.parsed, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	r.faces[size] = face
	return face
}

func loadFirstAvailable() *sfnt.Font {
	for _, path := range fontCandidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		return parsed
	}
	return mustParse(gobold.TTF)
}

func mustParse(data []byte) *sfnt.Font {
	parsed, err := opentype.Parse(data)
	if err != nil {
		// The embedded font is compiled into the binary; failing to
		// parse it is unrecoverable.
		panic("render: embedded fallback font is unreadable: " + err.Error())
	}
	return parsed
}
