// Package vision scores thumbnail images without an external CV stack.
// The heuristics are deliberately cheap: grayscale Laplacian variance for
// clarity, edge density for overlaid text, skin-tone regions for faces and
// a coarse quantized palette. A vision LLM can refine emotion and text on
// top of these scores.
package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"sort"

	"golang.org/x/image/draw"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

const (
	workWidth        = 320
	clarityThreshold = 100.0
	textEdgeCutoff   = 0.08
	paletteColors    = 3
)

type Analyzer struct{}

func NewAnalyzer() ports.ImageAnalyzer {
	return &Analyzer{}
}

func (a *Analyzer) Analyze(data []byte) (*models.Analysis, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := shrink(src)
	gray := toGray(img)

	clarity := laplacianVariance(gray)
	density := edgeDensity(gray)
	faces := estimateFaces(img)

	textFound := density > textEdgeCutoff

	analysis := &models.Analysis{
		Clarity:      math.Round(clarity*100) / 100,
		TextFound:    textFound,
		TextDensity:  math.Round(density*10000) / 10000,
		Faces:        faces,
		Palette:      palette(img, paletteColors),
		PredictedCTR: PredictCTR(textFound, faces > 0, clarity),
	}
	return analysis, nil
}

// PredictCTR is a coarse prior: a neutral 0.5 shifted by the three signals
// that correlate with clicks, clamped to [0,1].
func PredictCTR(hasText, hasFace bool, clarity float64) float64 {
	ctr := 0.5
	if hasText {
		ctr += 0.1
	} else {
		ctr -= 0.1
	}
	if hasFace {
		ctr += 0.2
	} else {
		ctr -= 0.2
	}
	if clarity > clarityThreshold {
		ctr += 0.2
	} else {
		ctr -= 0.2
	}
	return math.Max(0, math.Min(1, ctr))
}

func shrink(src image.Image) *image.RGBA {
	b := src.Bounds()
	w := b.Dx()
	h := b.Dy()
	if w > workWidth {
		h = h * workWidth / w
		w = workWidth
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func toGray(img *image.RGBA) [][]float64 {
	b := img.Bounds()
	out := make([][]float64, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := make([]float64, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			i := img.PixOffset(x, y)
			r := float64(img.Pix[i])
			g := float64(img.Pix[i+1])
			bl := float64(img.Pix[i+2])
			row[x] = 0.299*r + 0.587*g + 0.114*bl
		}
		out[y] = row
	}
	return out
}

// laplacianVariance is the standard focus measure: variance of the 4-neighbour
// Laplacian response. Blurry images score low.
func laplacianVariance(gray [][]float64) float64 {
	h := len(gray)
	if h < 3 {
		return 0
	}
	w := len(gray[0])
	if w < 3 {
		return 0
	}

	var sum, sumSq float64
	n := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lap := gray[y-1][x] + gray[y+1][x] + gray[y][x-1] + gray[y][x+1] - 4*gray[y][x]
			sum += lap
			sumSq += lap * lap
			n++
		}
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

// edgeDensity counts strong horizontal gradients; overlaid captions produce
// dense clusters of them.
func edgeDensity(gray [][]float64) float64 {
	h := len(gray)
	if h == 0 {
		return 0
	}
	w := len(gray[0])
	if w < 2 {
		return 0
	}

	edges := 0
	for y := 0; y < h; y++ {
		for x := 1; x < w; x++ {
			if math.Abs(gray[y][x]-gray[y][x-1]) > 60 {
				edges++
			}
		}
	}
	return float64(edges) / float64(h*(w-1))
}

// estimateFaces looks for connected skin-tone regions of plausible size.
func estimateFaces(img *image.RGBA) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	skin := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			r := int(img.Pix[i])
			g := int(img.Pix[i+1])
			bl := int(img.Pix[i+2])
			if isSkin(r, g, bl) {
				skin[y*w+x] = true
			}
		}
	}

	minRegion := w * h / 100 // a face fills at least ~1% of the frame
	if minRegion < 16 {
		minRegion = 16
	}

	seen := make([]bool, w*h)
	faces := 0
	for i := range skin {
		if !skin[i] || seen[i] {
			continue
		}
		if floodSize(skin, seen, i, w, h) >= minRegion {
			faces++
		}
	}
	return faces
}

func isSkin(r, g, b int) bool {
	maxC := max3(r, g, b)
	minC := min3(r, g, b)
	return r > 95 && g > 40 && b > 20 &&
		maxC-minC > 15 &&
		r > g && r > b && abs(r-g) > 15
}

func floodSize(skin, seen []bool, start, w, h int) int {
	stack := []int{start}
	seen[start] = true
	size := 0
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++

		x, y := i%w, i/w
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			ni := ny*w + nx
			if skin[ni] && !seen[ni] {
				seen[ni] = true
				stack = append(stack, ni)
			}
		}
	}
	return size
}

// palette quantizes to a 4-bit-per-channel histogram and returns the dominant
// buckets as hex strings.
func palette(img *image.RGBA, count int) []string {
	type bucket struct {
		key     int
		hits    int
		r, g, b int
	}
	hist := map[int]*bucket{}

	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := img.PixOffset(x, y)
			r := int(img.Pix[i])
			g := int(img.Pix[i+1])
			bl := int(img.Pix[i+2])
			key := (r>>4)<<8 | (g>>4)<<4 | (bl >> 4)
			bk, ok := hist[key]
			if !ok {
				bk = &bucket{key: key}
				hist[key] = bk
			}
			bk.hits++
			bk.r += r
			bk.g += g
			bk.b += bl
		}
	}

	buckets := make([]*bucket, 0, len(hist))
	for _, bk := range hist {
		buckets = append(buckets, bk)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].hits != buckets[j].hits {
			return buckets[i].hits > buckets[j].hits
		}
		return buckets[i].key < buckets[j].key
	})

	if len(buckets) > count {
		buckets = buckets[:count]
	}
	out := make([]string, 0, len(buckets))
	for _, bk := range buckets {
		out = append(out, fmt.Sprintf("#%02x%02x%02x", bk.r/bk.hits, bk.g/bk.hits, bk.b/bk.hits))
	}
	return out
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
