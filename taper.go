package conifer

import (
	"fmt"
	"math"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SilhouetteLinear is the straight cone. It uses integer arithmetic so row
// widths are exact.
const SilhouetteLinear = "linear"

var silhouettes = map[string]ease.TweenFunc{
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-sine":     ease.InSine,
	"out-sine":    ease.OutSine,
	"in-out-sine": ease.InOutSine,
	"in-cubic":    ease.InCubic,
	"out-cubic":   ease.OutCubic,
}

// Silhouettes lists the accepted silhouette names.
func Silhouettes() []string {
	names := make([]string, 0, len(silhouettes)+1)
	names = append(names, SilhouetteLinear)
	for name := range silhouettes {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

func lookupSilhouette(name string) (ease.TweenFunc, error) {
	if name == "" || name == SilhouetteLinear {
		return nil, nil
	}
	fn, ok := silhouettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown silhouette %q", name)
	}
	return fn, nil
}

// taper maps a row's distance below the apex to its half-width.
type taper struct {
	radius, height int
	tween          *gween.Tween
}

func newTaper(name string, radius, height int) (*taper, error) {
	fn, err := lookupSilhouette(name)
	if err != nil {
		return nil, err
	}
	t := &taper{radius: radius, height: height}
	if fn != nil {
		t.tween = gween.New(0, float32(radius), float32(height), fn)
	}
	return t, nil
}

// radiusAt returns the half-width of the row depth units below the apex:
// zero at the apex, radius at the base.
func (t *taper) radiusAt(depth int) int {
	if t.tween == nil {
		return t.radius * depth / t.height
	}
	v, _ := t.tween.Set(float32(depth))
	return int(math.Round(float64(v)))
}
