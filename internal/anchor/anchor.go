// Package anchor locates the scoreboard inside a full-screen capture by
// template matching against known visual landmarks.
package anchor

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"scoreboard-tracker/pkg/geometry"
)

// ErrNotFound means no candidate template matched above the threshold. This
// aborts the session cleanly; nothing is written to the aggregates.
var ErrNotFound = errors.New("scoreboard anchor not found")

// Scoreboard body extent relative to the screenshot resolution, measured
// from the anchor's top-left corner. The UI renders the scoreboard at a
// fixed fraction of the screen on the supported display resolutions
// (1920x1080, 2560x1440); there is no auto-calibration.
const (
	bodyWidthFrac  = 0.60
	bodyHeightFrac = 0.44
)

// Match is the outcome of matching one candidate template.
type Match struct {
	Template string
	Score    float64
	Location geometry.PointInt
}

// Locator finds the best-matching anchor template in a screenshot.
type Locator struct {
	templates []string
	threshold float64
}

// NewLocator creates a locator over candidate template image paths, tried in
// the given priority order.
func NewLocator(templates []string, threshold float64) *Locator {
	return &Locator{templates: templates, threshold: threshold}
}

// Locate runs normalized cross-correlation for every candidate template and
// returns the location of the highest-scoring one above the threshold.
// Ties go to the earlier-listed template. Returns ErrNotFound when every
// candidate scores below the threshold; a missing or unreadable template
// file is a configuration error instead.
func (l *Locator) Locate(screenshot image.Image) (geometry.PointInt, float64, error) {
	if len(l.templates) == 0 {
		return geometry.PointInt{}, 0, fmt.Errorf("no anchor templates configured")
	}

	scene, err := matFromImage(screenshot)
	if err != nil {
		return geometry.PointInt{}, 0, fmt.Errorf("convert screenshot: %w", err)
	}
	defer scene.Close()

	best := Match{Score: -1}
	found := false
	for _, path := range l.templates {
		m, err := matchOne(scene, path)
		if err != nil {
			return geometry.PointInt{}, 0, err
		}
		if m.Score < l.threshold {
			continue
		}
		// Strictly greater: declaration order wins ties.
		if !found || m.Score > best.Score {
			best = m
			found = true
		}
	}
	if !found {
		return geometry.PointInt{}, 0, ErrNotFound
	}
	return best.Location, best.Score, nil
}

// ScoreboardBounds locates the anchor and derives the scoreboard body
// rectangle from it.
func (l *Locator) ScoreboardBounds(screenshot image.Image) (geometry.RectInt, error) {
	pt, _, err := l.Locate(screenshot)
	if err != nil {
		return geometry.RectInt{}, err
	}
	b := screenshot.Bounds()
	return BodyBounds(pt, b.Dx(), b.Dy()), nil
}

// Scores matches every template without applying the threshold. Used by the
// anchortest harness for threshold tuning.
func (l *Locator) Scores(screenshot image.Image) ([]Match, error) {
	scene, err := matFromImage(screenshot)
	if err != nil {
		return nil, fmt.Errorf("convert screenshot: %w", err)
	}
	defer scene.Close()

	matches := make([]Match, 0, len(l.templates))
	for _, path := range l.templates {
		m, err := matchOne(scene, path)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func matchOne(scene gocv.Mat, templatePath string) (Match, error) {
	tmpl := gocv.IMRead(templatePath, gocv.IMReadColor)
	if tmpl.Empty() {
		return Match{}, fmt.Errorf("template file not found or unreadable: %s", templatePath)
	}
	defer tmpl.Close()

	if tmpl.Cols() > scene.Cols() || tmpl.Rows() > scene.Rows() {
		return Match{}, fmt.Errorf("template %s (%dx%d) larger than screenshot (%dx%d)",
			templatePath, tmpl.Cols(), tmpl.Rows(), scene.Cols(), scene.Rows())
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(scene, tmpl, &result, gocv.TmCcoeffNormed, mask)
	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	return Match{
		Template: templatePath,
		Score:    float64(maxVal),
		Location: geometry.PointInt{X: maxLoc.X, Y: maxLoc.Y},
	}, nil
}

// matFromImage converts to BGR, the channel order IMRead loads templates in.
func matFromImage(img image.Image) (gocv.Mat, error) {
	rgb, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer rgb.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgb, &bgr, gocv.ColorBGRToRGB)
	return bgr, nil
}

// BodyBounds derives the scoreboard body rectangle from the anchor position,
// clamped to the screenshot.
func BodyBounds(anchor geometry.PointInt, screenWidth, screenHeight int) geometry.RectInt {
	r := geometry.RectInt{
		X:      anchor.X,
		Y:      anchor.Y,
		Width:  int(bodyWidthFrac * float64(screenWidth)),
		Height: int(bodyHeightFrac * float64(screenHeight)),
	}
	return r.Clamp(screenWidth, screenHeight)
}
