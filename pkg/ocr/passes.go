package ocr

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// The stat screens render light text on a dark HUD; the whitelist covers
// every character that can appear in a label, handle, count or duration,
// plus the rendering artifacts the parser knows how to strip.
const statWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:#~%|][+()_- "

// runOCRPasses produces transcription variants of one screenshot: the raw
// image, an inverted/binarized rendition (Tesseract wants dark-on-light), an
// adaptive-threshold rendition for uneven HUD glow, and sparse-text page
// segmentation for the career page's scattered rows.
func runOCRPasses(path string) ([]string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	gray := imaging.Grayscale(img)
	gray = imaging.Invert(gray)
	gray = imaging.AdjustContrast(gray, 20)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}
	flat := binarize(gray, 200)
	adv := dilate(adaptiveThreshold(gray, 17, 6), 1)

	var variants []string
	appendPass := func(p string, psm gosseract.PageSegMode) {
		if t, err := recognize(p, psm); err == nil {
			variants = append(variants, t)
		}
	}

	// Untouched image first; on clean captures it beats every rework.
	appendPass(path, gosseract.PSM_AUTO)
	appendPass(path, gosseract.PSM_SPARSE_TEXT)

	if tmp := saveTemp(flat, "ocr-flat-*.png"); tmp != "" {
		appendPass(tmp, gosseract.PSM_AUTO)
		appendPass(tmp, gosseract.PSM_SPARSE_TEXT)
		_ = os.Remove(tmp)
	}
	if tmp := saveTemp(adv, "ocr-adv-*.png"); tmp != "" {
		appendPass(tmp, gosseract.PSM_SINGLE_BLOCK)
		_ = os.Remove(tmp)
	}
	return variants, nil
}

// recognize runs one Tesseract pass. Newlines in the result are kept as-is.
func recognize(path string, psm gosseract.PageSegMode) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	_ = client.SetWhitelist(statWhitelist)
	_ = client.SetPageSegMode(psm)
	client.SetImage(path)
	return client.Text()
}

// saveTemp writes a preprocessed rendition to a temp file and returns its
// path, or "" when the write fails (that pass is skipped, not fatal).
func saveTemp(img *image.NRGBA, pattern string) string {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return ""
	}
	name := f.Name()
	_ = f.Close()
	if err := imaging.Save(img, name); err != nil {
		_ = os.Remove(name)
		return ""
	}
	return name
}
