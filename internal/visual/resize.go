package visual

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	// Registered so email-sourced jpeg/gif uploads decode too.
	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"

	"facet/internal/logger"
)

// Fit decodes an image, center-crops it to the target aspect ratio, scales
// to exactly width x height, and re-encodes as PNG.
func Fit(data []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, centerCrop(src.Bounds(), width, height), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// FitBase64 is Fit over base64 payloads. A payload that cannot be decoded is
// returned unchanged — a missing image must not block newsletter assembly —
// with the failure visible only in the log.
func FitBase64(encoded string, width, height int) string {
	log := logger.With("visual")

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Warn().Err(err).Msg("image payload is not valid base64, passing through")
		return encoded
	}

	fitted, err := Fit(data, width, height)
	if err != nil {
		log.Warn().Err(err).Msg("image could not be processed, passing through")
		return encoded
	}
	return base64.StdEncoding.EncodeToString(fitted)
}

// centerCrop returns the largest centered sub-rectangle of bounds matching
// the target aspect ratio.
func centerCrop(bounds image.Rectangle, width, height int) image.Rectangle {
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	cropW := srcW
	cropH := srcH
	if srcW*height > srcH*width {
		// Source is wider than the target: trim the sides.
		cropW = srcH * width / height
	} else {
		// Source is taller: trim top and bottom.
		cropH = srcW * height / width
	}

	x0 := bounds.Min.X + (srcW-cropW)/2
	y0 := bounds.Min.Y + (srcH-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
