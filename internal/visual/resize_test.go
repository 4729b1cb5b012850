package visual

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestFitExactDimensions(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		dstW, dstH int
	}{
		{name: "landscape to square", srcW: 800, srcH: 400, dstW: 300, dstH: 300},
		{name: "portrait to wide", srcW: 300, srcH: 900, dstW: 490, dstH: 300},
		{name: "upscale small image", srcW: 100, srcH: 100, dstW: 250, dstH: 250},
		{name: "same size", srcW: 300, srcH: 300, dstW: 300, dstH: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Fit(encodePNG(t, tt.srcW, tt.srcH), tt.dstW, tt.dstH)
			if err != nil {
				t.Fatalf("Fit: %v", err)
			}
			w, h := decodeSize(t, out)
			if w != tt.dstW || h != tt.dstH {
				t.Errorf("output = %dx%d, want %dx%d", w, h, tt.dstW, tt.dstH)
			}
		})
	}
}

func TestFitRejectsUndecodableInput(t *testing.T) {
	if _, err := Fit([]byte("not an image"), 300, 300); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFitBase64PassthroughOnBadInput(t *testing.T) {
	// Valid base64 but not an image: returned unchanged, no panic.
	garbage := base64.StdEncoding.EncodeToString([]byte("definitely not an image"))
	if got := FitBase64(garbage, 300, 300); got != garbage {
		t.Errorf("undecodable payload was modified")
	}

	// Not even base64: returned unchanged.
	if got := FitBase64("!!! not base64 !!!", 300, 300); got != "!!! not base64 !!!" {
		t.Errorf("non-base64 payload was modified")
	}
}

func TestFitBase64Resizes(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(encodePNG(t, 640, 480))

	out := FitBase64(encoded, 250, 250)
	if out == encoded {
		t.Fatal("payload was not processed")
	}

	data, err := base64.StdEncoding.DecodeString(out)
	if err != nil {
		t.Fatalf("output is not base64: %v", err)
	}
	w, h := decodeSize(t, data)
	if w != 250 || h != 250 {
		t.Errorf("output = %dx%d, want 250x250", w, h)
	}
}

func TestCenterCrop(t *testing.T) {
	// Wide source cropped for a square target trims the sides evenly.
	got := centerCrop(image.Rect(0, 0, 800, 400), 300, 300)
	if got.Dx() != 400 || got.Dy() != 400 {
		t.Errorf("crop = %dx%d, want 400x400", got.Dx(), got.Dy())
	}
	if got.Min.X != 200 || got.Min.Y != 0 {
		t.Errorf("crop origin = (%d,%d), want centered (200,0)", got.Min.X, got.Min.Y)
	}
}

func TestSlotSize(t *testing.T) {
	if w, h := SlotSize("quick_tip"); w != 490 || h != 300 {
		t.Errorf("quick_tip = %dx%d", w, h)
	}
	if w, h := SlotSize("guess_the_price"); w != 250 || h != 250 {
		t.Errorf("guess_the_price = %dx%d", w, h)
	}
	if w, h := SlotSize("anything_else"); w != 300 || h != 300 {
		t.Errorf("default = %dx%d", w, h)
	}
}
