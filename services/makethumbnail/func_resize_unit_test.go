// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the 'License');
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an 'AS IS' BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package makethumbnail

import (
	"bytes"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

var testPublishTime = time.Date(2022, time.April, 1, 12, 0, 0, 0, time.UTC)

// newTestImage returns a PNG encoded gradient of the given size
func newTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	for x := 0; x < width; x += max(1, width/64) {
		for y := 0; y < height; y += max(1, height/64) {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	var buffer bytes.Buffer
	if err := imaging.Encode(&buffer, img, imaging.PNG); err != nil {
		t.Fatalf("imaging.Encode %v", err)
	}
	return buffer.Bytes()
}

func decodeConfig(t *testing.T, data []byte) (image.Config, string) {
	t.Helper()
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image.DecodeConfig %v", err)
	}
	return config, format
}

func TestUnitResize(t *testing.T) {
	var testCases = []struct {
		name       string
		width      int
		height     int
		fitMode    FitMode
		wantWidth  int
		wantHeight int
	}{
		{name: "landscape", width: 4000, height: 3000, fitMode: FitInside, wantWidth: 200, wantHeight: 150},
		{name: "portrait", width: 300, height: 600, fitMode: FitInside, wantWidth: 100, wantHeight: 200},
		{name: "square", width: 800, height: 800, fitMode: FitInside, wantWidth: 200, wantHeight: 200},
		{name: "smallNotEnlarged", width: 120, height: 80, fitMode: FitInside, wantWidth: 120, wantHeight: 80},
		{name: "exactBox", width: 200, height: 200, fitMode: FitInside, wantWidth: 200, wantHeight: 200},
		{name: "oneSideLarger", width: 250, height: 50, fitMode: FitInside, wantWidth: 200, wantHeight: 40},
		{name: "coverLandscape", width: 4000, height: 3000, fitMode: FitCover, wantWidth: 200, wantHeight: 200},
		{name: "coverNarrow", width: 100, height: 1000, fitMode: FitCover, wantWidth: 100, wantHeight: 200},
		{name: "coverSmall", width: 50, height: 60, fitMode: FitCover, wantWidth: 50, wantHeight: 60},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultTransformSpec()
			spec.FitMode = tc.fitMode
			var thumbnail bytes.Buffer
			err := resize(&thumbnail, bytes.NewReader(newTestImage(t, tc.width, tc.height)), spec)
			if err != nil {
				t.Fatalf("resize %v", err)
			}
			config, format := decodeConfig(t, thumbnail.Bytes())
			if format != "jpeg" {
				t.Errorf("want jpeg got %s", format)
			}
			if config.Width != tc.wantWidth || config.Height != tc.wantHeight {
				t.Errorf("want %dx%d got %dx%d", tc.wantWidth, tc.wantHeight, config.Width, config.Height)
			}
		})
	}
}

func TestUnitResizeDeterministic(t *testing.T) {
	source := newTestImage(t, 640, 480)
	var first, second bytes.Buffer
	if err := resize(&first, bytes.NewReader(source), DefaultTransformSpec()); err != nil {
		t.Fatalf("resize %v", err)
	}
	if err := resize(&second, bytes.NewReader(source), DefaultTransformSpec()); err != nil {
		t.Fatalf("resize %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("want identical thumbnails, got %d and %d bytes differing", first.Len(), second.Len())
	}
}

func TestUnitResizeCorruptImage(t *testing.T) {
	var thumbnail bytes.Buffer
	err := resize(&thumbnail, bytes.NewReader([]byte("this is not an image")), DefaultTransformSpec())
	if err == nil {
		t.Errorf("want an error got nil")
	}
	if thumbnail.Len() != 0 {
		t.Errorf("want nothing written got %d bytes", thumbnail.Len())
	}
}
