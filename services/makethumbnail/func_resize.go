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
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// resize decodes src, fits the image to spec and encodes the result to dst
func resize(dst io.Writer, src io.Reader, spec TransformSpec) error {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	return imaging.Encode(dst, fit(img, spec), imaging.JPEG, imaging.JPEGQuality(spec.Quality))
}

// fit never enlarges: an image already inside the box keeps its dimensions
func fit(img image.Image, spec TransformSpec) image.Image {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	if width <= spec.Width && height <= spec.Height {
		return img
	}
	switch spec.FitMode {
	case FitCover:
		if width < spec.Width || height < spec.Height {
			return imaging.CropCenter(img, min(width, spec.Width), min(height, spec.Height))
		}
		return imaging.Fill(img, spec.Width, spec.Height, imaging.Center, imaging.Lanczos)
	default:
		return imaging.Fit(img, spec.Width, spec.Height, imaging.Lanczos)
	}
}
