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

// FitMode how the image is fitted in the target box
type FitMode string

const (
	// FitInside scales down to fit inside the box, aspect ratio preserved
	FitInside FitMode = "inside"
	// FitCover scales down to cover the box then crops the overflow, centered
	FitCover FitMode = "cover"
)

// JPEGContentType the only supported output content type
const JPEGContentType = "image/jpeg"

// TransformSpec target geometry and encoding of thumbnails
type TransformSpec struct {
	Width             int     `yaml:"width" valid:"isPositive"`
	Height            int     `yaml:"height" valid:"isPositive"`
	FitMode           FitMode `yaml:"fitMode" valid:"isOneOf:inside|cover"`
	Quality           int     `yaml:"quality" valid:"isJPEGQuality"`
	OutputContentType string  `yaml:"outputContentType" valid:"isOneOf:image/jpeg"`
}

// DefaultTransformSpec 200x200 fit inside, JPEG quality 90
func DefaultTransformSpec() TransformSpec {
	return TransformSpec{
		Width:             200,
		Height:            200,
		FitMode:           FitInside,
		Quality:           90,
		OutputContentType: JPEGContentType,
	}
}
