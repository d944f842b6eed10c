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

package userlist

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

var pageNames = []string{"list", "form", "view"}

// renderer executes one template set per page, each page defines the body of the base layout
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(bucketName string) (*renderer, error) {
	funcs := template.FuncMap{
		"imageURL": func(objectName string) string {
			return publicURL(bucketName, objectName)
		},
		"thumbnailURL": func(objectName string) string {
			return publicURL(bucketName, makethumbnail.ThumbnailPrefix+objectName)
		},
	}
	r := &renderer{pages: make(map[string]*template.Template)}
	for _, pageName := range pageNames {
		page, err := template.New(pageName).Funcs(funcs).ParseFS(templatesFS, "templates/base.gohtml", "templates/"+pageName+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("template.ParseFS %s %w", pageName, err)
		}
		r.pages[pageName] = page
	}
	return r, nil
}

// Render implements echo.Renderer
func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return page.ExecuteTemplate(w, "base", data)
}

// publicURL of an object, as served by storage.googleapis.com
func publicURL(bucketName string, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, url.PathEscape(objectName))
}
