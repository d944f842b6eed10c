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

package thumbnailer

import (
	"context"

	"github.com/BrunoReboul/thumbnailer/services/makethumbnail"
)

var global makethumbnail.Global
var ctx = context.Background()

func init() {
	makethumbnail.Initialize(ctx, &global)
}

// EntryPoint is the function to be executed for each cloud function occurence
func EntryPoint(ctxEvent context.Context, event makethumbnail.TriggerEvent) error {
	return makethumbnail.EntryPoint(ctxEvent, event, &global)
}
