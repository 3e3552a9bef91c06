// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporter

import (
	"errors"

	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto converts err into a structured diagnostic, suitable for encoding
// as JSON with protojson. The result always has "level", "kind", and
// "message" fields. Errors with a position also have "name", "index",
// "context", and "contextOffset".
//
// The kind is "syntax" for errors wrapping ErrSyntax, "macro" for errors
// wrapping ErrMacro, and "other" for everything else.
func ToProto(level Level, err error) *structpb.Struct {
	kind := "other"
	switch {
	case errors.Is(err, ErrSyntax):
		kind = "syntax"
	case errors.Is(err, ErrMacro):
		kind = "macro"
	}

	fields := map[string]*structpb.Value{
		"level":   structpb.NewStringValue(level.String()),
		"kind":    structpb.NewStringValue(kind),
		"message": structpb.NewStringValue(err.Error()),
	}

	var ewp ErrorWithPos
	if errors.As(err, &ewp) {
		pos := ewp.GetPosition()
		fields["message"] = structpb.NewStringValue(ewp.Unwrap().Error())
		fields["name"] = structpb.NewStringValue(pos.Name)
		fields["index"] = structpb.NewNumberValue(float64(pos.Index))
		fields["context"] = structpb.NewStringValue(pos.Context)
		fields["contextOffset"] = structpb.NewNumberValue(float64(pos.ContextOffset))
	}
	return &structpb.Struct{Fields: fields}
}
