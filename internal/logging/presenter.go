// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	apperr "ragflow/cli/internal/errors"
)

var kindHints = map[apperr.Kind]string{
	apperr.RequestFailed:     "check api_url and that the RagFlow backend is running",
	apperr.Unauthorized:      "sign in again with 'ragflow login'",
	apperr.MalformedResponse: "the backend answered without a usable token",
	apperr.StorageFailed:     "check the token store with 'ragflow config show'",
}

// PresentError formats an error for user display as "error while <action>: <message>"
// with secrets masked. Typed errors get a hint for their kind on a second line.
func PresentError(action string, err error) string {
	if err == nil {
		return ""
	}
	msg := Mask(err.Error())
	if action != "" {
		msg = fmt.Sprintf("error while %s: %s", action, msg)
	}
	if hint, ok := kindHints[apperr.KindOf(err)]; ok {
		msg += "\nhint: " + hint
	}
	return msg
}
