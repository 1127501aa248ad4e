// go-utils/context_keys.go

package utils

// ctxKey is unexported to prevent collisions.
type ctxKey string

// CtxKeyEditorID stores the authenticated editor's ID (JWT subject).
const CtxKeyEditorID ctxKey = "editorID"

// CtxKeyEditorRole stores the role claim of the authenticated editor.
const CtxKeyEditorRole ctxKey = "editorRole"
