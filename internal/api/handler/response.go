package handler

// okBody is the minimal success envelope.
func okBody() map[string]any {
	return map[string]any{"ok": true}
}

// errorBody is the canonical failure envelope: {"ok": false, "error": code}.
func errorBody(code string) map[string]any {
	return map[string]any{"ok": false, "error": code}
}
