package bridge

import (
	"fmt"
	"strings"
)

// ReturnValueScript assigns an invoke handler's return value to the
// well-known bridge global. The value must already be escaped.
func ReturnValueScript(escaped string) string {
	return fmt.Sprintf(`window.webpane._bridge.returnValue = "%s";`, escaped)
}

// LegacyEvalWrapper wraps an expression so its value travels back over
// the title channel, for renderers that cannot report script results
// natively.
func LegacyEvalWrapper(callID, script string) string {
	return fmt.Sprintf(
		`document.title = JSON.stringify({"type": "eval", "uid": "%s", "result": %s})`,
		callID, script)
}

// APIScript builds the bootstrap installed after every load. It exposes
// each descriptor name under window.webpane.api as a stub that posts an
// invoke envelope through the title channel and returns a promise
// resolved by polling the returnValue global, since the native side
// reinjects the result asynchronously.
func APIScript(functions []string, token string) string {
	var b strings.Builder
	b.WriteString(`window.webpane = window.webpane || {};`)
	b.WriteString(`window.webpane._bridge = {token: "` + token + `", returnValue: null};`)
	b.WriteString(`window.webpane.api = {};`)
	for _, fn := range functions {
		fmt.Fprintf(&b,
			`window.webpane.api[%q] = function(param) {`+
				`window.webpane._bridge.returnValue = null;`+
				`document.title = JSON.stringify({type: "invoke", function: %q, id: "%s", param: typeof param === "undefined" ? "undefined" : JSON.stringify(param)});`+
				`return new Promise(function(resolve) {`+
				`var poll = function() {`+
				`var v = window.webpane._bridge.returnValue;`+
				`if (v === null) { setTimeout(poll, 10); return; }`+
				`window.webpane._bridge.returnValue = null;`+
				`resolve(JSON.parse(v));`+
				`};`+
				`poll();`+
				`});`+
				`};`,
			fn, fn, token)
	}
	return b.String()
}

// DisableTextSelectScript suppresses selection for windows created with
// text_select off.
const DisableTextSelectScript = `(function() {
	var style = document.createElement('style');
	style.innerHTML = '* { -webkit-user-select: none; user-select: none; } input, textarea { -webkit-user-select: text; user-select: text; }';
	document.head.appendChild(style);
})();`

// DefaultHTML is the placeholder page shown when a session carries
// neither a URL nor inline markup.
const DefaultHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>body { background: #fff; margin: 0; }</style></head>
<body></body>
</html>`
