package output

import (
	"html/template"
	"io"

	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

const htmlTemplates = `
{{- define "fragment" -}}
<div id="task-list" data-phase="{{.Phase}}">
<h1>{{.Heading}}</h1>
{{- if eq .Phase "loading"}}
<p>{{.Message}}</p>
{{- else if eq .Phase "error"}}
<p style="color: red">{{.Message}}</p>
{{- else if eq .Phase "empty"}}
<p>{{.Message}}</p>
{{- else}}
<ul>
{{- range .Tasks}}
<li data-key="{{.ID}}">{{.Name}}</li>
{{- end}}
</ul>
{{- end}}
</div>
{{end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Heading}}</title>
</head>
<body>
{{template "fragment" .}}
{{- if eq .Phase "loading"}}
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    document.getElementById("task-list").outerHTML = msg.html;
  };
})();
</script>
{{- end}}
</body>
</html>
{{end -}}
`

var templates = template.Must(template.New("tasklist").Parse(htmlTemplates))

type viewData struct {
	Heading string
	Phase   string
	Message string
	Tasks   []service.Task
}

func newViewData(state tasklist.State) viewData {
	data := viewData{
		Heading: tasklist.Heading,
		Phase:   state.Phase().String(),
	}
	switch state.Phase() {
	case tasklist.PhaseLoading:
		data.Message = tasklist.LoadingMessage
	case tasklist.PhaseError:
		data.Message = state.Err
	case tasklist.PhaseEmpty:
		data.Message = tasklist.EmptyMessage
	case tasklist.PhasePopulated:
		data.Tasks = state.Tasks
	}
	return data
}

// RenderHTML writes a complete page for state. While loading, the page
// opens a websocket to /ws and swaps in the fragment it receives.
func RenderHTML(w io.Writer, state tasklist.State) error {
	return templates.ExecuteTemplate(w, "page", newViewData(state))
}

// RenderFragment writes only the task-list element for state.
func RenderFragment(w io.Writer, state tasklist.State) error {
	return templates.ExecuteTemplate(w, "fragment", newViewData(state))
}
