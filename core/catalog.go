package core

import (
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/segmentio/encoding/json"
)

type Entry struct {
	Path         string   `json:"path"`
	URL          string   `json:"url"`
	Placeholders []string `json:"placeholders"`
	Annotated    bool     `json:"annotated"`
}

// BuildCatalog describes every SVG under the annotator's root, sorted by
// path. Files that cannot be read are logged and left out.
func BuildCatalog(a *Annotator) ([]Entry, error) {
	entries := []Entry{}
	err := WalkSVGs(a.Root, a.logger(), func(path string) {
		comment, placeholders, content, err := a.Expected(path)
		if err != nil {
			a.logger().Error("catalog skipped file", "file", path, "err", err)
			return
		}
		rel, _ := a.RelPath(path)
		entries = append(entries, Entry{
			Path:         rel,
			URL:          a.URLFor(rel) + QueryTemplate(placeholders),
			Placeholders: placeholders,
			Annotated:    strings.HasPrefix(content, comment),
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func WriteCatalogJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

type catalogPage struct {
	Entries    []Entry
	LiveReload string
}

const catalogHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>svgurl catalog</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
td, th { padding: .3rem .8rem; text-align: left; border-bottom: 1px solid #ddd; }
code { font-size: .85rem; }
.stale { color: #b00; }
</style>
</head>
<body>
<h1>{{ len .Entries }} SVG {{ if eq (len .Entries) 1 }}file{{ else }}files{{ end }}</h1>
<table>
<tr><th>Path</th><th>Placeholders</th><th>URL</th><th>Comment</th></tr>
{{- range .Entries }}
<tr>
<td>{{ .Path }}</td>
<td>{{ .Placeholders | join ", " | default "none" }}</td>
<td><code>{{ .URL }}</code></td>
<td>{{ if .Annotated }}current{{ else }}<span class="stale">missing</span>{{ end }}</td>
</tr>
{{- end }}
</table>
{{- if .LiveReload }}
<script>
(function connect() {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + {{ .LiveReload }});
  ws.onmessage = function () { location.reload(); };
  ws.onclose = function () { setTimeout(connect, 1000); };
})();
</script>
{{- end }}
</body>
</html>
`

var catalogTemplate = template.Must(template.New("catalog").Funcs(sprig.FuncMap()).Parse(catalogHTML))

// WriteCatalogHTML renders the catalog page. A non-empty liveReload path
// makes the page reload whenever that websocket sends a message.
func WriteCatalogHTML(w io.Writer, entries []Entry, liveReload string) error {
	return catalogTemplate.Execute(w, catalogPage{Entries: entries, LiveReload: liveReload})
}
