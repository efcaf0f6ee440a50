// Package export composes the rendered plan fragment and cached exercise
// images into self-contained documents: a single HTML file with every image
// inlined as data URIs, and a paginated PDF produced by a headless browser.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/claude/planfit/internal/assets"
	"github.com/claude/planfit/internal/models"
	"github.com/claude/planfit/internal/render"
)

const documentTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body{margin:24px auto;max-width:820px;color:#222}
  .wp-images{display:grid;grid-template-columns:repeat(auto-fill,minmax(240px,1fr));gap:16px;margin-top:24px}
  .wp-images figure{margin:0;border:1px solid #eee;border-radius:10px;padding:8px;page-break-inside:avoid}
  .wp-images img{width:100%;border-radius:6px}
  .wp-images figcaption{font-size:.9rem;text-align:center;margin-top:6px;color:#555}
  @media print{body{margin:0;max-width:none}}
</style>
</head>
<body>
{{.Fragment}}
{{- if .Images}}
<section class="wp-images">
{{- range .Images}}
<figure><img src="data:image/png;base64,{{.Data}}" alt="{{.Name}}"><figcaption>{{.Name}}</figcaption></figure>
{{- end}}
</section>
{{- end}}
</body>
</html>
`

var docTmpl = template.Must(template.New("document").Parse(documentTmpl))

type imageView struct {
	Name string
	Data string
}

type documentData struct {
	Title    string
	Fragment template.HTML
	Images   []imageView
}

// HTML builds a self-contained document: the rendered fragment plus one
// embedded image per exercise whose cache entry exists. Exercises missing
// from the cache are omitted, not errors.
func HTML(plan *models.WorkoutPlan, cache *assets.ImageCache) ([]byte, error) {
	frag, err := render.Fragment(plan)
	if err != nil {
		return nil, err
	}

	data := documentData{
		Title: plan.Summary.Title,
		// The fragment is produced by an auto-escaping template; safe to
		// embed verbatim.
		Fragment: template.HTML(frag),
	}
	if data.Title == "" {
		data.Title = "Workout Plan"
	}

	for _, name := range plan.ExerciseNames() {
		if !cache.Exists(name) {
			continue
		}
		img, err := cache.Read(name)
		if err != nil {
			return nil, err
		}
		data.Images = append(data.Images, imageView{
			Name: name,
			Data: base64.StdEncoding.EncodeToString(img),
		})
	}

	var buf bytes.Buffer
	if err := docTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering export document: %w", err)
	}
	return buf.Bytes(), nil
}
