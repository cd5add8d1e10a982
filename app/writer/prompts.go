package writer

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/moritamori/bloggen/app/store"
)

// system instructions for the three completion calls
const (
	systemWriter = "あなたは経験豊富なブログライターです。読者を惹きつける日本語の記事を書いてください。"
	systemEditor = "あなたは経験豊富な編集者です。フィードバックを反映しつつ記事の構成を保ってください。"
	systemMeta   = "あなたは編集アシスタントです。指示された形式のみで出力してください。"
)

//go:embed data/article.tmpl
var articlePrompt string

//go:embed data/revise.tmpl
var revisePrompt string

//go:embed data/meta.tmpl
var metaPrompt string

var promptFuncs = template.FuncMap{
	"toneLabel": func(t store.Tone) string {
		switch t {
		case store.ToneBusiness:
			return "ビジネス"
		case store.ToneTechnical:
			return "技術的"
		default:
			return "カジュアル"
		}
	},
}

var (
	articleTmpl = template.Must(template.New("article").Funcs(promptFuncs).Parse(articlePrompt))
	reviseTmpl  = template.Must(template.New("revise").Parse(revisePrompt))
	metaTmpl    = template.Must(template.New("meta").Parse(metaPrompt))
)

// BuildArticlePrompt builds the user instruction for generating
// an article from the request.
func BuildArticlePrompt(req store.ArticleRequest, refs []Reference) (string, error) {
	buf := &strings.Builder{}
	err := articleTmpl.Execute(buf, struct {
		Request    store.ArticleRequest
		References []Reference
	}{Request: req, References: refs})
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	return buf.String(), nil
}

// BuildRevisionPrompt builds the user instruction for revising
// an article with feedback and an optional canned directive.
func BuildRevisionPrompt(a store.Article, feedback, directive string) (string, error) {
	buf := &strings.Builder{}
	err := reviseTmpl.Execute(buf, struct {
		Article   store.Article
		Feedback  string
		Directive string
	}{Article: a, Feedback: feedback, Directive: directive})
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	return buf.String(), nil
}

// BuildMetaPrompt builds the user instruction for the auxiliary
// summary and tags completion.
func BuildMetaPrompt(title, content string) (string, error) {
	buf := &strings.Builder{}
	err := metaTmpl.Execute(buf, struct {
		Title   string
		Content string
	}{Title: title, Content: content})
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	return buf.String(), nil
}
