package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// StudentMessage is sent when an educator writes to a student from the portal.
const StudentMessage = "student_message"

// MessageData is the data contract of the student_message templates.
type MessageData struct {
	AppName        string `json:"AppName"`
	EducatorName   string `json:"EducatorName"`
	StudentID      string `json:"StudentID"`
	RecipientEmail string `json:"RecipientEmail"`
	Subject        string `json:"Subject"`
	Message        string `json:"Message"`
	Priority       string `json:"Priority"`
}

// ToMap converts MessageData to a map[string]any for EmailJob.Data
func (d MessageData) ToMap() map[string]any {
	return map[string]any{
		"AppName":        d.AppName,
		"EducatorName":   d.EducatorName,
		"StudentID":      d.StudentID,
		"RecipientEmail": d.RecipientEmail,
		"Subject":        d.Subject,
		"Message":        d.Message,
		"Priority":       d.Priority,
	}
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// RenderError reports a template that failed to parse or execute. Retrying
// the same job cannot succeed.
type RenderError struct {
	File string
	Err  error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render %q: %v", e.File, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// renderFile loads and renders a single template file from the embedded FS.
// isHTML indicates whether to use html/template (true) or text/template (false).
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)

	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", &RenderError{File: filename, Err: e}
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", &RenderError{File: filename, Err: e}
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", &RenderError{File: filename, Err: err}
	}
	return buf.String(), nil
}

// Render loads and renders subject, text, and html templates for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
