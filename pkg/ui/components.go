package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Text renders s as escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// With renders parent with children as its child block, the way a templ call
// with a body does.
func With(parent templ.Component, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return parent.Render(templ.WithChildren(ctx, templ.Join(children...)), w)
	})
}

// Children renders the child block of the enclosing component, if any.
func Children(ctx context.Context, w io.Writer) error {
	c := templ.GetChildren(ctx)
	if c == nil {
		return nil
	}
	return c.Render(templ.ClearChildren(ctx), w)
}

// Wrap renders its children between open and close. Both are literal markup.
func Wrap(open, close string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}
		if err := Children(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, close)
		return err
	})
}

// Card is a <div class="card ..."> around its children.
func Card(class string) templ.Component {
	return Wrap(`<div class="`+ClassAttr("card", class)+`">`, `</div>`)
}

// Panel is a titled card section.
func Panel(class, title string) templ.Component {
	return Wrap(
		`<section class="`+ClassAttr("card", class)+`"><h3>`+templ.EscapeString(title)+`</h3>`,
		`</section>`)
}

// EmptyLine is the placeholder shown for an empty list.
func EmptyLine(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p class="empty">%s</p>`, templ.EscapeString(s))
		return err
	})
}

// ClassAttr joins classes for a class attribute value. Empty names are skipped.
func ClassAttr(classes ...any) string {
	kept := make([]any, 0, len(classes))
	for _, c := range classes {
		if s, ok := c.(string); ok && s == "" {
			continue
		}
		kept = append(kept, c)
	}
	return templ.EscapeString(templ.Classes(kept...).String())
}

// Href sanitizes u for an href or action attribute.
func Href(u string) string {
	return templ.EscapeString(string(templ.URL(u)))
}

// ActionButton renders a button that posts to action. It works as a plain form
// post and, with htmx loaded, as an in-place update.
func ActionButton(action, class, label string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		href := Href(action)
		_, err := fmt.Fprintf(w,
			`<form method="post" action="%s" hx-post="%s" hx-swap="none" class="inline-action"><button type="submit" class="%s">%s</button></form>`,
			href, href, ClassAttr(class), templ.EscapeString(label))
		return err
	})
}

// ActionForm is a form posting to action around its children.
func ActionForm(action, id, class string) templ.Component {
	href := Href(action)
	open := `<form method="post" action="` + href + `" hx-post="` + href + `" hx-swap="none"`
	if id != "" {
		open += ` id="` + templ.EscapeString(id) + `"`
	}
	if class != "" {
		open += ` class="` + ClassAttr(class) + `"`
	}
	return Wrap(open+`>`, `</form>`)
}
