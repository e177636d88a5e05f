// Package view keeps the server-side picture of a portal page.
//
// A Document is a set of named regions. Each region holds the markup its owner
// last rendered into it. Regions nest through slots: a Slot component leaves a
// marker in the parent's markup that is filled with the child region when the
// page or a patch is assembled, so re-rendering a child never touches its
// parent's markup. Flush reports only the regions whose markup changed since the
// previous flush.
package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

// ErrUnknownAction is returned by Dispatch when no handler is registered.
var ErrUnknownAction = errors.New("unknown action")

// Event is one user action posted from the page.
type Event struct {
	Action string
	Values url.Values
}

// Handler runs a user action. It mutates module state and re-renders regions.
type Handler func(ctx context.Context, ev Event) error

// Patch is the new content of one region.
type Patch struct {
	Region string
	HTML   string
}

type Document struct {
	content  map[string]string
	flushed  map[string]string
	dirty    map[string]bool
	order    []string
	handlers map[string]Handler
}

func NewDocument() *Document {
	return &Document{
		content:  map[string]string{},
		flushed:  map[string]string{},
		dirty:    map[string]bool{},
		handlers: map[string]Handler{},
	}
}

// Render replaces the markup of region with c.
func (d *Document) Render(ctx context.Context, region string, c templ.Component) error {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return fmt.Errorf("render %s: %w", region, err)
	}
	if _, ok := d.content[region]; !ok {
		d.order = append(d.order, region)
	}
	d.content[region] = b.String()
	return nil
}

// Content returns the region's own markup, with child slots unfilled.
func (d *Document) Content(region string) (string, bool) {
	s, ok := d.content[region]
	return s, ok
}

// HTML returns the region's markup with every slot filled.
func (d *Document) HTML(region string) string {
	return d.assemble(d.content[region], map[string]bool{region: true})
}

// On registers h for action, replacing any previous handler.
func (d *Document) On(action string, h Handler) {
	d.handlers[action] = h
}

// Off removes the handlers for actions. Dispatching them then fails with
// ErrUnknownAction.
func (d *Document) Off(actions ...string) {
	for _, a := range actions {
		delete(d.handlers, a)
	}
}

// Handles reports whether action has a handler.
func (d *Document) Handles(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Dispatch runs the handler registered for ev.Action.
func (d *Document) Dispatch(ctx context.Context, ev Event) error {
	h, ok := d.handlers[ev.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, ev.Action)
	}
	return h(ctx, ev)
}

// Flush returns a patch for every region whose markup changed since the last
// flush. A region nested in a patched ancestor is covered by the ancestor's
// patch and is not reported separately.
func (d *Document) Flush() []Patch {
	changed := map[string]bool{}
	for _, id := range d.order {
		if d.dirty[id] || d.content[id] != d.flushed[id] {
			changed[id] = true
		}
	}
	covered := map[string]bool{}
	for id := range changed {
		for _, child := range d.descendants(id) {
			covered[child] = true
		}
	}

	var patches []Patch
	for _, id := range d.order {
		if !changed[id] || covered[id] {
			continue
		}
		patches = append(patches, Patch{Region: id, HTML: d.HTML(id)})
		d.markFlushed(id)
	}
	return patches
}

// Page renders a full page from layout, fills its slots and marks every
// region it contains as delivered.
func (d *Document) Page(ctx context.Context, layout templ.Component) (string, error) {
	var b strings.Builder
	if err := layout.Render(ctx, &b); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	raw := b.String()
	for _, id := range slotIDs(raw) {
		d.markFlushed(id)
	}
	return d.assemble(raw, map[string]bool{}), nil
}

// Invalidate makes the next Flush deliver region even if its markup is
// unchanged. Forms use it to discard what the user typed.
func (d *Document) Invalidate(region string) {
	if _, ok := d.content[region]; ok {
		d.dirty[region] = true
	}
}

func (d *Document) markFlushed(id string) {
	d.flushed[id] = d.content[id]
	delete(d.dirty, id)
	for _, child := range d.descendants(id) {
		d.flushed[child] = d.content[child]
		delete(d.dirty, child)
	}
}

func (d *Document) descendants(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range slotIDs(d.content[cur]) {
			if seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

func (d *Document) assemble(raw string, visiting map[string]bool) string {
	return slotMarker.ReplaceAllStringFunc(raw, func(m string) string {
		id := slotMarker.FindStringSubmatch(m)[1]
		if visiting[id] {
			return ""
		}
		visiting[id] = true
		defer delete(visiting, id)
		return d.assemble(d.content[id], visiting)
	})
}

var slotMarker = regexp.MustCompile(`<!--slot:([A-Za-z0-9_-]+)-->`)

func slotIDs(raw string) []string {
	var ids []string
	for _, m := range slotMarker.FindAllStringSubmatch(raw, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

// Slot renders the container element for region. Its content is filled in
// when the page or a patch is assembled.
func Slot(region string, class string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		attrs := `id="` + templ.EscapeString(region) + `"`
		if class != "" {
			attrs += ` class="` + templ.EscapeString(class) + `"`
		}
		_, err := io.WriteString(w, "<div "+attrs+"><!--slot:"+region+"--></div>")
		return err
	})
}

// OOB renders patches as htmx out-of-band swaps.
func OOB(patches []Patch) string {
	var b strings.Builder
	for _, p := range patches {
		b.WriteString(`<div id="`)
		b.WriteString(templ.EscapeString(p.Region))
		b.WriteString(`" hx-swap-oob="innerHTML">`)
		b.WriteString(p.HTML)
		b.WriteString(`</div>`)
	}
	return b.String()
}

// ActionPath is the URL user actions are posted to.
func ActionPath(action string) string {
	return "/portal/actions/" + url.PathEscape(action)
}
