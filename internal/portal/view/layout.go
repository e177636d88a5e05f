package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/agenticlearn/educator-portal/pkg/ui"
)

// Regions shared by every page.
const (
	RegionHeader        = "app-header"
	RegionNotifications = "notifications"
	RegionModal         = "profile-modal"
)

const htmxSrc = "https://unpkg.com/htmx.org@1.9.12"

// NavItem is one entry of the side navigation.
type NavItem struct {
	Key   string
	Label string
	Href  string
}

var Nav = []NavItem{
	{Key: "beranda", Label: "🏠 Beranda", Href: "/portal"},
	{Key: "analytics", Label: "📊 Analytics", Href: "/portal/analytics"},
	{Key: "communication", Label: "💬 Communication", Href: "/portal/communication"},
	{Key: "content", Label: "📚 Content", Href: "/portal/content"},
	{Key: "profile", Label: "👤 Profile", Href: "/portal/profile"},
}

// Layout is the full page shell around one main region.
func Layout(appName, title, active string, main templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s · %s</title><script src="%s"></script></head><body class="portal"><nav class="sidebar"><div class="brand">%s</div>`,
			templ.EscapeString(title), templ.EscapeString(appName), ui.Href(htmxSrc), templ.EscapeString(appName))
		if err != nil {
			return err
		}
		for _, n := range Nav {
			_, err := fmt.Fprintf(w, `<a href="%s" class="%s">%s</a>`,
				ui.Href(n.Href), ui.ClassAttr("nav-link", templ.KV("active", n.Key == active)), templ.EscapeString(n.Label))
			if err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</nav><div class="main">`); err != nil {
			return err
		}
		if err := Slot(RegionHeader, "header").Render(ctx, w); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<main id="%s" class="page-content active">`, templ.EscapeString("page-"+active))
		if err != nil {
			return err
		}
		if err := main.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</main></div>`); err != nil {
			return err
		}
		if err := Slot(RegionNotifications, "notification-stack").Render(ctx, w); err != nil {
			return err
		}
		if err := Slot(RegionModal, "modal").Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</body></html>`)
		return err
	})
}
