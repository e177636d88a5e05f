package profile

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

const dateLayout = "Jan 2, 2006"

var defaultJoined = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func button(action, class, label string) templ.Component {
	return ui.ActionButton(view.ActionPath(action), "btn "+class, label)
}

func wrap(class string, children ...templ.Component) templ.Component {
	return ui.With(ui.Wrap(`<div class="`+ui.ClassAttr(class)+`">`, `</div>`), children...)
}

// containerView renders the whole profile page. The form subregion is a slot.
func containerView(p entity.Profile, now time.Time) templ.Component {
	if p == nil {
		return absenceView()
	}
	return wrap("profile-page",
		ui.With(ui.Card("profile-header"),
			identity(p),
			wrap("header-actions",
				button(ActionToggleEdit, "btn-primary", "✏️ Edit Profile"),
				button(ActionShowSettings, "btn-info", "⚙️ Settings"),
			),
			statsView(p),
		),
		wrap("profile-details",
			ui.With(ui.Card("profile-info"), templ.Raw(`<h3>📋 Profile Information</h3>`), view.Slot(RegionForm, "")),
			ui.With(ui.Wrap(`<aside class="profile-sidebar">`, `</aside>`),
				ui.With(ui.Card("quick-actions"),
					templ.Raw(`<h4>⚡ Quick Actions</h4>`),
					button(ActionChangePassword, "btn-success", "🔒 Change Password"),
					exportLink(),
					button(ActionShowPrivacy, "btn-warning", "🛡️ Privacy Settings"),
				),
				ui.With(ui.Card("recent-activity"),
					templ.Raw(`<h4>📊 Account Activity</h4>`),
					detail("Last Login", p.Time(entity.FieldLastLogin, now).Format(dateLayout)),
					detail("Member Since", p.Time(entity.FieldJoinedDate, defaultJoined).Format(dateLayout)),
				),
			),
		),
	)
}

func identity(p entity.Profile) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		name := p.Text(entity.FieldName, "")
		initial := "👤"
		if name != "" {
			initial = string([]rune(name)[:1])
		}
		_, err := fmt.Fprintf(w,
			`<div class="avatar">%s</div><div class="identity"><h1>%s</h1><p class="role">%s • %s</p><p class="email">📧 %s</p></div>`,
			templ.EscapeString(initial),
			templ.EscapeString(p.Text(entity.FieldName, "User Profile")),
			templ.EscapeString(p.Text(entity.FieldRole, "Educator")),
			templ.EscapeString(p.Text(entity.FieldDepartment, "Department")),
			templ.EscapeString(p.Text(entity.FieldEmail, "email@example.com")))
		return err
	})
}

func exportLink() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<a href="%s" download="%s" class="btn btn-info">📥 Export My Data</a>`,
			ui.Href(ExportPath), templ.EscapeString(ExportFileName))
		return err
	})
}

var stats = []struct{ key, label string }{
	{"students_taught", "Students Taught"},
	{"courses_created", "Courses Created"},
	{"assessments_created", "Assessments Created"},
	{"years_experience", "Years Experience"},
}

func statsView(p entity.Profile) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="profile-stats">`); err != nil {
			return err
		}
		for _, s := range stats {
			_, err := fmt.Fprintf(w, `<div class="stat"><div class="stat-value">%d</div><div class="stat-label">%s</div></div>`,
				p.Stat(s.key), templ.EscapeString(s.label))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func detail(label, value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="detail"><span class="detail-label">%s:</span><span class="detail-value">%s</span></div>`,
			templ.EscapeString(label), templ.EscapeString(value))
		return err
	})
}

func absenceView() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="card profile-empty"><h3>Profile unavailable</h3><p>Your profile could not be loaded.</p><a href="%s" class="btn btn-primary">🔄 Try again</a></div>`,
			ui.Href(PagePath))
		return err
	})
}

var readFields = []struct{ label, key, fallback string }{
	{"Full Name", entity.FieldName, "Not specified"},
	{"Email", entity.FieldEmail, "Not specified"},
	{"Role", entity.FieldRole, "Not specified"},
	{"Department", entity.FieldDepartment, "Not specified"},
	{"Phone", entity.FieldPhone, "Not specified"},
	{"Bio", entity.FieldBio, "No bio provided"},
}

// readView renders the form subregion in Viewing state.
func readView(p entity.Profile) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="profile-fields">`); err != nil {
			return err
		}
		for _, f := range readFields {
			_, err := fmt.Fprintf(w, `<div class="field"><label>%s:</label><div class="field-value">%s</div></div>`,
				templ.EscapeString(f.label), templ.EscapeString(p.Text(f.key, f.fallback)))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func input(label, typ, name, value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		id := templ.EscapeString("profile-" + name)
		_, err := fmt.Fprintf(w, `<div class="field"><label for="%s">%s:</label><input type="%s" id="%s" name="%s" value="%s"></div>`,
			id, templ.EscapeString(label), templ.EscapeString(typ), id, templ.EscapeString(name), templ.EscapeString(value))
		return err
	})
}

// submitTo is a submit button that posts its form to another action.
func submitTo(action, class, label string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		href := ui.Href(view.ActionPath(action))
		_, err := fmt.Fprintf(w, `<button type="submit" class="%s" formaction="%s" hx-post="%s">%s</button>`,
			ui.ClassAttr(class), href, href, templ.EscapeString(label))
		return err
	})
}

// editView renders the form subregion in Editing state.
func editView(d *Draft) templ.Component {
	bio := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="field"><label for="profile-bio">Bio:</label><textarea id="profile-bio" name="%s" rows="4">%s</textarea></div>`,
			templ.EscapeString(entity.FieldBio), templ.EscapeString(d.Bio))
		return err
	})
	return ui.With(ui.ActionForm(view.ActionPath(ActionSave), "edit-profile-form", ""),
		input("Full Name", "text", entity.FieldName, d.Name),
		input("Email", "email", entity.FieldEmail, d.Email),
		input("Role", "text", entity.FieldRole, d.Role),
		input("Department", "text", entity.FieldDepartment, d.Department),
		input("Phone", "tel", entity.FieldPhone, d.Phone),
		bio,
		wrap("form-actions",
			templ.Raw(`<button type="submit" class="btn btn-success">✅ Save Changes</button>`),
			submitTo(ActionCancel, "btn btn-secondary", "❌ Cancel"),
		),
	)
}

type settingsOption struct{ value, label string }

var (
	languageOptions = []settingsOption{{"en", "English"}, {"id", "Bahasa Indonesia"}}
	timezoneOptions = []settingsOption{{"UTC-5", "UTC-5 (Eastern)"}, {"UTC+7", "UTC+7 (Jakarta)"}, {"UTC+0", "UTC+0 (GMT)"}}
)

func selectOf(p entity.Profile, label, name string, opts []settingsOption) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		current := ""
		if v, ok := p.Preference(name); ok {
			current, _ = v.(string)
		}
		if _, err := fmt.Fprintf(w, `<label>%s<select name="%s">`, templ.EscapeString(label), templ.EscapeString(name)); err != nil {
			return err
		}
		for _, o := range opts {
			selected := ""
			if o.value == current {
				selected = " selected"
			}
			_, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(o.value), selected, templ.EscapeString(o.label))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label>`)
		return err
	})
}

func settingsModal(p entity.Profile) templ.Component {
	checked := ""
	if p.PreferenceEnabled("notifications") {
		checked = " checked"
	}
	return wrap("modal-content",
		wrap("modal-header",
			templ.Raw(`<h3>⚙️ Profile Settings</h3>`),
			button(ActionHideModal, "btn-close", "×"),
		),
		ui.With(ui.ActionForm(view.ActionPath(ActionSaveSettings), "", "modal-body"),
			templ.Raw(`<label><input type="checkbox" name="notifications" value="on"`+checked+`> 🔔 Email Notifications</label>`),
			selectOf(p, "🌍 Language:", "language", languageOptions),
			selectOf(p, "🕐 Timezone:", "timezone", timezoneOptions),
			wrap("modal-actions",
				submitTo(ActionHideModal, "btn btn-secondary", "Cancel"),
				templ.Raw(`<button type="submit" class="btn btn-primary">Save Settings</button>`),
			),
		),
	)
}

func modalBackdrop(content templ.Component) templ.Component {
	return wrap("modal-backdrop show", content)
}
