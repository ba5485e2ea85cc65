package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/blink-new/ecotravel-booking-platform/internal/content"
	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutTemplate = "layout.html"

// Renderer executes a page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		base := path.Base(name)
		if base == layoutTemplate {
			continue
		}
		tpl, err := template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(templatesFS, "templates/"+layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", base, err)
		}
		r.pages[base] = tpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tpl.ExecuteTemplate(w, layoutTemplate, data)
}

var templateFuncs = template.FuncMap{
	"markdown":      content.Markdown,
	"currency":      formatCurrency,
	"date":          formatDate,
	"dateValue":     dateValue,
	"statusLabel":   statusLabel,
	"statusBadge":   statusBadge,
	"paymentBadge":  paymentBadge,
	"priorityBadge": content.PriorityClass,
	"initials":      initials,
	"join":          strings.Join,
	"thousands":     formatThousands,
	"add":           func(a, b int) int { return a + b },
	"seq":           seq,
	"contains":      func(list domain.StringList, v string) bool { return list.Contains(v) },
}

type navItem struct {
	Path   string
	Label  string
	Active bool
}

var customerNav = []navItem{
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/trips", Label: "My Trips"},
	{Path: "/messages", Label: "Messages"},
	{Path: "/bookings", Label: "Bookings"},
}

var consultantNav = []navItem{
	{Path: "/consultant", Label: "Dashboard"},
	{Path: "/consultant/trips", Label: "Trip Management"},
	{Path: "/consultant/customers", Label: "Customers"},
	{Path: "/consultant/messages", Label: "Messages"},
	{Path: "/consultant/quotes", Label: "Quotes"},
}

// publicPaths have their own header and never show the app navigation.
var publicPaths = map[string]bool{
	"/":                  true,
	"/landing":           true,
	"/developer-roadmap": true,
}

// pageView is the data every template receives.
type pageView struct {
	Title   string
	User    *domain.User
	Home    string
	Nav     []navItem
	ShowNav bool
	CSRF    string
	Notice  string
	Error   string
	Data    any
}

func newPage(c echo.Context, title string, data any) pageView {
	view := pageView{Title: title, Home: "/", Data: data}
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
		view.CSRF = token
	}
	user, ok := CurrentUser(c)
	if !ok {
		return view
	}
	view.User = user
	view.Home = homePath(user)
	view.Nav = navFor(user, c.Request().URL.Path)
	view.ShowNav = !publicPaths[c.Request().URL.Path]
	return view
}

func navFor(user *domain.User, current string) []navItem {
	source := customerNav
	if user.Role.IsStaff() {
		source = consultantNav
	}
	items := make([]navItem, len(source))
	for i, item := range source {
		item.Active = item.Path == current
		items[i] = item
	}
	return items
}

func seq(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
