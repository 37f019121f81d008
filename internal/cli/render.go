package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ghscout/internal/config"
	"github.com/rshade/ghscout/internal/engine/cache"
	"github.com/rshade/ghscout/internal/github"
)

const (
	descriptionWidth = 50
	dateLayout       = "2006-01-02"
)

//nolint:gochecknoglobals // Shared style, read-only after init.
var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// renderer writes results in the configured output format.
type renderer struct {
	w      io.Writer
	format string
	styled bool
	num    *message.Printer
}

func newRenderer(w io.Writer, format string) *renderer {
	return &renderer{
		w:      w,
		format: format,
		styled: isWriterTerminal(w),
		num:    message.NewPrinter(language.English),
	}
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// searchOutput is the structured form of a filtered search result.
type searchOutput struct {
	TotalCount        int                 `json:"total_count"        yaml:"total_count"`
	IncompleteResults bool                `json:"incomplete_results" yaml:"incomplete_results"`
	Count             int                 `json:"count"              yaml:"count"`
	Items             []github.Repository `json:"items"              yaml:"items"`
}

// cacheStatsOutput is the structured form of cache stats.
type cacheStatsOutput struct {
	Path    string `json:"path"    yaml:"path"`
	TTL     string `json:"ttl"     yaml:"ttl"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
	cache.Stats `yaml:",inline"`
}

func (r *renderer) structured(v any) (bool, error) {
	switch r.format {
	case config.OutputJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// searchResult renders the items that survived filtering together with the
// API's total count.
func (r *renderer) searchResult(result *github.SearchResult, items []github.Repository) error {
	if ok, err := r.structured(searchOutput{
		TotalCount:        result.TotalCount,
		IncompleteResults: result.IncompleteResults,
		Count:             len(items),
		Items:             items,
	}); ok {
		return err
	}
	if err := r.repositoryTable(items); err != nil {
		return err
	}
	_, err := r.num.Fprintf(r.w, "\nShowing %d of %d matching repositories\n", len(items), result.TotalCount)
	return err
}

// repositories renders a repository list.
func (r *renderer) repositories(repos []github.Repository) error {
	if repos == nil {
		repos = []github.Repository{}
	}
	if ok, err := r.structured(repos); ok {
		return err
	}
	return r.repositoryTable(repos)
}

func (r *renderer) repositoryTable(repos []github.Repository) error {
	if len(repos) == 0 {
		_, err := fmt.Fprintln(r.w, "No repositories found.")
		return err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREPOSITORY\tSTARS\tFORKS\tLANGUAGE\tUPDATED\tDESCRIPTION")
	for _, repo := range repos {
		name := repo.FullName
		if repo.Archived {
			name += " (archived)"
		}
		r.num.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			strconv.FormatInt(repo.ID, 10),
			name,
			repo.StargazersCount,
			repo.ForksCount,
			orDash(repo.Language),
			formatDate(repo.UpdatedAt),
			truncate(repo.Description, descriptionWidth),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return r.writeTable(buf.String())
}

// repository renders a single repository as key/value rows.
func (r *renderer) repository(repo *github.Repository) error {
	if ok, err := r.structured(repo); ok {
		return err
	}

	owner := ""
	if repo.Owner != nil {
		owner = repo.Owner.Login
	}
	return r.details(repo.FullName, [][2]string{
		{"ID", strconv.FormatInt(repo.ID, 10)},
		{"Owner", orDash(owner)},
		{"Description", orDash(repo.Description)},
		{"URL", orDash(repo.HTMLURL)},
		{"Homepage", orDash(repo.Homepage)},
		{"Language", orDash(repo.Language)},
		{"Stars", r.num.Sprintf("%d", repo.StargazersCount)},
		{"Forks", r.num.Sprintf("%d", repo.ForksCount)},
		{"Open issues", r.num.Sprintf("%d", repo.OpenIssuesCount)},
		{"Default branch", orDash(repo.DefaultBranch)},
		{"Topics", orDash(strings.Join(repo.Topics, ", "))},
		{"Archived", fmt.Sprintf("%t", repo.Archived)},
		{"Fork", fmt.Sprintf("%t", repo.Fork)},
		{"Created", formatDate(repo.CreatedAt)},
		{"Updated", formatDate(repo.UpdatedAt)},
		{"Pushed", formatDate(repo.PushedAt)},
	})
}

// user renders a user profile as key/value rows.
func (r *renderer) user(u *github.User) error {
	if ok, err := r.structured(u); ok {
		return err
	}
	return r.details(u.Login, [][2]string{
		{"ID", strconv.FormatInt(u.ID, 10)},
		{"Name", orDash(u.Name)},
		{"Type", orDash(u.Type)},
		{"Company", orDash(u.Company)},
		{"Location", orDash(u.Location)},
		{"Blog", orDash(u.Blog)},
		{"Bio", orDash(u.Bio)},
		{"URL", orDash(u.HTMLURL)},
		{"Public repos", r.num.Sprintf("%d", u.PublicRepos)},
		{"Followers", r.num.Sprintf("%d", u.Followers)},
		{"Following", r.num.Sprintf("%d", u.Following)},
		{"Created", formatDate(u.CreatedAt)},
	})
}

// cacheStats renders cache entry counts and settings.
func (r *renderer) cacheStats(stats cache.Stats, path string, ttl time.Duration, enabled bool) error {
	out := cacheStatsOutput{
		Path:    path,
		TTL:     cache.FormatDuration(ttl),
		Enabled: enabled,
		Stats:   stats,
	}
	if !enabled {
		out.TTL = ""
	}
	if ok, err := r.structured(out); ok {
		return err
	}
	return r.details("Cache", [][2]string{
		{"Enabled", fmt.Sprintf("%t", enabled)},
		{"File", orDash(path)},
		{"TTL", orDash(out.TTL)},
		{"Entries", r.num.Sprintf("%d", stats.Total)},
		{"Valid", r.num.Sprintf("%d", stats.Valid)},
		{"Expired", r.num.Sprintf("%d", stats.Expired)},
	})
}

func (r *renderer) details(title string, rows [][2]string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, title)
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s:\t%s\n", row[0], row[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return r.writeTable(buf.String())
}

// writeTable writes aligned text, styling the first line on a terminal.
// Styling happens after alignment so escape codes do not skew column widths.
func (r *renderer) writeTable(text string) error {
	if r.styled {
		header, rest, _ := strings.Cut(text, "\n")
		text = headerStyle.Render(header) + "\n" + rest
	}
	_, err := io.WriteString(r.w, text)
	return err
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "-"
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
