// Package tui implements the terminal UI: a paginated catalog list with
// debounced search and a per-title detail panel. All state transitions run
// on the single bubbletea update goroutine.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gmorais/marquee/internal/detail"
	"github.com/gmorais/marquee/internal/feed"
	"github.com/gmorais/marquee/internal/tui/actions"
	"github.com/gmorais/marquee/internal/tui/platform"
	"github.com/gmorais/marquee/internal/tui/state"
	tuitheme "github.com/gmorais/marquee/internal/tui/theme"
	"github.com/gmorais/marquee/internal/tui/view"
)

// continuationThreshold is how close to the end of the loaded list the
// cursor must come before the next page is requested.
const continuationThreshold = 5

const statusVisibleFor = 3 * time.Second

type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "browse"
}

// Deps carries everything the model needs injected. RenderPoster, OpenURL
// and CopyURL may be nil, which disables the corresponding feature.
type Deps struct {
	BrowseSource feed.Source
	SearchSource feed.Source
	Aggregator   *detail.Aggregator
	LoadGenres   tea.Cmd
	RenderPoster func(imageURL string, width int) (string, error)
	OpenURL      func(url string) error
	CopyURL      func(url string) error
}

type modalState struct {
	open    bool
	loading bool
	movieID int64
	bundle  detail.Bundle
	errText string
	top     int
	poster  view.PosterPreviewState
}

type Model struct {
	theme      tuitheme.Theme
	browse     *feed.Controller
	search     *feed.Controller
	aggregator *detail.Aggregator
	deps       Deps

	genres map[int]string

	mode   Mode
	cursor int
	width  int
	height int

	searchInput   textinput.Model
	searchFocused bool
	debounceSeq   int

	spin spinner.Model

	warning  string
	status   string
	statusID int

	showHelp bool

	modal modalState
}

func NewModel(deps Deps) Model {
	input := textinput.New()
	input.Placeholder = "type to search movies"
	input.Prompt = "/ "
	input.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		theme:       tuitheme.Default(),
		browse:      feed.New(feed.KindBrowse, deps.BrowseSource),
		search:      feed.New(feed.KindSearch, deps.SearchSource),
		aggregator:  deps.Aggregator,
		deps:        deps,
		searchInput: input,
		spin:        sp,
		width:       80,
		height:      24,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.deps.LoadGenres != nil {
		cmds = append(cmds, m.deps.LoadGenres)
	}
	if cmd := m.fetchNext(m.browse); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// active returns the controller behind whatever list is on screen.
func (m *Model) active() *feed.Controller {
	if m.mode == ModeSearch {
		return m.search
	}
	return m.browse
}

func (m *Model) fetchNext(c *feed.Controller) tea.Cmd {
	req, ok := c.BeginFetch()
	if !ok {
		return nil
	}
	return actions.FetchPageCmd(c.Source(), req)
}

// maybeContinue fires the next page fetch when the cursor has drifted close
// enough to the end of the loaded rows.
func (m *Model) maybeContinue() tea.Cmd {
	c := m.active()
	if !state.NearEnd(m.cursor, c.Len(), continuationThreshold) {
		return nil
	}
	return m.fetchNext(c)
}

func (m *Model) controllerFor(kind feed.Kind) *feed.Controller {
	if kind == feed.KindSearch {
		return m.search
	}
	return m.browse
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case actions.GenresLoadedMsg:
		m.genres = msg.Table
		return m, nil

	case actions.GenresErrorMsg:
		// Genre labels are decoration; the catalog stays usable without them.
		m.warning = "genre labels unavailable: " + msg.Err.Error()
		return m, nil

	case actions.PageLoadedMsg:
		c := m.controllerFor(msg.Request.Kind)
		appended := c.ApplyPage(msg.Request, msg.Page)
		if appended != nil {
			m.warning = ""
		}
		if c == m.active() {
			m.cursor = state.ClampCursor(m.cursor, c.Len())
		}
		return m, nil

	case actions.PageErrorMsg:
		c := m.controllerFor(msg.Request.Kind)
		if c.ApplyError(msg.Request, msg.Err) {
			m.warning = msg.Err.Error()
		}
		return m, nil

	case actions.SearchDebounceMsg:
		if msg.Seq != m.debounceSeq {
			return m, nil
		}
		return m.commitQuery()

	case actions.DetailLoadedMsg:
		if !m.modalAwaiting(msg.MovieID) {
			return m, nil
		}
		m.modal.loading = false
		m.modal.bundle = msg.Bundle
		m.modal.top = 0
		return m, m.loadPoster(msg)

	case actions.DetailErrorMsg:
		if !m.modalAwaiting(msg.MovieID) {
			return m, nil
		}
		m.modal.loading = false
		m.modal.errText = msg.Err.Error()
		return m, nil

	case actions.PosterLoadedMsg:
		if m.modal.open && m.modal.movieID == msg.MovieID {
			m.modal.poster.Loading = false
			m.modal.poster.Raw = msg.Raw
		}
		return m, nil

	case actions.PosterErrorMsg:
		if m.modal.open && m.modal.movieID == msg.MovieID {
			m.modal.poster.Loading = false
			m.modal.poster.Err = msg.Err.Error()
		}
		return m, nil

	case actions.StatusExpiredMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// modalAwaiting reports whether the detail panel is still waiting for this
// title. Results for anything else resolved too late and are dropped.
func (m *Model) modalAwaiting(movieID int64) bool {
	return m.modal.open && m.modal.loading && m.modal.movieID == movieID
}

func (m *Model) loadPoster(msg actions.DetailLoadedMsg) tea.Cmd {
	if m.deps.RenderPoster == nil {
		return nil
	}
	imageURL := view.PosterURL(msg.Bundle.Movie.PosterPath)
	if imageURL == "" {
		return nil
	}
	m.modal.poster = view.PosterPreviewState{Enabled: true, Loading: true}
	return actions.LoadPosterCmd(msg.MovieID, imageURL, m.contentWidth(), m.deps.RenderPoster)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal.open {
		return m.updateModalKey(msg)
	}

	if m.showHelp {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "?":
			m.showHelp = false
		}
		return m, nil
	}

	if m.searchFocused {
		switch msg.Type {
		case tea.KeyEsc:
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		case tea.KeyEnter:
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		}
		before := m.searchInput.Value()
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.searchInput.Value() == before {
			return m, cmd
		}
		m.debounceSeq++
		return m, tea.Batch(cmd, actions.DebounceCmd(m.debounceSeq))
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "esc":
		if m.mode == ModeSearch {
			return m.leaveSearch()
		}
		return m, nil
	case "j", "down":
		return m.moveCursor(1)
	case "k", "up":
		return m.moveCursor(-1)
	case "pgdown":
		return m.moveCursor(state.PageStep(m.height, m.status != "" || m.warning != ""))
	case "pgup":
		return m.moveCursor(-state.PageStep(m.height, m.status != "" || m.warning != ""))
	case "g":
		m.cursor = 0
		return m, nil
	case "G":
		m.cursor = state.ClampCursor(m.active().Len()-1, m.active().Len())
		return m, m.maybeContinue()
	case "?":
		m.showHelp = true
		return m, nil
	case "enter":
		return m.openModal()
	}
	return m, nil
}

func (m Model) updateModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.modal = modalState{}
		return m, nil
	case "j", "down":
		maxTop := view.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight())
		if m.modal.top < maxTop {
			m.modal.top++
		}
		return m, nil
	case "k", "up":
		if m.modal.top > 0 {
			m.modal.top--
		}
		return m, nil
	case "o":
		return m.openTrailer()
	case "y":
		return m.copyTrailer()
	}
	return m, nil
}

func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	m.cursor = state.ClampCursor(m.cursor+delta, m.active().Len())
	return m, m.maybeContinue()
}

func (m Model) openModal() (tea.Model, tea.Cmd) {
	c := m.active()
	if c.Len() == 0 || m.aggregator == nil {
		return m, nil
	}
	movie := c.Items()[state.ClampCursor(m.cursor, c.Len())]
	m.modal = modalState{open: true, loading: true, movieID: movie.ID}
	return m, actions.FetchDetailCmd(m.aggregator, movie.ID)
}

// commitQuery applies whatever is in the search box once typing has settled.
func (m Model) commitQuery() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.searchInput.Value())
	switch m.search.SetQuery(query) {
	case feed.QueryCleared:
		return m.leaveSearch()
	case feed.QueryCommitted:
		m.mode = ModeSearch
		m.cursor = 0
		return m, m.fetchNext(m.search)
	default:
		// Same query as before: show the accumulated results as they are.
		if query != "" {
			m.mode = ModeSearch
			m.cursor = state.ClampCursor(m.cursor, m.search.Len())
		}
		return m, nil
	}
}

func (m Model) leaveSearch() (tea.Model, tea.Cmd) {
	m.mode = ModeBrowse
	m.cursor = state.ClampCursor(m.cursor, m.browse.Len())
	return m, m.maybeContinue()
}

func (m Model) openTrailer() (tea.Model, tea.Cmd) {
	trailer := m.modal.bundle.Trailer
	if trailer == nil || m.deps.OpenURL == nil {
		return m, nil
	}
	url, err := platform.ValidateURL(platform.TrailerURL(trailer.Key))
	if err != nil {
		return m.showStatus(err.Error())
	}
	if err := m.deps.OpenURL(url); err != nil {
		return m.showStatus("could not open browser")
	}
	return m.showStatus("Opened trailer in browser")
}

func (m Model) copyTrailer() (tea.Model, tea.Cmd) {
	trailer := m.modal.bundle.Trailer
	if trailer == nil || m.deps.CopyURL == nil {
		return m, nil
	}
	if err := m.deps.CopyURL(platform.TrailerURL(trailer.Key)); err != nil {
		return m.showStatus("could not copy trailer link")
	}
	return m.showStatus("Trailer link copied")
}

func (m Model) showStatus(text string) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusID++
	return m, actions.ClearStatusCmd(m.statusID, statusVisibleFor)
}

func (m *Model) anyLoading() bool {
	return m.browse.InFlight() || m.search.InFlight() || (m.modal.open && m.modal.loading) || m.modal.poster.Loading
}

func (m *Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) detailBodyHeight() int {
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) detailLines() []string {
	return view.DetailLines(m.modal.bundle, m.contentWidth(), 2, m.modal.poster, m.theme)
}

func (m Model) View() string {
	if m.modal.open {
		return m.viewModal()
	}
	if m.showHelp {
		return m.viewHelp()
	}
	return m.viewList()
}

func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("marquee"))
	b.WriteString("  ")
	b.WriteString(m.theme.ModePill.Render("help"))
	b.WriteString("\n\n")
	for _, line := range view.HelpLines() {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MetaLabel.Render("esc or ? to close"))
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("marquee"))
	b.WriteString("  ")
	b.WriteString(m.theme.ModePill.Render(m.mode.String()))
	if m.anyLoading() {
		b.WriteString("  " + m.spin.View())
	}
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	c := m.active()
	switch {
	case m.mode == ModeSearch && c.Empty():
		b.WriteString(m.theme.Empty.Render(fmt.Sprintf("No results for %q", c.Query())))
		b.WriteString("\n")
	case c.Len() == 0 && c.InFlight():
		b.WriteString(m.theme.Empty.Render("Loading movies..."))
		b.WriteString("\n")
	case c.Len() == 0:
		b.WriteString(m.theme.Empty.Render("Nothing to show"))
		b.WriteString("\n")
	default:
		m.writeRows(&b, c)
	}

	b.WriteString("\n")
	totalPages, totalKnown := c.TotalPages()
	loadedPages := c.NextPage() - 1
	if loadedPages < 1 {
		loadedPages = 1
	}
	b.WriteString(view.Footer(m.mode.String(), c.Len(), loadedPages, totalPages, totalKnown, c.Query(), m.theme))
	b.WriteString("\n")
	b.WriteString(view.Message(m.anyLoading(), m.warning != "", m.status, m.warning, m.theme))
	b.WriteString("\n")
	b.WriteString(m.theme.MetaLabel.Render(view.Toolbar(false)))
	return b.String()
}

func (m Model) writeRows(b *strings.Builder, c *feed.Controller) {
	items := c.Items()
	listHeight := state.PageStep(m.height, m.status != "" || m.warning != "")
	start, end := state.CenteredWindow(len(items), m.cursor, listHeight)
	for i := start; i < end; i++ {
		line := view.RenderMovieLine(view.MovieLineParams{
			Movie:  items[i],
			Genres: view.GenreNames(items[i].GenreIDs, m.genres),
			Active: i == m.cursor,
			Width:  m.width,
		}, m.theme)
		b.WriteString(line)
		b.WriteString("\n")
		if i == m.cursor {
			if overview := view.RenderOverviewLine(items[i], m.width, m.theme); overview != "" {
				b.WriteString(overview)
				b.WriteString("\n")
			}
		}
	}
}

func (m Model) viewModal() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("marquee"))
	b.WriteString("  ")
	b.WriteString(m.theme.ModePill.Render("details"))
	b.WriteString("\n\n")

	switch {
	case m.modal.loading:
		b.WriteString(m.spin.View() + " " + m.theme.Empty.Render("Loading details..."))
		b.WriteString("\n")
	case m.modal.errText != "":
		b.WriteString(m.theme.StateWarn.Render("Could not load details: " + m.modal.errText))
		b.WriteString("\n")
	default:
		b.WriteString(view.RenderDetailLines(m.detailLines(), m.modal.top, m.detailBodyHeight()))
	}

	b.WriteString("\n")
	b.WriteString(view.Message(m.modal.loading, m.modal.errText != "", m.status, m.modal.errText, m.theme))
	b.WriteString("\n")
	b.WriteString(m.theme.MetaLabel.Render(view.Toolbar(true)))
	return b.String()
}
