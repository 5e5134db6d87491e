package ui

import (
	"context"
	"strconv"
	"strings"
	"sync"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/lumduan/hardsub/internal/config"
	"github.com/lumduan/hardsub/internal/model"
	"github.com/lumduan/hardsub/internal/pipeline"
	"github.com/lumduan/hardsub/internal/probe"
	"github.com/lumduan/hardsub/internal/progress"
	"github.com/lumduan/hardsub/internal/util"
)

// resultSink collects per-file results from job goroutines, keyed by input
// index so the final list matches the input order.
type resultSink struct {
	mu      sync.Mutex
	results map[int]model.ConversionResult
}

func newResultSink() *resultSink {
	return &resultSink{results: make(map[int]model.ConversionResult)}
}

func (s *resultSink) put(idx int, r model.ConversionResult) {
	s.mu.Lock()
	s.results[idx] = r
	s.mu.Unlock()
}

func (s *resultSink) collect(n int) []model.ConversionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ConversionResult, 0, n)
	for i := 0; i < n; i++ {
		if r, ok := s.results[i]; ok {
			out = append(out, r)
		}
	}
	return out
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg         *config.Config
	ffmpegPath  string
	ffprobePath string
	runner      util.CmdRunner
	log         hclog.Logger

	// Jobs
	files    []string
	jobOrder []string
	jobs     map[string]*jobState
	workers  int
	running  int
	next     int // next index in files to start

	// UI
	width, height int
	styles        Styles

	// Event channel used by the reporter to feed tea messages
	eventCh chan tea.Msg

	sink *resultSink
}

// Options carries everything the TUI needs to drive the batch.
type Options struct {
	Config      *config.Config
	FFmpegPath  string
	FFprobePath string // empty when ffprobe is absent; percent display degrades
	Logger      hclog.Logger
}

func NewModel(ctx context.Context, files []string, opts Options) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	jobs := make(map[string]*jobState, len(files))
	order := make([]string, 0, len(files))
	for i, f := range files {
		id := toID(i)
		js := newJobState(id, f, sty)
		js.bar = bubblesprogress.New(bubblesprogress.WithDefaultGradient(), bubblesprogress.WithWidth(40))
		jobs[id] = &js
		order = append(order, id)
	}

	workers := opts.Config.MaxWorkers
	if !opts.Config.Parallel {
		workers = 1
	}
	if workers <= 0 {
		workers = 1
	}

	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}

	return Model{
		ctx:         c,
		cancel:      cancel,
		cfg:         opts.Config,
		ffmpegPath:  opts.FFmpegPath,
		ffprobePath: opts.FFprobePath,
		runner:      util.NewDefaultRunner(),
		log:         log,
		files:       files,
		jobs:        jobs,
		jobOrder:    order,
		workers:     workers,
		styles:      sty,
		eventCh:     make(chan tea.Msg, 256),
		sink:        newResultSink(),
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		sp := m.jobs[id].spinner
		cmds = append(cmds, sp.Tick)
	}
	cmds = append(cmds, m.listenEventsCmd())
	// Scheduling happens in Update so counter changes stick to the model
	cmds = append(cmds, func() tea.Msg { return startMsg{} })
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case startMsg:
		var cmd tea.Cmd
		m, cmd = m.startNextWorkers()
		if cmd != nil {
			return m, tea.Batch(cmd, m.listenEventsCmd())
		}
		return m, tea.Quit

	case jobUpdateMsg:
		u := msg.U
		if js, ok := m.jobs[u.JobID]; ok {
			js.stage = u.Stage
			js.percent = u.Percent
			if u.Message != "" {
				js.status = u.Message
			}
			if u.Bytes != nil {
				js.bytes = *u.Bytes
			}
			if u.Speed != nil {
				js.speed = *u.Speed
			}
		}
	case jobLogMsg:
		l := msg.L
		if js, ok := m.jobs[l.JobID]; ok {
			line := strings.TrimRight(l.Line, "\r\n")
			if len(js.logsRing) > 1000 {
				js.logsRing = js.logsRing[1:]
			}
			js.logsRing = append(js.logsRing, line)
		}
	case jobResultMsg:
		r := msg.R
		if js, ok := m.jobs[r.JobID]; ok {
			js.done = true
			js.err = r.Err
			if r.Err == nil {
				if js.stage != progress.StageSkipped {
					js.stage = progress.StageCompleted
				}
				js.percent = 100
				js.outputPath = r.OutputPath
				js.bytes = r.Bytes
			} else {
				js.stage = progress.StageError
				js.status = r.Err.Error()
				js.percent = -1
			}
			m.running--
			var cmd tea.Cmd
			m, cmd = m.startNextWorkers()
			if cmd != nil {
				return m, tea.Batch(cmd, m.listenEventsCmd())
			}
			if m.next >= len(m.files) && m.running == 0 {
				return m, tea.Quit
			}
		}
	case allDoneMsg:
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	cmds = append(cmds, m.listenEventsCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	summary := m.viewSummary()
	if summary != "" {
		return m.viewHeader() + "\n\n" + m.viewJobs() + "\n" + summary
	}
	return m.viewHeader() + "\n\n" + m.viewJobs()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// startNextWorkers advances the scheduler: counters move on the returned
// Model, conversions launch from the returned Cmd.
func (m Model) startNextWorkers() (Model, tea.Cmd) {
	select {
	case <-m.ctx.Done():
		return m, func() tea.Msg { return allDoneMsg{} }
	default:
	}

	var launches []tea.Cmd
	for m.running < m.workers && m.next < len(m.files) {
		idx := m.next
		jobID := m.jobOrder[idx]
		m.next++
		m.running++
		if js := m.jobs[jobID]; js != nil {
			js.started = true
			js.status = "Queued"
			js.stage = progress.StageQueued
		}
		launches = append(launches, func() tea.Msg {
			go m.runJob(jobID, idx)
			return nil
		})
	}
	if len(launches) == 0 {
		return m, nil
	}
	return m, tea.Batch(launches...)
}

// runJob converts one file on its own goroutine, feeding progress through
// the tea reporter and the final result into the sink.
func (m Model) runJob(jobID string, idx int) {
	rep := teaReporter{ch: m.eventCh}
	file := m.files[idx]

	dur := probe.Duration(m.ctx, m.runner, m.ffprobePath, file)

	c := pipeline.NewConverter(
		pipeline.WithConfig(m.cfg),
		pipeline.WithFFmpegPath(m.ffmpegPath),
		pipeline.WithRunner(m.runner),
		pipeline.WithLogger(m.log),
		pipeline.WithReporter(rep),
		pipeline.WithJobID(jobID),
		pipeline.WithSourceDuration(dur),
	)
	res := c.ProcessFile(m.ctx, file)
	m.sink.put(idx, res)
}

type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	// Completion and error updates must land; progress ticks may drop
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError || u.Stage == progress.StageSkipped {
		r.ch <- jobUpdateMsg{U: u}
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	select {
	case r.ch <- jobLogMsg{L: l}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	r.ch <- jobResultMsg{R: res}
}

func toID(i int) string {
	return "job-" + strconv.Itoa(i)
}
