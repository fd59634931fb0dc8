// Package shell is a line-oriented companion to the explorer: script lines
// typed at the prompt accumulate into a buffer and TAB completes the
// dotted name at the cursor against that buffer.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/chzyer/readline"

	"scriptsense/internal/complete"
)

const (
	prompt     = ">>> "
	contPrompt = "... "
)

// Session holds the script typed so far.
type Session struct {
	engine  *complete.Engine
	ctx     context.Context
	buf     strings.Builder
	inBlock bool
}

// NewSession starts from seed, which may be empty.
func NewSession(ctx context.Context, engine *complete.Engine, seed string) *Session {
	s := &Session{engine: engine, ctx: ctx}
	s.buf.WriteString(seed)
	if seed != "" && !strings.HasSuffix(seed, "\n") {
		s.buf.WriteByte('\n')
	}
	return s
}

// Source returns the accumulated script.
func (s *Session) Source() string { return s.buf.String() }

// Prompt is the prompt for the next line.
func (s *Session) Prompt() string {
	if s.inBlock {
		return contPrompt
	}
	return prompt
}

// Feed consumes one input line. Lines starting with ':' are shell
// commands; everything else is appended to the script. The returned
// text is printed as is; quit reports the ":quit" command.
func (s *Session) Feed(line string) (out string, quit bool) {
	line = strings.TrimRight(line, "\r\n")
	if cmd, ok := strings.CutPrefix(strings.TrimSpace(line), ":"); ok && !s.inBlock {
		return s.command(cmd)
	}
	switch {
	case strings.TrimSpace(line) == "":
		// пустая строка закрывает блок
		s.inBlock = false
		return "", false
	case strings.HasSuffix(strings.TrimRight(line, " \t"), ":"):
		s.inBlock = true
	case s.inBlock && !startsIndented(line):
		s.inBlock = false
	}
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	return "", false
}

func (s *Session) command(cmd string) (string, bool) {
	name, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	switch name {
	case "q", "quit":
		return "", true
	case "reset":
		s.buf.Reset()
		s.inBlock = false
		return "buffer cleared\n", false
	case "source":
		return s.Source(), false
	case "scope":
		an := s.engine.Analyze(s.ctx, s.Source())
		return an.Table.DumpString(an.Root), false
	case "type":
		if arg == "" {
			return "usage: :type EXPR\n", false
		}
		t := s.engine.TypeOf(s.ctx, s.Source(), "", strings.TrimSpace(arg))
		if t == "" {
			t = "<unknown>"
		}
		return t + "\n", false
	case "help":
		return helpText, false
	}
	return fmt.Sprintf("unknown command :%s (try :help)\n", name), false
}

const helpText = `:type EXPR  print the inferred type of EXPR
:scope      dump the scope tree of the buffer
:source     print the buffer
:reset      clear the buffer
:quit       leave the shell
`

// Do implements readline.AutoCompleter. Candidates are the suffixes of
// completions that extend the dotted name ending at pos.
func (s *Session) Do(line []rune, pos int) ([][]rune, int) {
	pos = min(max(pos, 0), len(line))
	head := line[:pos]
	start := pos
	for start > 0 && isQueryRune(head[start-1]) {
		start--
	}
	query := string(head[start:])
	indent := leadingSpace(string(head))
	_, seed, _ := complete.SplitQuery(query)

	var out [][]rune
	seen := make(map[string]bool)
	for _, it := range s.engine.Query(s.ctx, s.Source(), indent, query) {
		if !strings.HasPrefix(it.Text, seed) || seen[it.Text] {
			continue
		}
		seen[it.Text] = true
		out = append(out, []rune(it.Text[len(seed):]))
	}
	return out, len([]rune(seed))
}

func isQueryRune(r rune) bool {
	return r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func startsIndented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// Options configure Run.
type Options struct {
	Engine  *complete.Engine
	Seed    string
	History string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Run reads lines until EOF or ":quit". Ctrl-C drops the current line.
func Run(ctx context.Context, opts Options) error {
	s := NewSession(ctx, opts.Engine, opts.Seed)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt(),
		AutoComplete:    s,
		HistoryFile:     opts.History,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
		Stdout:          opts.Stdout,
		Stderr:          opts.Stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}
		rl.SetPrompt(s.Prompt())
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		out, quit := s.Feed(line)
		if out != "" {
			fmt.Fprint(rl.Stdout(), out)
		}
		if quit {
			return nil
		}
	}
}
