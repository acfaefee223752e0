package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/journal/internal/catalog"
	"github.com/roach88/journal/internal/service"
)

// NewSessionCommand creates the session command: an interactive journal
// session over the catalog, one command per input line.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start an interactive journal session",
		Long: `Start a journal session and read commands from stdin, one per line:

  add <article-id>                append a catalog article to the journal
  add-key <author>|<title>|<published>   append by compound key
  remove <n>                      remove by article number
  remove-id <article-id>          remove by article id
  swap <n1> <n2>                  swap two positions
  move <from> <to>                move an entry to a position
  front <n> / end <n>             move an entry to the front / end
  read                            read the current article
  read-rest                       read from the cursor to the end
  read-all                        rewind and read everything
  rewind                          reset the cursor to the first entry
  list                            list the journal
  stats                           journal length and total reading time
  clear                           empty the journal
  quit                            end the session

Each command prints the service result; --format json emits the raw
result envelopes for scripting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(rootOpts, cmd)
		},
	}
}

func runSession(rootOpts *RootOptions, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if rootOpts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}

	store, err := catalog.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open catalog database", err)
	}
	defer store.Close()

	f := &OutputFormatter{
		Format:    cfg.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	registry := service.NewRegistry()
	token, sess := registry.Create(store)
	sess.WithReadingSpeed(cfg.WordsPerMinute)
	logger.Debug("session created", "token", token)
	defer func() {
		if err := registry.Destroy(token); err != nil {
			logger.Error("session teardown failed", "error", err)
		}
	}()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" {
			break
		}
		if err := dispatch(cmd, f, sess, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	logger.Debug("session ended", "token", token)
	return nil
}

// dispatch parses one session command line and emits the service result.
// Unknown commands and malformed arguments report on stderr and continue;
// they are input mistakes, not command failures.
func dispatch(cmd *cobra.Command, f *OutputFormatter, sess *service.Session, line string) error {
	ctx := cmd.Context()
	fields := strings.Fields(line)
	verb, args := fields[0], fields[1:]

	badInput := func(format string, a ...any) error {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", a...)
		return nil
	}

	switch verb {
	case "add":
		id, err := argID(args)
		if err != nil {
			return badInput("add: %v", err)
		}
		return emitMutation(f, sess.AppendByID(ctx, id))

	case "add-key":
		author, title, publishedAt, err := argKey(line)
		if err != nil {
			return badInput("add-key: %v", err)
		}
		return emitMutation(f, sess.AppendByKey(ctx, author, title, publishedAt))

	case "remove":
		n, err := argN(args, 1)
		if err != nil {
			return badInput("remove: %v", err)
		}
		return emitMutation(f, sess.RemoveByArticleNumber(n[0]))

	case "remove-id":
		id, err := argID(args)
		if err != nil {
			return badInput("remove-id: %v", err)
		}
		return emitMutation(f, sess.RemoveByID(id))

	case "swap":
		n, err := argN(args, 2)
		if err != nil {
			return badInput("swap: %v", err)
		}
		return emitMutation(f, sess.Swap(n[0], n[1]))

	case "move":
		n, err := argN(args, 2)
		if err != nil {
			return badInput("move: %v", err)
		}
		return emitMutation(f, sess.MoveToPosition(n[0], n[1]))

	case "front":
		n, err := argN(args, 1)
		if err != nil {
			return badInput("front: %v", err)
		}
		return emitMutation(f, sess.MoveToFront(n[0]))

	case "end":
		n, err := argN(args, 1)
		if err != nil {
			return badInput("end: %v", err)
		}
		return emitMutation(f, sess.MoveToEnd(n[0]))

	case "read":
		return emitRead(f, sess.ReadCurrent(ctx))

	case "read-rest":
		return emitRead(f, sess.ReadRest(ctx))

	case "read-all":
		return emitRead(f, sess.ReadAll(ctx))

	case "rewind":
		return emitRead(f, sess.Rewind())

	case "list":
		res := sess.Entries()
		if f.Format == "json" {
			return f.Emit(res, "")
		}
		for _, e := range res.Entries {
			marker := "  "
			if e.ArticleNumber == res.Cursor {
				marker = "> "
			}
			fmt.Fprintf(f.Writer, "%s%d\t%s - %s\n", marker, e.ArticleNumber, e.Article.Author, e.Article.Title)
		}
		return nil

	case "stats":
		res := sess.Stats()
		return f.Emit(res, fmt.Sprintf("%d article(s), about %s of reading",
			res.Length, (time.Duration(res.DurationSeconds)*time.Second).Round(time.Minute)))

	case "clear":
		return emitMutation(f, sess.Clear())

	default:
		return badInput("unknown command %q", verb)
	}
}

func emitMutation(f *OutputFormatter, res service.MutationResult) error {
	if res.Status != service.StatusSuccess {
		return f.Emit(res, fmt.Sprintf("error [%s]: %s", res.ErrorKind, res.Message))
	}
	text := "ok"
	if res.ArticleNumber > 0 {
		text = fmt.Sprintf("ok (article number %d)", res.ArticleNumber)
	}
	return f.Emit(res, text)
}

func emitRead(f *OutputFormatter, res service.ReadResult) error {
	if res.Status != service.StatusSuccess {
		return f.Emit(res, fmt.Sprintf("error [%s]: %s", res.ErrorKind, res.Message))
	}
	switch {
	case res.Article != nil:
		return f.Emit(res, fmt.Sprintf("read: %s - %s (cursor %d)", res.Article.Author, res.Article.Title, res.Cursor))
	case res.Articles != nil:
		return f.Emit(res, fmt.Sprintf("read %d article(s) (cursor %d)", len(res.Articles), res.Cursor))
	default:
		return f.Emit(res, fmt.Sprintf("cursor %d", res.Cursor))
	}
}

func argID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("want one article id, got %d argument(s)", len(args))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid article id %q", args[0])
	}
	return id, nil
}

func argN(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("want %d position(s), got %d argument(s)", want, len(args))
	}
	out := make([]int, want)
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid article number %q", a)
		}
		out[i] = n
	}
	return out, nil
}

// argKey parses `add-key <author>|<title>|<published>` with RFC 3339 time.
func argKey(line string) (author, title string, publishedAt time.Time, err error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "add-key"))
	parts := strings.Split(rest, "|")
	if len(parts) != 3 {
		return "", "", time.Time{}, fmt.Errorf("want author|title|published, got %q", rest)
	}
	publishedAt, err = time.Parse(time.RFC3339, strings.TrimSpace(parts[2]))
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("invalid published time %q", parts[2])
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), publishedAt, nil
}
