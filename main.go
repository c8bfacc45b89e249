// Command lispwalk is the REPL/file driver around the evaluator core.
// It is deliberately thin: parsing source text (pkg/reader), driving
// the REPL loop, and printing results are all surrounding machinery,
// not part of the core evaluator.
//
// Grounded on the teacher's root-level main.go (flag-driven dispatch
// between -e/file/stdin input and an interactive REPL) for overall
// shape, daios-ai-msg/cmd/msg/main.go's cmdRepl/readByParseProbe for
// the liner prompt/history/signal-handling details, and
// mindreframer-golang-devops-stuff's hm9000.go for the
// cli.NewApp()/cli.Command/gosteno wiring pattern.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cloudfoundry/gosteno"
	"github.com/codegangsta/cli"
	uuid "github.com/nu7hatch/gouuid"
	"github.com/peterh/liner"

	"lispwalk/pkg/ast"
	"lispwalk/pkg/eval"
	"lispwalk/pkg/primitives"
	"lispwalk/pkg/reader"
)

const historyFile = ".lispwalk_history"

var logger *gosteno.Logger

func main() {
	setupLogging()

	app := cli.NewApp()
	app.Name = "lispwalk"
	app.Usage = "a tree-walking interpreter for a small lexically-scoped functional language"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:  "repl",
			Usage: "start an interactive read-eval-print loop",
			Action: func(c *cli.Context) error {
				return runREPL()
			},
		},
		{
			Name:  "eval",
			Usage: "evaluate a single expression",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "e", Usage: "expression source"},
			},
			Action: func(c *cli.Context) error {
				return runSource(c.String("e"))
			},
		},
		{
			Name:  "run",
			Usage: "evaluate every top-level form in a file",
			Action: func(c *cli.Context) error {
				if c.NArg() == 0 {
					return fmt.Errorf("run: expected a file path")
				}
				data, err := os.ReadFile(c.Args().First())
				if err != nil {
					return err
				}
				return runSource(string(data))
			},
		},
	}
	app.Action = func(c *cli.Context) error {
		return runREPL()
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errord(map[string]interface{}{"error": err.Error()}, "lispwalk.fatal")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging() {
	config := &gosteno.Config{
		Sinks:     []gosteno.Sink{gosteno.NewIOSink(os.Stderr)},
		Level:     gosteno.LOG_INFO,
		Codec:     gosteno.NewJsonCodec(),
		EnableLOC: true,
	}
	gosteno.Init(config)
	logger = gosteno.NewLogger("lispwalk")
}

// instanceID tags a single driver run for log correlation. Multiple
// independent interpreters may run in parallel, so a UUID lets
// concurrently-run REPL sessions be told apart in the log stream.
func instanceID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

// runSource reads every top-level form out of source and evaluates
// them in program order against a fresh global environment.
func runSource(source string) error {
	id := instanceID()
	logger.Infod(map[string]interface{}{"instance": id}, "lispwalk.session.start")

	global := primitives.MakeGlobalEnvironment()
	forms, err := reader.New(source).ReadAll()
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	for _, form := range forms {
		value, err := eval.Evaluate(form, global)
		if err != nil {
			logger.Errord(map[string]interface{}{"instance": id, "error": err.Error()}, "lispwalk.eval.error")
			return err
		}
		fmt.Println(formatResult(value))
	}
	return nil
}

// formatResult renders a result value the way the printer renders
// every other Value, including Compound procedures.
func formatResult(v *ast.Value) string {
	return v.String()
}

func runREPL() error {
	id := instanceID()
	logger.Infod(map[string]interface{}{"instance": id}, "lispwalk.repl.start")

	global := primitives.MakeGlobalEnvironment()

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		line.Close()
		os.Exit(130)
	}()

	fmt.Println("lispwalk: type an expression, or :quit to exit")

	for {
		text, err := line.Prompt("> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println()
				break
			}
			return err
		}

		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			break
		}

		form, err := reader.ReadString(trimmed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			continue
		}
		if form == nil {
			continue
		}

		value, err := eval.Evaluate(form, global)
		if err != nil {
			logger.Errord(map[string]interface{}{"instance": id, "error": err.Error()}, "lispwalk.repl.error")
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		line.AppendHistory(trimmed)
		fmt.Println(formatResult(value))
	}

	return nil
}
