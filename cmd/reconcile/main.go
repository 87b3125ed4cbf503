package main

import (
	"fmt"
	"log"
	"os"

	"github.com/docopt/docopt-go"

	"github.com/tonyjiang88215/react/config"
	"github.com/tonyjiang88215/react/diagnostics"
	"github.com/tonyjiang88215/react/factory"
	"github.com/tonyjiang88215/react/fiber"
	"github.com/tonyjiang88215/react/graphexport"
	"github.com/tonyjiang88215/react/reconcile"
	"github.com/tonyjiang88215/react/telemetry"
)

const ReconcileVersion = "0.1.0"

var Out *log.Logger
var Err *log.Logger

func init() {
	Out = log.New(os.Stdout, "", 0)
	Err = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

func main() {
	usage := `Fiber child-list reconciler demo.

Usage:
    reconcile run [--config=<path>] --before=<n> --after=<n>
    reconcile graph [--config=<path>] --before=<n> --after=<n>

Options:
    -h --help           Show this screen.
    --version           Show version.
    --config=<path>      Path to a YAML run-options file.
    --before=<n>         Number of placeholder children to mount first.
    --after=<n>          Number of placeholder children in the next render.`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], ReconcileVersion)
	if err != nil {
		panic(err)
	}

	runOpts := config.DefaultRunOptions()
	if path, _ := opts.String("--config"); path != "" {
		runOpts, err = config.Load(path)
		if err != nil {
			Err.Fatalf("load config: %v", err)
		}
	}
	telemetry.GlobalLevel = runOpts.LogLevelValue()
	logf := telemetry.LogFn(telemetry.LevelInfo, "cmd/reconcile")

	before, _ := opts.Int("--before")
	after, _ := opts.Int("--after")

	fibers := factory.NewDefaultFactory(nil)
	root := &fiber.Fiber{Kind: fiber.HostElement, Type: "root"}

	mounter := reconcile.NewMounter(fibers, reconcile.WithDevWarnings(runOpts.DevWarnings))
	root.Child, err = mounter.Reconcile(root, nil, placeholderChildren(before), 0)
	must(err)
	logf("mounted %d children", before)

	mode := reconciliationMode(fibers, runOpts)
	root.Child, err = mode.Reconcile(root, root.Child, placeholderChildren(after), 0)
	must(err)
	logf("reconciled down to %d children", after)

	if graphAction, _ := opts.Bool("graph"); graphAction {
		g := graphexport.FromFiber(root)
		switch runOpts.GraphFormat {
		case "mermaid":
			Out.Print(g.Mermaid())
		default:
			Out.Print(g.DOT())
		}
		return
	}

	printEffects(root.Child)
}

func reconciliationMode(fibers factory.FiberFactory, runOpts config.RunOptions) *reconcile.Mode {
	sink := diagnostics.Sink(diagnostics.NopSink{})
	if runOpts.DevWarnings {
		sink = diagnostics.LogSink{Log: diagnostics.LogFunc(telemetry.LogFn(telemetry.LevelDebug, "duplicate-key"))}
	}
	opts := []reconcile.Option{
		reconcile.WithDiagnosticSink(sink),
		reconcile.WithDevWarnings(runOpts.DevWarnings),
	}
	switch runOpts.Mode {
	case "in-place":
		return reconcile.NewInPlaceReconciler(fibers, opts...)
	case "mount":
		return reconcile.NewMounter(fibers, opts...)
	default:
		return reconcile.NewChildReconciler(fibers, opts...)
	}
}

func placeholderChildren(count int) []fiber.ChildDescription {
	children := make([]fiber.ChildDescription, 0, count)
	for i := 0; i < count; i++ {
		key := fmt.Sprintf("item-%d", i)
		children = append(children, fiber.Element{Key: &key, Type: "li", Props: i})
	}
	return children
}

func printEffects(first *fiber.Fiber) {
	for f := first; f != nil; f = f.Sibling {
		Out.Printf("%s key=%v effect=%s", f.Kind, keyOrNil(f.Key), effectString(f.EffectTag))
	}
}

func keyOrNil(key *string) string {
	if key == nil {
		return "<nil>"
	}
	return *key
}

func effectString(tag fiber.EffectTag) string {
	switch {
	case tag.Has(fiber.Placement) && tag.Has(fiber.Deletion):
		return "Placement|Deletion"
	case tag.Has(fiber.Placement):
		return "Placement"
	case tag.Has(fiber.Deletion):
		return "Deletion"
	default:
		return "NoEffect"
	}
}

func must(err error) {
	if err != nil {
		Err.Fatalf("%v", err)
	}
}
