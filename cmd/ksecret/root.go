package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/szaher/ksecret/internal/cluster"
	"github.com/szaher/ksecret/internal/config"
	"github.com/szaher/ksecret/internal/lookup"
	"github.com/szaher/ksecret/internal/prompt"
	"github.com/szaher/ksecret/internal/render"
	"github.com/szaher/ksecret/internal/resolve"
	"github.com/szaher/ksecret/internal/telemetry"
)

// deps are the collaborators the root command builds per invocation.
// Tests replace them with fakes.
type deps struct {
	connect  func(cluster.ConnectOptions) (lookup.Inventory, error)
	selector func(cfg *config.Config) prompt.Selector
	stdout   io.Writer
	stderr   io.Writer
}

func defaultDeps() deps {
	return deps{
		connect: func(opts cluster.ConnectOptions) (lookup.Inventory, error) {
			return cluster.Connect(opts)
		},
		selector: func(cfg *config.Config) prompt.Selector {
			return prompt.NewTerminal(prompt.WithAccessible(cfg.Accessible))
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func newRootCmd(d deps) *cobra.Command {
	var (
		namespace     string
		configFile    string
		correlationID string
	)

	root := &cobra.Command{
		Use:   "ksecret [SECRET]",
		Short: "Find a Kubernetes secret by partial name and show one of its keys",
		Long: `ksecret locates a secret without its exact namespace or name.

Each hint is matched exactly first, then fuzzily; anything ambiguous is
offered as a pick-list. With no hints every namespace and secret can be
browsed. A secret hint without --ns looks in the "default" namespace.`,
		Example: `  ksecret                       # browse namespaces, secrets and keys
  ksecret -n payments           # fuzzy-match the namespace, browse its secrets
  ksecret -n payments-prod pg   # fuzzy-match both
  ksecret db-credentials        # look in the default namespace`,
		Args:          cobra.MaximumNArgs(1),
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" {
				configFile = os.Getenv(config.EnvPrefix + "_CONFIG")
			}
			var file *config.Config
			var err error
			if configFile != "" {
				file, err = config.Load(configFile)
			} else {
				file, err = config.LoadDefault()
			}
			if err != nil {
				return err
			}
			cfg, err := config.Resolve(file, cmd.Flags())
			if err != nil {
				return err
			}

			req := lookup.Request{Namespace: namespace}
			if len(args) == 1 {
				req.Name = args[0]
			}
			return run(cmd, d, cfg, req, correlationID)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&namespace, "ns", "n", "", "Namespace hint (exact or partial)")
	flags.StringVar(&configFile, "config", "", "Config file (default is $HOME/"+config.FileName+")")
	flags.String("kubeconfig", "", "Path to the kubeconfig file")
	flags.String("context", "", "Kubeconfig context to use")
	flags.StringP("output", "o", string(render.FormatText), "Output format: text|json|yaml")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("accessible", false, "Use line-based prompts for screen readers")
	flags.Bool("case-sensitive", false, "Match hints case-sensitively (default is smart case)")
	flags.Bool("verbose", false, "Enable verbose output")
	flags.Duration("request-timeout", config.DefaultRequestTimeout, "Timeout for each API request (0 disables)")
	flags.StringVar(&correlationID, "correlation-id", "", "Set explicit correlation ID")

	root.SetOut(d.stdout)
	root.SetErr(d.stderr)
	return root
}

func run(cmd *cobra.Command, d deps, cfg *config.Config, req lookup.Request, correlationID string) error {
	format, err := render.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	ctx := telemetry.WithCorrelationID(cmd.Context(), correlationID)
	redact := telemetry.NewRedactFilter()
	logger := telemetry.InvocationLogger(ctx, telemetry.NewLogger(d.stderr, cfg.Verbose, redact), "ksecret")

	inv, err := d.connect(cluster.ConnectOptions{
		Kubeconfig: cfg.Kubeconfig,
		Context:    cfg.Context,
		Timeout:    cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}
	logger.Debug("connected", "host", hostOf(inv), "context", cfg.Context, "namespace_hint", req.Namespace, "secret_hint", req.Name)

	sel := d.selector(cfg)
	finder := lookup.NewFinder(
		inv,
		resolve.New(&resolve.SkimScorer{RespectCase: cfg.CaseSensitive}, sel, logger),
		render.New(sel, redact),
		logger,
	)

	entry, err := finder.Find(ctx, req)
	if err != nil {
		return err
	}
	return render.NewWriter(format, !cfg.NoColor && isTerminal(d.stdout)).Write(d.stdout, entry)
}

// hostOf reports the API server address when the inventory knows it.
func hostOf(inv lookup.Inventory) string {
	if h, ok := inv.(interface{ Host() string }); ok {
		return h.Host()
	}
	return ""
}
