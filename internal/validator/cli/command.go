package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"codehunt/internal/validator"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	defaultURL      = "http://127.0.0.1:8000"
	defaultLogLevel = "warn"
)

var negativeNumber = regexp.MustCompile(`^-\d+$`)

// FileConfig is the optional YAML configuration of a validator binary.
type FileConfig struct {
	URL     string                 `yaml:"url"`
	Timeout time.Duration          `yaml:"timeout"`
	Client  validator.ClientConfig `yaml:"client"`
	Logger  logger.Config          `yaml:"logger"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file failed: %w", err)
	}
	return cfg, nil
}

type options struct {
	url        string
	all        bool
	configPath string
	logLevel   string
	timeout    time.Duration
}

// NewCommand builds the validator command for one suite. raw is the
// unparsed argument list, used to keep negative challenge numbers in order.
func NewCommand(name, version string, suite *validator.Suite, raw []string) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           name + " [NUMBERS]...",
		Short:         fmt.Sprintf("Validate solutions to the %s challenges", strings.ToUpper(suite.Event)),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers := orderedNumbers(raw, args)
			return run(cmd, suite, opts, numbers)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVarP(&opts.url, "url", "u", defaultURL, "The base URL to test against")
	flags.BoolVar(&opts.all, "all", false, "Validate all challenges")
	flags.StringVar(&opts.configPath, "config", "", "Path to an optional YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", defaultLogLevel, "Log level for diagnostics on stderr")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Per challenge timeout (default 60s)")
	flags.BoolP("version", "V", false, "Print version")
	return cmd
}

// stripNegatives removes negative challenge numbers so flag parsing does not
// mistake them for shorthand flags.
func stripNegatives(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if negativeNumber.MatchString(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// orderedNumbers merges negative numbers back into the positional arguments
// in the order they were given.
func orderedNumbers(raw, positionals []string) []string {
	out := make([]string, 0, len(positionals))
	next := 0
	for _, a := range raw {
		switch {
		case negativeNumber.MatchString(a):
			out = append(out, a)
		case next < len(positionals) && a == positionals[next]:
			out = append(out, a)
			next++
		}
	}
	return append(out, positionals[next:]...)
}

func run(cmd *cobra.Command, suite *validator.Suite, opts *options, numbers []string) error {
	if opts.all && len(numbers) > 0 {
		return pkgerrors.New(pkgerrors.NoChallengeSelected).
			WithMessage("the argument '--all' cannot be used with '[NUMBERS]...'")
	}
	if !opts.all && len(numbers) == 0 {
		return pkgerrors.New(pkgerrors.NoChallengeSelected).
			WithMessage("the following required arguments were not provided: <NUMBERS|--all>")
	}
	if opts.all {
		numbers = suite.Supported()
	}

	fileCfg, err := loadFileConfig(opts.configPath)
	if err != nil {
		return err
	}
	baseURL := fileCfg.URL
	if baseURL == "" || cmd.Flags().Changed("url") {
		baseURL = opts.url
	}
	if err := checkURL(baseURL); err != nil {
		return err
	}
	timeout := fileCfg.Timeout
	if cmd.Flags().Changed("timeout") || timeout == 0 {
		timeout = opts.timeout
	}
	logCfg := fileCfg.Logger
	if logCfg.Level == "" || cmd.Flags().Changed("log-level") {
		logCfg.Level = opts.logLevel
	}
	if logCfg.OutputPath == "" {
		logCfg.OutputPath = "stderr"
	}
	if logCfg.Format == "" {
		logCfg.Format = "console"
	}
	if err := logger.Init(logCfg); err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := validator.Config{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: timeout,
		Sleeper: validator.RealSleeper(),
		Client:  fileCfg.Client,
	}
	printer := validator.NewPrinter(cmd.OutOrStdout())
	printer.Banner(suite.Banner)
	validator.RunAll(cmd.Context(), cfg, suite, numbers, printer)
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return pkgerrors.Newf(pkgerrors.InvalidChallengeURL, "invalid base URL: %s", raw)
	}
	return nil
}

// Execute runs the validator command and returns the process exit code.
func Execute(ctx context.Context, name, version string, suite *validator.Suite, args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand(name, version, suite, args)
	cmd.SetArgs(stripNegatives(args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	return 0
}
