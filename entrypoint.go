package apigw

import (
	"errors"
	"io"
	"os"

	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v2"
)

const (
	appName = "apigw"

	msgInputNotFound  = "Input API spec file not found. Please provide a valid path to a Swagger 2.0 spec file."
	msgConfigNotFound = "Config file not found. Please provide a valid path to a config file."
)

// Entrypoint is the command line front-end of the generator.
type Entrypoint struct {
	logger *Logger
	stdout io.Writer
	stderr io.Writer
}

// NewEntrypoint returns an Entrypoint writing to the process stdout and stderr.
func NewEntrypoint() *Entrypoint {
	return &Entrypoint{
		logger: NewLogger(LogLevelInfo),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithWriters redirects regular and error output.
func (e *Entrypoint) WithWriters(stdout, stderr io.Writer) *Entrypoint {
	e.stdout = stdout
	e.stderr = stderr
	return e
}

// Run executes the command line and exits the process with status 1 on
// failure.
func (e *Entrypoint) Run(args []string) {
	if err := e.App().Run(args); err != nil {
		os.Exit(1)
	}
}

// App builds the cli application. Failures are reported through the logger
// and returned from Run without terminating the process.
func (e *Entrypoint) App() *cli.App {
	e.logger.SetOutput(e.stdout)
	e.logger.SetErrorOutput(e.stderr)

	return &cli.App{
		Name:           appName,
		Usage:          "Generates Google Cloud API Gateway specs from Swagger 2.0 documents",
		Writer:         e.stdout,
		ErrWriter:      e.stderr,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Generates a Google Cloud API Gateway spec file based on a provided config and a given Swagger 2.0 YAML",
				ArgsUsage: "<input>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "A relative or absolute path to save the generated spec to. Defaults to current directory/" + DefaultFilename,
						EnvVars: envVars("output"),
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "The path to the config file",
						EnvVars: envVars("config"),
					},
					&cli.BoolFlag{
						Name:    "preserve-responses",
						Aliases: []string{"p"},
						Usage:   "Keep the response schemas of the input spec instead of generic 200 responses",
						EnvVars: envVars("preserve-responses"),
					},
					&cli.StringFlag{
						Name:    "host",
						Usage:   "Host written to the generated spec",
						EnvVars: envVars("host"),
					},
					&cli.StringFlag{
						Name:    "backend-host",
						Usage:   "Backend address written to x-google-backend of the generated spec and of every operation",
						EnvVars: envVars("backend-host"),
					},
					&cli.StringFlag{
						Name:    "log-level",
						Value:   LogLevelInfo.String(),
						Usage:   "silent, error, warn, info or debug",
						EnvVars: envVars("log-level"),
					},
					&cli.BoolFlag{
						Name:    "no-color",
						Usage:   "Disable colored output",
						EnvVars: envVars("no-color"),
					},
					&cli.BoolFlag{
						Name:    "timestamps",
						Usage:   "Prefix log messages with the local time",
						EnvVars: envVars("timestamps"),
					},
				},
				Action: e.generate,
			},
		},
	}
}

func envVars(flag string) []string {
	return []string{strcase.ToScreamingSnake(appName + "-" + flag)}
}

func (e *Entrypoint) generate(c *cli.Context) error {
	e.logger.SetLevel(ParseLogLevel(c.String("log-level")))
	e.logger.SetColorized(!c.Bool("no-color"))
	e.logger.SetTimestamp(c.Bool("timestamps"))

	inputPath := c.Args().First()
	if err := requireFile(KindInputNotFound, inputPath, "no input file given"); err != nil {
		return e.fail(err)
	}
	configPath := c.String("config")
	if err := requireFile(KindConfigNotFound, configPath, "no config file given"); err != nil {
		return e.fail(err)
	}

	input, err := LoadInput(inputPath)
	if err != nil {
		return e.fail(err)
	}
	config, err := LoadConfig(configPath, input)
	if err != nil {
		return e.fail(err)
	}

	generator := NewGenerator(input, config).
		WithHost(c.String("host")).
		WithBackendHost(c.String("backend-host")).
		WithPreserveResponses(c.Bool("preserve-responses"))

	if err := generator.Validate(); err != nil {
		return e.fail(err)
	}
	if _, err := generator.Generate(); err != nil {
		return e.fail(err)
	}
	for _, change := range generator.Changes() {
		e.logger.Debug("%s", change)
	}

	destination, err := generator.Save(NewOutput(c.String("output")))
	if err != nil {
		return e.fail(err)
	}

	e.logger.Success("Provided spec '%s' successfully converted and saved to %s", inputPath, destination)
	return nil
}

func (e *Entrypoint) fail(err error) error {
	switch {
	case errors.Is(err, ErrInputNotFound):
		e.logger.Error(msgInputNotFound)
	case errors.Is(err, ErrConfigNotFound):
		e.logger.Error(msgConfigNotFound)
	default:
		e.logger.Error("%s", err)
	}
	return err
}
