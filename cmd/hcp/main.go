package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/drewkett/hcp/healthcheck"
	"github.com/drewkett/hcp/supervisor"
	"github.com/drewkett/hcp/utils"
)

type options struct {
	ID         string `long:"hcp-id" value-name:"ID" description:"Healthchecks check id (default $HCP_ID)"`
	Tee        bool   `long:"hcp-tee" description:"Also forward the command's output to stdout/stderr (default: set $HCP_TEE)"`
	IgnoreCode bool   `long:"hcp-ignore-code" description:"Report success regardless of the command's exit code (default: set $HCP_IGNORE_CODE)"`

	Positional struct {
		Command []string `positional-arg-name:"cmd"`
	} `positional-args:"yes"`
}

var stderr io.Writer = os.Stderr

func parser(opts *options) *flags.Parser {
	// PassAfterNonOption stops option parsing at the command, so hyphen
	// prefixed arguments meant for the child go through untouched
	p := flags.NewParser(opts, flags.Default|flags.PassAfterNonOption)
	p.Name = "hcp"
	p.Usage = "[OPTIONS] cmd [args...]"
	p.LongDescription = "Run a command and ping healthchecks.io with the result"
	return p
}

// applyEnv fills in options not given on the command line from the HCP_*
// variables. For the boolean ones mere presence counts, whatever the value.
func applyEnv(opts *options) {
	if opts.ID == "" {
		opts.ID = os.Getenv("HCP_ID")
	}
	if !opts.Tee {
		_, opts.Tee = os.LookupEnv("HCP_TEE")
	}
	if !opts.IgnoreCode {
		_, opts.IgnoreCode = os.LookupEnv("HCP_IGNORE_CODE")
	}
}

func run(opts *options) int {
	if opts.ID == "" {
		fmt.Fprintln(stderr, "No Healthcheck Id given")
		return supervisor.ExitConfig
	}
	id, err := healthcheck.ParseID(opts.ID)
	if err != nil {
		fmt.Fprintf(stderr, "Healthcheck Id isn't a valid uuid '%s'\n", opts.ID)
		return supervisor.ExitConfig
	}
	return supervisor.Run(supervisor.Config{
		Command:    opts.Positional.Command,
		Tee:        opts.Tee,
		IgnoreCode: opts.IgnoreCode,
	}, healthcheck.NewClient(id))
}

func main() {
	// before anything else, so signals arriving during setup are kept for
	// the child
	supervisor.InstallSignalBridge()

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&utils.TagFormatter{})

	var opts options
	_, err := parser(&opts).ParseArgs(os.Args[1:])
	if err != nil {
		if utils.IsErrHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	applyEnv(&opts)
	os.Exit(run(&opts))
}
