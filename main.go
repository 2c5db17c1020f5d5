package main

import (
	"flag"
	"fmt"
	"os"

	"gapedit/config"
	"gapedit/editor"
	"gapedit/logs"
	"gapedit/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a .json, .yaml or .toml settings file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: gapedit [-config path] [file]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		return 2
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	} else if cfg, err = config.Load(); err != nil {
		// A broken settings file should not keep the editor from starting.
		cfg = config.Default()
	}
	warning := ""
	if err != nil {
		warning = err.Error()
	}
	if verr := cfg.Validate(); verr != nil {
		warning = "config: " + verr.Error()
	}

	log := logs.NewFromEnv()
	defer log.Close()

	screen, err := term.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	e := editor.New(cfg, screen, log, nil)
	if path := flag.Arg(0); path != "" {
		if err := e.Open(path); err != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	}
	if warning != "" {
		e.SetMessage(warning)
	}

	err = e.Run()
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
