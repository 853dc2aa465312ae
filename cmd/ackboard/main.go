package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ackboard/ackboard/internal/board"
	"github.com/ackboard/ackboard/internal/config"
	"github.com/ackboard/ackboard/internal/github"
	"github.com/ackboard/ackboard/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "version") {
		fmt.Printf("ackboard %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	tokenFile := flag.String("token-file", "", "file containing the GitHub token (default: GITHUB_TOKEN env)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] owner/repo [owner/repo ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	repos := make([]github.Repo, 0, flag.NArg())
	for _, arg := range flag.Args() {
		repo, err := github.ParseRepo(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		repos = append(repos, repo)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	token, err := config.LoadToken(*tokenFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := github.NewClient(token, github.Options{
		PageSize:   cfg.PageSize,
		RetryDelay: cfg.RetryDelayDuration(),
		RetryMax:   cfg.RetryMaxAttempts,
	})

	policy := board.ForcePushUnknown
	if cfg.RFMOnForcePush == "false" {
		policy = board.ForcePushFalse
	}
	sync := board.NewSynchronizer(client, repos, cfg.BotLogin, policy)

	p := tea.NewProgram(ui.NewApp(sync), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
