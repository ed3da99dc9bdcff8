package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"labelexim/pkg/config"
	"labelexim/pkg/github"
	"labelexim/pkg/gitremote"
)

// loadConfig loads the config file, creating an empty one on first run
func loadConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, "", err
		}
	}

	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, "", err
	}

	logger.Debug("loaded config", "path", path, "token", cfg.HasToken())
	return cfg, path, nil
}

// resolveRepo parses the REPO argument, falling back to the origin remote of
// the git repository containing the working directory.
func resolveRepo(args []string) (github.RepoRef, error) {
	input := ""
	if len(args) > 0 {
		input = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return github.RepoRef{}, fmt.Errorf("failed to get working directory: %w", err)
		}

		input, err = gitremote.URL(wd, gitremote.DefaultRemote)
		if err != nil {
			return github.RepoRef{}, fmt.Errorf("no REPO given and it could not be detected: %w", err)
		}
		logger.Debug("detected repository from git remote", "url", input)
	}

	ref, err := github.ParseRepoRef(input)
	if err != nil {
		return github.RepoRef{}, fmt.Errorf("failed to parse repository reference: %w", err)
	}
	return ref, nil
}

// isTerminal reports whether v is a file attached to a terminal
var isTerminal = func(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readSecret reads a line from in without echo when it is a terminal
var readSecret = func(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	return readLine(in)
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; anything but y or yes is a no
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)

	answer, err := readLine(in)
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
