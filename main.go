package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/app"
	"github.com/llehouerou/cardview/internal/config"
	"github.com/llehouerou/cardview/internal/display"
	"github.com/llehouerou/cardview/internal/errmsg"
	"github.com/llehouerou/cardview/internal/logging"
	"github.com/llehouerou/cardview/internal/stack"
	"github.com/llehouerou/cardview/internal/state"
	"github.com/llehouerou/cardview/internal/viewer"
)

var errNoStack = errors.New("no stack given and no stack opened before")

// stackPath picks the stack to open: argument > config default > last opened.
func stackPath(args []string, cfg *config.Config, stateMgr state.Interface) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.DefaultFolder != "" {
		return cfg.DefaultFolder, nil
	}
	last, err := stateMgr.LastStack()
	if err != nil {
		return "", err
	}
	if last == "" {
		return "", errNoStack
	}
	return last, nil
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpInitialize, "config", err))
	}

	if logCloser, err := logging.Open(cfg.GetLogFile(), logging.ParseLevel(cfg.GetLogLevel())); err != nil {
		fmt.Fprintf(os.Stderr, "cardview: log file disabled: %v\n", err)
	} else {
		defer logCloser.Close()
	}

	stateMgr, err := state.Open()
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpInitialize, "state", err))
	}
	defer stateMgr.Close()

	path, err := stackPath(args, cfg, stateMgr)
	if err != nil {
		return err
	}

	st, err := stack.Open(path)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpStackOpen, path, err))
	}

	v, err := viewer.New(st,
		viewer.WithScale(cfg.GetScale()),
		viewer.WithWorkers(cfg.GetRenderWorkers()))
	if err != nil {
		return err
	}

	var cache *display.Cache
	if cfg.CacheEnabled() {
		cache, err = display.NewCache(cfg.Cache.Dir)
		if err != nil {
			logging.Logger().Warn("frame cache disabled", "err", err)
		}
	}
	disp := display.New(display.Detect(cfg.GetImageProtocol()), cache)

	logging.Logger().Info("opened stack",
		"path", st.Path(), "cards", st.CardCount(), "protocol", disp.ProtocolName())

	m := app.New(st, v, disp, stateMgr)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	// Free the image held by the terminal.
	fmt.Fprint(os.Stdout, disp.Clear())

	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cardview: %v\n", err)
		os.Exit(1)
	}
}
