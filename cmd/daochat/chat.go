package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/blues/daochat/internal/app"
	"github.com/blues/daochat/internal/config"
	"github.com/blues/daochat/internal/ledger"
	"github.com/blues/daochat/internal/logger"
	"github.com/blues/daochat/internal/model"
	"github.com/blues/daochat/internal/session"
	"github.com/spf13/cobra"
)

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}
	if provider != "" {
		cfg.Classifier.Provider = provider
	}

	// 终端会话中日志只写 stderr，避免打断对话
	logCfg := config.LogConfig{Level: "warn", Output: "stderr"}
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("Failed to release resources: %v", err)
		}
	}()

	r, err := newREPL(a.Sessions, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.run(ctx)
}

func runSeedCheck(cmd *cobra.Command, args []string) error {
	campaigns, err := ledger.LoadSeedFile(args[0], time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d campaigns OK\n", args[0], len(campaigns))
	for _, c := range campaigns {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", campaignLine(model.NewCampaignView(c, time.Now())))
	}
	return nil
}

// repl 单会话的终端对话循环
type repl struct {
	sessions *session.Manager
	session  *session.Session
	in       *bufio.Scanner
	out      io.Writer
	actions  []model.Action // 最近一条回复的按钮，按序号选择
}

func newREPL(sessions *session.Manager, in io.Reader, out io.Writer) (*repl, error) {
	s, welcome, err := sessions.Create()
	if err != nil {
		return nil, err
	}

	r := &repl{
		sessions: sessions,
		session:  s,
		in:       bufio.NewScanner(in),
		out:      out,
	}
	if profile, ok := s.Profile(); ok {
		fmt.Fprintf(out, "Wallet connected: %s\n", profile.Address)
	}
	r.show(welcome)
	return r, nil
}

func (r *repl) run(ctx context.Context) error {
	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}
		line := strings.TrimSpace(r.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		var (
			reply model.Message
			err   error
		)
		if action, ok := r.pick(line); ok {
			var echo model.Message
			echo, reply, err = r.sessions.Select(ctx, r.session.ID, action.ID)
			if err == nil {
				fmt.Fprintf(r.out, "you> %s\n", echo.Text)
			}
		} else {
			_, reply, err = r.sessions.Send(ctx, r.session.ID, line)
		}

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(r.out, "error: %v\n", err)
			continue
		}
		r.show(reply)
	}
}

// pick 输入为最近按钮的序号时返回对应按钮
func (r *repl) pick(line string) (model.Action, bool) {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(r.actions) {
		return model.Action{}, false
	}
	return r.actions[n-1], true
}

func (r *repl) show(msg model.Message) {
	renderMessage(r.out, msg, time.Now())
	r.actions = msg.Actions
}
