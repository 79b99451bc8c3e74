// Copyright 2026 beogip
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	boredgpt "github.com/beogip/boredGPT"
	"github.com/beogip/boredGPT/config"
	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/server"
	"github.com/beogip/boredGPT/tts"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "boredgpt",
		Usage: "Retrieval-augmented assistant for the Refokus blog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Action: serveCommand,
			},
			{
				Name:   "index",
				Usage:  "Crawl the blog and build the vector index",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Where to read articles from (site or webflow)",
						Value: "site",
					},
				},
			},
			{
				Name:   "ask",
				Usage:  "Ask a single question from the terminal",
				Action: askCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "interactive",
						Aliases: []string{"i"},
						Usage:   "Keep the conversation open, reading questions from stdin",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	assistant, err := boredgpt.New(cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	var opts []server.Option
	if cfg.SpeechEnabled() {
		speaker, err := tts.NewClient(cfg.ElevenLabsKey, cfg.ElevenLabsVoice)
		if err != nil {
			return err
		}
		opts = append(opts, server.WithSpeaker(speaker))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(assistant, opts...).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func indexCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	assistant, err := boredgpt.New(cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	ctx := context.Background()
	switch source := c.String("source"); source {
	case "site":
		result, err := assistant.IndexSite(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Indexed %d pages (%d chunks, %d failed)\n",
			result.Pages, result.Chunks, result.Failed)
	case "webflow":
		result, err := assistant.IndexWebflow(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Indexed %d articles (%d chunks, %d failed)\n",
			result.Pages, result.Chunks, result.Failed)
	default:
		return fmt.Errorf("unknown source %q: must be site or webflow", source)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	assistant, err := boredgpt.New(cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	ctx := context.Background()

	if !c.Bool("interactive") {
		question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
		if question == "" {
			return fmt.Errorf("a question is required")
		}
		_, err := askOnce(ctx, assistant, nil, question)
		return err
	}

	var history []core.Message
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stderr, "> ")
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			fmt.Fprint(os.Stderr, "> ")
			continue
		}

		answer, err := askOnce(ctx, assistant, history, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			history = append(history,
				core.Message{Role: core.RoleUser, Content: question},
				core.Message{Role: core.RoleAssistant, Content: answer.Text},
			)
		}
		fmt.Fprint(os.Stderr, "> ")
	}
	return scanner.Err()
}

func askOnce(ctx context.Context, assistant *boredgpt.Assistant, history []core.Message, question string) (core.Answer, error) {
	messages := append(append([]core.Message{}, history...),
		core.Message{Role: core.RoleUser, Content: question})

	answer, err := assistant.Chat(ctx, messages)
	if err != nil {
		return core.Answer{}, err
	}

	fmt.Println(answer.Text)
	if answer.SourceURL != "" {
		fmt.Printf("(%s)\n", answer.SourceURL)
	}
	return answer, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
