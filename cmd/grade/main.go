// Command grade grades Korean sentences from the command line and prints
// the JSON result to stdout.
//
// Flags:
//
//	-s  a single sentence
//	-f  a text file (UTF-8 or CP949); every non-empty line is graded
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/heartmarshall/hangyeol/internal/app"
	"github.com/heartmarshall/hangyeol/internal/config"
	"github.com/heartmarshall/hangyeol/internal/service/analysis"
	"github.com/heartmarshall/hangyeol/pkg/textenc"
)

func main() {
	sentence := flag.String("s", "", "sentence to grade")
	file := flag.String("f", "", "text file to grade line by line")
	flag.Parse()

	if (*sentence == "") == (*file == "") {
		fmt.Fprintln(os.Stderr, "usage: grade -s \"문장\" | -f file.txt")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	// Keep stdout clean for the JSON result.
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("init", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	var out any
	if *sentence != "" {
		out, err = gradeSentence(ctx, a.Analysis, *sentence)
	} else {
		out, err = gradeFile(ctx, a.Analysis, *file)
	}
	if err != nil {
		logger.Error("grade failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		logger.Error("write result", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func gradeSentence(ctx context.Context, svc *analysis.Service, sentence string) (*analysis.Result, error) {
	res, err := svc.Grade(ctx, sentence)
	if err != nil {
		if fail, ok := analysis.Failure(sentence, err); ok {
			return fail, nil
		}
		return nil, err
	}
	return res, nil
}

func gradeFile(ctx context.Context, svc *analysis.Service, path string) ([]*analysis.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text, err := textenc.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	results, err := svc.GradeText(ctx, text)
	if err != nil {
		if fail, ok := analysis.Failure("", err); ok {
			return []*analysis.Result{fail}, nil
		}
		return nil, err
	}
	return results, nil
}
