// Package main provides the conversational battle assistant. It spawns the
// MCP battle server as a subprocess and bridges it to the Anthropic API in a
// read-eval-print loop on the terminal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"pokearena/internal/chat"
	"pokearena/internal/config"
	"pokearena/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		logger.Fatal("ANTHROPIC_API_KEY is not set")
	}

	transport := &mcp.CommandTransport{
		Command: exec.Command(cfg.Chat.ServerCommand, "-config", *configPath),
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "pokearena-chat", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		logger.Fatal("connecting to battle server",
			zap.String("command", cfg.Chat.ServerCommand),
			zap.Error(err),
		)
	}
	defer session.Close()

	logger.Info("connected to battle server",
		zap.String("command", cfg.Chat.ServerCommand),
		zap.String("model", cfg.Chat.Model),
	)

	assistant := chat.NewAssistant(anthropic.NewClient(), session, cfg.Chat, logger)

	fmt.Println("Pokemon battle assistant. Ask about pokemon, matchups, or battles; 'quit' exits.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		answer, err := assistant.Ask(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(answer)
		fmt.Println()
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal("reading input", zap.Error(err))
	}
}
