package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"deepthink/pkg/config"
	"deepthink/pkg/handler"
	"deepthink/pkg/llm"
	_ "deepthink/pkg/llm/autoload" // 自動註冊 LLM Providers
	"deepthink/pkg/monitor"
	"deepthink/pkg/reason"
	"deepthink/pkg/route"
	srv "deepthink/pkg/server"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// CLI flags
	transport := flag.String("transport", "stdio", "Transport mode: stdio or sse")
	port := flag.String("port", "8080", "Port for SSE server (only used with -transport=sse)")
	baseURL := flag.String("base-url", "", "Base URL for SSE server (default: http://localhost:<port>)")
	flag.Parse()

	// Also check environment variables
	if t := os.Getenv("MCP_TRANSPORT"); t != "" && *transport == "stdio" {
		*transport = t
	}
	if p := os.Getenv("MCP_PORT"); p != "" && *port == "8080" {
		*port = p
	}
	if b := os.Getenv("MCP_BASE_URL"); b != "" && *baseURL == "" {
		*baseURL = b
	}

	// --- 0. 讀取設定檔 ---
	cfg, sysCfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	monitor.SetupSlog(sysCfg.LogLevel)

	// --- 1. LLM 後端 ---
	backends, err := llm.NewFromConfig(cfg, sysCfg)
	if err != nil {
		log.Fatalf("❌ Failed to init LLM backends: %v\n", err)
	}

	// --- 1a. 歷史紀錄管理 ---
	window := llm.NewConversationWindow(sysCfg.MaxContextTurns)

	// --- 2. 管線組裝 ---
	cliMonitor := monitor.NewCLIMonitor()
	h := handler.NewTurnHandler(
		reason.NewExtractor(backends.Reasoner),
		route.NewRouter(backends.Claude, backends.OpenRouter, cfg.OpenRouterDefaultModel),
		window,
		cliMonitor,
	)

	s := srv.New(h)

	// --- 3. system.json 熱重載（僅 log level）---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for range config.WatchConfig(ctx, "system.json") {
			reloaded := config.LoadSystemConfig("system.json")
			monitor.SetupSlog(reloaded.LogLevel)
		}
	}()

	// --- 4. 啟動 transport ---
	// banner 與 monitor 都走 stderr，stdio 模式下 stdout 屬於協議
	monitor.PrintBanner()
	cliMonitor.Start()

	switch *transport {
	case "sse":
		if *baseURL == "" {
			*baseURL = fmt.Sprintf("http://localhost:%s", *port)
		}

		sseServer := mcpserver.NewSSEServer(s,
			mcpserver.WithBaseURL(*baseURL),
			mcpserver.WithKeepAlive(true),
		)

		log.Printf("Starting SSE server on :%s (base URL: %s)", *port, *baseURL)

		if err := http.ListenAndServe(":"+*port, sseServer); err != nil {
			log.Fatalf("SSE server error: %v", err)
		}

	case "stdio":
		fallthrough
	default:
		if err := mcpserver.ServeStdio(s); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}
