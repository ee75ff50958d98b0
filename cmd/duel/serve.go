package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-duel/internal/platform/tui"
	"github.com/vovakirdan/snake-duel/internal/strategy"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeCase     string
	flagServePair     []string
	flagServeFPS      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the spectator over SSH",
	Long: `Start an SSH server that shows a live duel to every connecting user.

Each connection spectates its own freshly seeded game of the configured
pairing.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake-duel/host_key

Examples:
  duel serve                              # Listen on :23234
  duel serve --ssh :2222                  # Listen on port 2222
  duel serve --pair superior,aggressive   # Serve a specific pairing

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServeCmd,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeCase, "case", "", "Starting case name (default: first case)")
	serveCmd.Flags().StringSliceVar(&flagServePair, "pair", []string{"superior", "aggressive"}, "The two strategy IDs to serve")
	serveCmd.Flags().IntVar(&flagServeFPS, "fps", 15, "Game ticks per second")
}

func runServeCmd(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if len(flagServePair) != 2 {
		fmt.Fprintln(os.Stderr, "Error: --pair needs exactly two strategy IDs")
		os.Exit(1)
	}
	for _, id := range flagServePair {
		if !strategy.Exists(id) {
			fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", id)
			os.Exit(1)
		}
	}

	serverCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Watch: tui.WatchConfig{
			Case:        resolveCase(cfg, flagServeCase),
			Rules:       cfg.GameRules(),
			StrategyID1: flagServePair[0],
			StrategyID2: flagServePair[1],
			TickRate:    flagServeFPS,
		},
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting duel SSH server on %s\n", serverCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
